package cliedge

import (
	"context"
	"fmt"
	"time"

	"github.com/alexflint/go-arg"
	"github.com/openttd/edge-redirects/lib"
)

func init() {
	lib.Commands["logs-recent"] = logsRecent
	lib.Args["logs-recent"] = logsRecentArgs{}
}

type logsRecentArgs struct {
	Name     string        `arg:"positional,required"`
	NumLines int           `arg:"-n,--num-lines" default:"50" help:"number of recent log lines to show"`
	Since    time.Duration `arg:"-s,--since" default:"1h"`
	Regions  []string      `arg:"-r,--region,separate" help:"regions whose edge replicas to search, in addition to us-east-1 and the configured region"`
}

func (logsRecentArgs) Description() string {
	return "\nshow the most recent log lines of a redirect lambda\n"
}

func logsRecent() {
	var args logsRecentArgs
	arg.MustParse(&args)
	ctx := context.Background()
	regions := append([]string{lib.Region()}, args.Regions...)
	lines, err := lib.LogsRecent(ctx, args.Name, regions, time.Now().Add(-args.Since), args.NumLines)
	if err != nil {
		lib.Logger.Fatal("error: ", err)
	}
	for _, line := range lines {
		fmt.Println(line)
	}
}
