package cliedge

import (
	"encoding/json"
	"fmt"

	"github.com/alexflint/go-arg"
	"github.com/openttd/edge-redirects/lib"
)

func init() {
	lib.Commands["redirect-event"] = redirectEvent
	lib.Args["redirect-event"] = redirectEventArgs{}
}

type redirectEventArgs struct {
	URI    string `arg:"-u,--uri" default:"/"`
	Domain string `arg:"-d,--domain" default:"d111111abcdef8.cloudfront.net"`
}

func (redirectEventArgs) Description() string {
	return "\nprint a sample edge request event\n"
}

func redirectEvent() {
	var args redirectEventArgs
	arg.MustParse(&args)
	data, err := json.MarshalIndent(lib.EdgeSampleEvent(args.Domain, args.URI), "", "  ")
	if err != nil {
		lib.Logger.Fatal("error: ", err)
	}
	fmt.Println(string(data))
}
