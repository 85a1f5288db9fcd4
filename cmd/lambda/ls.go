package cliedge

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexflint/go-arg"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/dustin/go-humanize"
	"github.com/openttd/edge-redirects/lib"
)

func init() {
	lib.Commands["lambda-ls"] = lambdaLs
	lib.Args["lambda-ls"] = lambdaLsArgs{}
}

type lambdaLsArgs struct {
}

func (lambdaLsArgs) Description() string {
	return "\nlist lambdas in the edge region\n"
}

func lambdaLs() {
	var args lambdaLsArgs
	arg.MustParse(&args)
	ctx := context.Background()
	fns, err := lib.LambdaListFunctions(ctx)
	if err != nil {
		lib.Logger.Fatal("error: ", err)
	}
	for _, fn := range fns {
		name := aws.ToString(fn.FunctionName)
		runtime := "-"
		if fn.Runtime != "" {
			runtime = string(fn.Runtime)
		}
		size := humanize.Bytes(uint64(fn.CodeSize))
		fmt.Println(name, runtime, size, lastModifiedMinute(aws.ToString(fn.LastModified)))
	}
}

// lastModifiedMinute trims "2024-01-01T12:34:56.000+0000" to "2024-01-01T12:34Z".
func lastModifiedMinute(s string) string {
	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return "-"
	}
	return strings.Join(parts[:2], ":") + "Z"
}
