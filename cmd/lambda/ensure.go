package cliedge

import (
	"context"
	"fmt"

	"github.com/alexflint/go-arg"
	"github.com/openttd/edge-redirects/lib"
)

func init() {
	lib.Commands["lambda-ensure"] = lambdaEnsure
	lib.Args["lambda-ensure"] = lambdaEnsureArgs{}
}

type lambdaEnsureArgs struct {
	Name    string `arg:"positional,required"`
	Preview bool   `arg:"-p,--preview"`
}

func (lambdaEnsureArgs) Description() string {
	return "\nbuild, deploy and publish a redirect lambda, printing the version arn\n"
}

func lambdaEnsure() {
	var args lambdaEnsureArgs
	arg.MustParse(&args)
	ctx := context.Background()
	r, err := lib.RedirectGet(args.Name)
	if err != nil {
		lib.Logger.Fatal("error: ", err)
	}
	arn, err := lib.LambdaEnsure(ctx, r, args.Preview)
	if err != nil {
		lib.Logger.Fatal("error: ", err)
	}
	fmt.Println(arn)
}
