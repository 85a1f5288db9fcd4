package cliedge

import (
	"context"

	"github.com/alexflint/go-arg"
	"github.com/openttd/edge-redirects/lib"
)

func init() {
	lib.Commands["lambda-rm"] = lambdaRm
	lib.Args["lambda-rm"] = lambdaRmArgs{}
}

type lambdaRmArgs struct {
	Name     string `arg:"positional,required"`
	KeepRole bool   `arg:"-k,--keep-role"`
	Preview  bool   `arg:"-p,--preview"`
}

func (lambdaRmArgs) Description() string {
	return "\nremove a redirect lambda and its role\n"
}

func lambdaRm() {
	var args lambdaRmArgs
	arg.MustParse(&args)
	ctx := context.Background()
	r, err := lib.RedirectGet(args.Name)
	if err != nil {
		lib.Logger.Fatal("error: ", err)
	}
	err = lib.LambdaDeleteFunction(ctx, r.Name, args.Preview)
	if err != nil {
		lib.Logger.Fatal("error: ", err)
	}
	if !args.KeepRole {
		err = lib.IamDeleteEdgeRole(ctx, r.Name, args.Preview)
		if err != nil {
			lib.Logger.Fatal("error: ", err)
		}
	}
}
