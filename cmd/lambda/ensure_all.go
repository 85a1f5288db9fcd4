package cliedge

import (
	"context"
	"fmt"
	"sync"

	"github.com/alexflint/go-arg"
	"github.com/openttd/edge-redirects/lib"
	"golang.org/x/sync/errgroup"
)

func init() {
	lib.Commands["lambda-ensure-all"] = lambdaEnsureAll
	lib.Args["lambda-ensure-all"] = lambdaEnsureAllArgs{}
}

type lambdaEnsureAllArgs struct {
	Preview bool `arg:"-p,--preview"`
}

func (lambdaEnsureAllArgs) Description() string {
	return "\nensure every redirect lambda\n"
}

func lambdaEnsureAll() {
	var args lambdaEnsureAllArgs
	arg.MustParse(&args)
	g, ctx := errgroup.WithContext(context.Background())
	var lock sync.Mutex
	arns := make(map[string]string)
	for _, name := range lib.RedirectNames() {
		r := lib.Redirects[name]
		g.Go(func() error {
			arn, err := lib.LambdaEnsure(ctx, r, args.Preview)
			if err != nil {
				return err
			}
			lock.Lock()
			defer lock.Unlock()
			arns[r.Name] = arn
			return nil
		})
	}
	err := g.Wait()
	if err != nil {
		lib.Logger.Fatal("error: ", err)
	}
	for _, name := range lib.RedirectNames() {
		fmt.Println(name, arns[name])
	}
}
