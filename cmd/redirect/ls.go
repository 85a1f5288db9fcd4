package cliedge

import (
	"fmt"

	"github.com/alexflint/go-arg"
	"github.com/openttd/edge-redirects/lib"
)

func init() {
	lib.Commands["redirect-ls"] = redirectLs
	lib.Args["redirect-ls"] = redirectLsArgs{}
}

type redirectLsArgs struct {
}

func (redirectLsArgs) Description() string {
	return "\nlist redirects and where they point\n"
}

func redirectLs() {
	var args redirectLsArgs
	arg.MustParse(&args)
	for _, name := range lib.RedirectNames() {
		fmt.Println(name, lib.Redirects[name].Location)
	}
}
