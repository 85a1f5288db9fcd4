package main

import (
	"fmt"
	"os"
	"sort"

	_ "github.com/openttd/edge-redirects/cmd/aws"
	_ "github.com/openttd/edge-redirects/cmd/lambda"
	_ "github.com/openttd/edge-redirects/cmd/logs"
	_ "github.com/openttd/edge-redirects/cmd/redirect"
	"github.com/openttd/edge-redirects/lib"
)

func usage() {
	var fns []string
	for k := range lib.Commands {
		fns = append(fns, k)
	}
	sort.Strings(fns)
	for _, fn := range fns {
		fmt.Println(fn)
	}
}

// splitShortFlags turns "-ab" into "-a -b" so bundled short flags reach
// go-arg one at a time.
func splitShortFlags(argv []string) []string {
	var args []string
	for _, a := range argv {
		if len(a) > 2 && a[0] == '-' && a[1] != '-' {
			for _, k := range a[1:] {
				args = append(args, fmt.Sprintf("-%s", string(k)))
			}
		} else {
			args = append(args, a)
		}
	}
	return args
}

func main() {
	if len(os.Args) < 2 || os.Args[1] == "-h" || os.Args[1] == "--help" {
		usage()
		os.Exit(1)
	}
	cmd := os.Args[1]
	fn, ok := lib.Commands[cmd]
	if !ok {
		usage()
		os.Exit(1)
	}
	os.Args = splitShortFlags(os.Args[1:])
	fn()
}
