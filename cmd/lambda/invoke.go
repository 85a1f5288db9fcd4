package cliedge

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"

	"github.com/alexflint/go-arg"
	"github.com/openttd/edge-redirects/lib"
)

func init() {
	lib.Commands["lambda-invoke"] = lambdaInvoke
	lib.Args["lambda-invoke"] = lambdaInvokeArgs{}
}

type lambdaInvokeArgs struct {
	Name          string `arg:"positional,required"`
	PayloadFile   string `arg:"-f,--payload-file"`
	PayloadString string `arg:"-s,--payload-string"`
}

func (lambdaInvokeArgs) Description() string {
	return "\ninvoke a deployed lambda\n"
}

func lambdaInvoke() {
	var args lambdaInvokeArgs
	arg.MustParse(&args)
	ctx := context.Background()
	payload := []byte("{}")
	if args.PayloadString != "" {
		payload = []byte(args.PayloadString)
	} else if args.PayloadFile != "" {
		var err error
		payload, err = os.ReadFile(args.PayloadFile)
		if err != nil {
			lib.Logger.Fatal("error: ", err)
		}
	}
	out, err := lib.LambdaInvoke(ctx, args.Name, payload)
	if err != nil {
		lib.Logger.Fatal("error: ", err)
	}
	if out.LogResult != nil {
		log := *out.LogResult
		data, err := base64.StdEncoding.DecodeString(*out.LogResult)
		if err == nil {
			log = string(data)
		}
		fmt.Fprintln(os.Stderr, log)
	}
	if out.FunctionError != nil {
		fmt.Fprintln(os.Stderr, string(out.Payload))
		os.Exit(1)
	}
	fmt.Println(string(out.Payload))
}
