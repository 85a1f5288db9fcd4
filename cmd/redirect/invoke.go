package cliedge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/alexflint/go-arg"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/gofrs/uuid"
	"github.com/mattn/go-isatty"
	"github.com/openttd/edge-redirects/lib"
	"gopkg.in/yaml.v3"
)

func init() {
	lib.Commands["redirect-invoke"] = redirectInvoke
	lib.Args["redirect-invoke"] = redirectInvokeArgs{}
}

type redirectInvokeArgs struct {
	Name          string `arg:"positional,required"`
	PayloadFile   string `arg:"-f,--payload-file"`
	PayloadString string `arg:"-s,--payload-string"`
	Yaml          bool   `arg:"-y,--yaml" help:"print response as yaml"`
}

func (redirectInvokeArgs) Description() string {
	return "\ninvoke a redirect handler locally with an edge request event\n"
}

func redirectInvoke() {
	var args redirectInvokeArgs
	arg.MustParse(&args)
	r, err := lib.RedirectGet(args.Name)
	if err != nil {
		lib.Logger.Fatal("error: ", err)
	}
	payload := []byte("{}")
	if args.PayloadString != "" {
		payload = []byte(args.PayloadString)
	} else if args.PayloadFile != "" {
		payload, err = os.ReadFile(args.PayloadFile)
		if err != nil {
			lib.Logger.Fatal("error: ", err)
		}
	}
	ctx := lambdacontext.NewContext(context.Background(), &lambdacontext.LambdaContext{
		AwsRequestID:       uuid.Must(uuid.NewV4()).String(),
		InvokedFunctionArn: "local:" + r.Name,
	})
	out, err := lambda.NewHandler(r.Handle).Invoke(ctx, payload)
	if err != nil {
		lib.Logger.Fatal("error: ", err)
	}
	out = bytes.TrimSpace(out)
	if args.Yaml {
		var res lib.EdgeResponse
		err := json.Unmarshal(out, &res)
		if err != nil {
			lib.Logger.Fatal("error: ", err)
		}
		data, err := yaml.Marshal(res)
		if err != nil {
			lib.Logger.Fatal("error: ", err)
		}
		fmt.Print(string(data))
		return
	}
	if isatty.IsTerminal(os.Stdout.Fd()) {
		var buf bytes.Buffer
		err := json.Indent(&buf, out, "", "  ")
		if err != nil {
			lib.Logger.Fatal("error: ", err)
		}
		out = buf.Bytes()
	}
	fmt.Println(string(out))
}
