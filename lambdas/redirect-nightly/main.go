package main

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/openttd/edge-redirects/lib"
)

func handleRequest(ctx context.Context, ev lib.EdgeRequestEvent) (lib.EdgeResponse, error) {
	return lib.RedirectNightly.Handle(ctx, ev)
}

func main() {
	lambda.Start(handleRequest)
}
