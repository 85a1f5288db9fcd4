package main

import (
	"context"
	"testing"

	"github.com/openttd/edge-redirects/lib"
)

func TestHandleRequestIgnoresPath(t *testing.T) {
	for _, uri := range []string{"/", "/foo/bar", "/ai-api/index.html?x=1"} {
		res, err := handleRequest(context.Background(), lib.EdgeSampleEvent("docs.openttd.org", uri))
		if err != nil {
			t.Error(err)
			return
		}
		if res.Status != "301" {
			t.Errorf("got: %s want: %s", res.Status, "301")
		}
		location := res.Headers["location"]
		if len(location) != 1 || len(res.Headers) != 1 {
			t.Errorf("got: %+v", res.Headers)
			return
		}
		want := lib.EdgeHeader{Key: "Location", Value: "https://docs.openttd.org/ai-api/"}
		if location[0] != want {
			t.Errorf("got: %+v want: %+v", location[0], want)
		}
	}
}
