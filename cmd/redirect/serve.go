package cliedge

import (
	"net/http"
	"time"

	"github.com/alexflint/go-arg"
	"github.com/openttd/edge-redirects/lib"
)

func init() {
	lib.Commands["redirect-serve"] = redirectServe
	lib.Args["redirect-serve"] = redirectServeArgs{}
}

type redirectServeArgs struct {
	Name string `arg:"positional,required"`
	Addr string `arg:"-a,--addr" default:":8080"`
}

func (redirectServeArgs) Description() string {
	return "\nserve a redirect over plain http for local checks\n"
}

func redirectServe() {
	var args redirectServeArgs
	arg.MustParse(&args)
	r, err := lib.RedirectGet(args.Name)
	if err != nil {
		lib.Logger.Fatal("error: ", err)
	}
	server := &http.Server{
		Addr: args.Addr,
		Handler: http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			lib.Logger.Println(req.Method, req.URL.String(), "=>", r.Location)
			r.ServeHTTP(w, req)
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}
	lib.Logger.Println("serving", r.Name, "on", args.Addr)
	err = server.ListenAndServe()
	if err != nil {
		lib.Logger.Fatal("error: ", err)
	}
}
