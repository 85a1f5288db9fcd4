package lib

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strconv"
)

const (
	redirectStatus      = http.StatusMovedPermanently
	redirectDescription = "Moved Permanently"
	redirectHeaderName  = "location"
	redirectHeaderKey   = "Location"
)

type Redirect struct {
	Name     string
	Location string
}

var RedirectNightly = Redirect{
	Name:     "redirect-nightly",
	Location: "https://www.openttd.org/downloads/openttd-releases/latest.html",
}

var RedirectNoAI = Redirect{
	Name:     "redirect-noai",
	Location: "https://docs.openttd.org/ai-api/",
}

var Redirects = map[string]Redirect{
	RedirectNightly.Name: RedirectNightly,
	RedirectNoAI.Name:    RedirectNoAI,
}

func RedirectGet(name string) (Redirect, error) {
	r, ok := Redirects[name]
	if !ok {
		err := fmt.Errorf("no such redirect: %s", name)
		Logger.Println("error:", err)
		return Redirect{}, err
	}
	return r, nil
}

func RedirectNames() []string {
	var names []string
	for name := range Redirects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r Redirect) Response() EdgeResponse {
	return EdgeResponse{
		Status:            strconv.Itoa(redirectStatus),
		StatusDescription: redirectDescription,
		Headers: map[string][]EdgeHeader{
			redirectHeaderName: {{Key: redirectHeaderKey, Value: r.Location}},
		},
	}
}

// Handle answers every request event with the same permanent redirect.
func (r Redirect) Handle(_ context.Context, _ EdgeRequestEvent) (EdgeResponse, error) {
	return r.Response(), nil
}

// ServeHTTP writes the edge response to a plain http client, for local use.
func (r Redirect) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	res := r.Response()
	for _, headers := range res.Headers {
		for _, h := range headers {
			w.Header().Add(h.Key, h.Value)
		}
	}
	w.WriteHeader(redirectStatus)
}
