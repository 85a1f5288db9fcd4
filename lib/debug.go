package lib

import (
	"os"
	"strings"
	"time"
)

var doDebug = strings.ToLower(os.Getenv("DEBUG") + " ")[:1] == "y"

type Debug struct {
	start time.Time
	name  string
}

func (d *Debug) Start() {
	Logger.Println("debug start:", d.name)
}

func (d *Debug) End() {
	Logger.Println("debug end:", d.name, time.Since(d.start).Round(time.Millisecond))
}

func (d *Debug) Log() {
	Logger.Println("debug:", d.name, time.Since(d.start).Round(time.Millisecond))
}
