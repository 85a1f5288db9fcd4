package lib

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"
)

type LoggerStruct struct {
	Print    func(args ...interface{})
	Flush    func()
	disabled bool
	lock     sync.Mutex
	out      io.Writer
}

var Logger = newLogger(os.Stderr, strings.ToLower(os.Getenv("LOGGING") + " ")[:1] == "n")

func newLogger(out io.Writer, disabled bool) *LoggerStruct {
	l := &LoggerStruct{out: out, disabled: disabled}
	l.Print = func(args ...interface{}) {
		l.lock.Lock()
		defer l.lock.Unlock()
		fmt.Fprint(l.out, args...)
	}
	l.Flush = func() {}
	return l
}

// SetOutput redirects log lines, returning the previous writer.
func (l *LoggerStruct) SetOutput(out io.Writer) io.Writer {
	l.lock.Lock()
	defer l.lock.Unlock()
	prev := l.out
	l.out = out
	return prev
}

func caller() string {
	_, file, line, _ := runtime.Caller(3)
	parts := strings.Split(file, "/")
	if len(parts) >= 2 {
		file = strings.Join(parts[len(parts)-2:], "/")
	}
	return fmt.Sprintf("%s:%d: ", file, line)
}

func joinLine(v []interface{}) []interface{} {
	var xs []string
	for _, x := range v {
		xs = append(xs, fmt.Sprint(x))
	}
	return []interface{}{caller(), strings.Join(xs, " "), "\n"}
}

func (l *LoggerStruct) Println(v ...interface{}) {
	if !l.disabled {
		l.Print(joinLine(v)...)
	}
}

func (l *LoggerStruct) Printf(format string, v ...interface{}) {
	if !l.disabled {
		l.Print(sprintfCaller(format, v...))
	}
}

func sprintfCaller(format string, v ...interface{}) string {
	return fmt.Sprintf(caller()+format, v...)
}

func (l *LoggerStruct) Fatal(v ...interface{}) {
	l.Print(joinLine(v)...)
	l.Flush()
	os.Exit(1)
}

func (l *LoggerStruct) Fatalf(format string, v ...interface{}) {
	l.Print(sprintfCaller(format, v...))
	l.Flush()
	os.Exit(1)
}
