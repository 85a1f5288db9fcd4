package lib

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoggerPrefixesCaller(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, false)
	l.Println("created function:", "redirect-noai")
	got := buf.String()
	if !strings.HasPrefix(got, "lib/logging_test.go:") {
		t.Errorf("got: %s want prefix: %s", got, "lib/logging_test.go:")
	}
	if !strings.HasSuffix(got, "created function: redirect-noai\n") {
		t.Errorf("got: %s", got)
	}
}

func TestLoggerPrintf(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, false)
	l.Printf("updated %s => %s\n", "a", "b")
	got := buf.String()
	if !strings.HasPrefix(got, "lib/logging_test.go:") || !strings.HasSuffix(got, "updated a => b\n") {
		t.Errorf("got: %s", got)
	}
}

func TestLoggerDisabled(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, true)
	l.Println("nothing")
	l.Printf("nothing %d\n", 1)
	if buf.Len() != 0 {
		t.Errorf("got: %q want: %q", buf.String(), "")
	}
}

func TestLoggerSetOutput(t *testing.T) {
	var a, b bytes.Buffer
	l := newLogger(&a, false)
	prev := l.SetOutput(&b)
	if prev != &a {
		t.Error("previous writer not returned")
	}
	l.Println("x")
	if a.Len() != 0 || b.Len() == 0 {
		t.Errorf("got: %q %q", a.String(), b.String())
	}
}
