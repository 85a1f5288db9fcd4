package lib

import (
	"context"
	"errors"
	"testing"
)

func TestPreviewString(t *testing.T) {
	if PreviewString(false) != "" {
		t.Errorf("got: %q want: %q", PreviewString(false), "")
	}
	if PreviewString(true) != "preview: " {
		t.Errorf("got: %q want: %q", PreviewString(true), "preview: ")
	}
}

func TestRetryEventuallySucceeds(t *testing.T) {
	count := 0
	err := Retry(context.Background(), func() error {
		count++
		if count < 3 {
			return errors.New("not yet")
		}
		return nil
	})
	if err != nil {
		t.Error(err)
		return
	}
	if count != 3 {
		t.Errorf("got: %d want: %d", count, 3)
	}
}

func TestRetryStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Retry(ctx, func() error {
		return errors.New("never")
	})
	if err == nil {
		t.Error("expected error")
	}
}

func TestContains(t *testing.T) {
	if !Contains([]string{"a", "b"}, "b") {
		t.Error("expected b")
	}
	if Contains([]string{"a", "b"}, "c") {
		t.Error("unexpected c")
	}
}

func TestExists(t *testing.T) {
	if !Exists(t.TempDir()) {
		t.Error("expected tempdir to exist")
	}
	if Exists("/no/such/path/for/edge-redirects") {
		t.Error("unexpected path")
	}
}
