package lib

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/avast/retry-go"
)

var Commands = make(map[string]func())

var Args = make(map[string]interface{})

func PreviewString(preview bool) string {
	if !preview {
		return ""
	}
	return "preview: "
}

func Retry(ctx context.Context, fn func() error) error {
	return retry.Do(
		fn,
		retry.Context(ctx),
		retry.LastErrorOnly(true),
		retry.Attempts(10),
		retry.Delay(150*time.Millisecond),
		retry.MaxDelay(5*time.Second),
	)
}

func Exists(pth string) bool {
	_, err := os.Stat(pth)
	return err == nil
}

func Contains(parts []string, part string) bool {
	for _, p := range parts {
		if p == part {
			return true
		}
	}
	return false
}

func shellAt(dir string, format string, args ...interface{}) error {
	cmd := exec.Command("bash", "-c", fmt.Sprintf(format, args...))
	cmd.Dir = dir
	cmd.Stdout = os.Stderr
	cmd.Stderr = os.Stderr
	err := cmd.Run()
	if err != nil {
		return fmt.Errorf("%s: %w", strings.TrimSpace(fmt.Sprintf(format, args...)), err)
	}
	return nil
}
