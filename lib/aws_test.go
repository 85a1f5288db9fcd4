package lib

import (
	"testing"
)

func TestRegionFromEnv(t *testing.T) {
	t.Setenv("AWS_REGION", "eu-west-1")
	t.Setenv("AWS_CONFIG_FILE", "/dev/null")
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", "/dev/null")
	if Region() != "eu-west-1" {
		t.Errorf("got: %s want: %s", Region(), "eu-west-1")
	}
}

func TestSessionRegionCached(t *testing.T) {
	t.Setenv("AWS_CONFIG_FILE", "/dev/null")
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", "/dev/null")
	a, err := SessionRegion("ap-southeast-2")
	if err != nil {
		t.Error(err)
		return
	}
	b, err := SessionRegion("ap-southeast-2")
	if err != nil {
		t.Error(err)
		return
	}
	if a != b {
		t.Error("expected cached config")
	}
	if a.Region != "ap-southeast-2" {
		t.Errorf("got: %s want: %s", a.Region, "ap-southeast-2")
	}
}
