package lib

import (
	"reflect"
	"testing"
	"time"
)

func TestLogsGroupPrefixes(t *testing.T) {
	got := LogsGroupPrefixes("redirect-noai")
	want := []string{"/aws/lambda/redirect-noai", "/aws/lambda/us-east-1.redirect-noai"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got: %v want: %v", got, want)
	}
}

func TestLogsTail(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	lines := []LogsLine{
		{Group: "a", Timestamp: base.Add(3 * time.Second), Message: "3"},
		{Group: "b", Timestamp: base.Add(1 * time.Second), Message: "1"},
		{Group: "a", Timestamp: base.Add(2 * time.Second), Message: "2"},
		{Group: "b", Timestamp: base.Add(4 * time.Second), Message: "4"},
	}
	type test struct {
		numLines int
		messages []string
	}
	tests := []test{
		{0, []string{"1", "2", "3", "4"}},
		{2, []string{"3", "4"}},
		{10, []string{"1", "2", "3", "4"}},
	}
	for _, test := range tests {
		input := append([]LogsLine(nil), lines...)
		var messages []string
		for _, line := range logsTail(input, test.numLines) {
			messages = append(messages, line.Message)
		}
		if !reflect.DeepEqual(messages, test.messages) {
			t.Errorf("got: %v want: %v", messages, test.messages)
		}
	}
}

func TestLogsLineString(t *testing.T) {
	line := LogsLine{
		Region:    "eu-west-1",
		Group:     "/aws/lambda/redirect-noai",
		Timestamp: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		Message:   "START RequestId: abc\n",
	}
	want := "2024-01-01T12:00:00Z eu-west-1 /aws/lambda/redirect-noai START RequestId: abc"
	if line.String() != want {
		t.Errorf("got: %s want: %s", line.String(), want)
	}
}

func TestLogsRegions(t *testing.T) {
	type test struct {
		input  []string
		output []string
	}
	tests := []test{
		{nil, []string{"us-east-1"}},
		{[]string{"us-east-1"}, []string{"us-east-1"}},
		{[]string{"eu-west-1", "", "ap-southeast-2", "eu-west-1"}, []string{"us-east-1", "eu-west-1", "ap-southeast-2"}},
	}
	for _, test := range tests {
		output := LogsRegions(test.input)
		if !reflect.DeepEqual(output, test.output) {
			t.Errorf("got: %v want: %v", output, test.output)
		}
	}
}
