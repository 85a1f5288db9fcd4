package lib

import (
	"encoding/json"
	"testing"
)

func TestIamEdgeAssumePolicyDocument(t *testing.T) {
	doc, err := iamEdgeAssumePolicyDocument()
	if err != nil {
		t.Error(err)
		return
	}
	var parsed iamPolicyDocument
	err = json.Unmarshal([]byte(doc), &parsed)
	if err != nil {
		t.Error(err)
		return
	}
	if len(parsed.Statement) != 1 {
		t.Errorf("got: %d want: %d", len(parsed.Statement), 1)
		return
	}
	services := parsed.Statement[0].Principal["Service"]
	for _, want := range []string{"lambda.amazonaws.com", "edgelambda.amazonaws.com"} {
		if !Contains(services, want) {
			t.Errorf("missing principal: %s in %v", want, services)
		}
	}
	if parsed.Statement[0].Action != "sts:AssumeRole" {
		t.Errorf("got: %s want: %s", parsed.Statement[0].Action, "sts:AssumeRole")
	}
}

func TestIamPolicyEqual(t *testing.T) {
	type test struct {
		a     string
		b     string
		equal bool
	}
	tests := []test{
		{`{"a": 1, "b": [1, 2]}`, `{"b":[1,2],"a":1}`, true},
		{`{"a": 1}`, `{"a": 2}`, false},
		{`{"a": [1, 2]}`, `{"a": [2, 1]}`, false},
	}
	for _, test := range tests {
		equal, err := iamPolicyEqual(test.a, test.b)
		if err != nil {
			t.Error(err)
			return
		}
		if equal != test.equal {
			t.Errorf("got: %v want: %v for %s %s", equal, test.equal, test.a, test.b)
		}
	}
	_, err := iamPolicyEqual(`{`, `{}`)
	if err == nil {
		t.Error("expected error")
	}
}

func TestIamEdgeRoleName(t *testing.T) {
	if IamEdgeRoleName("redirect-noai") != "redirect-noai-role" {
		t.Errorf("got: %s", IamEdgeRoleName("redirect-noai"))
	}
}
