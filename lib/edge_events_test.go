package lib

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/gofrs/uuid"
)

func TestEdgeSampleEventRoundTrip(t *testing.T) {
	ev := EdgeSampleEvent("d111111abcdef8.cloudfront.net", "/foo/bar")
	data, err := json.Marshal(ev)
	if err != nil {
		t.Error(err)
		return
	}
	var decoded EdgeRequestEvent
	err = json.Unmarshal(data, &decoded)
	if err != nil {
		t.Error(err)
		return
	}
	if !reflect.DeepEqual(ev, decoded) {
		t.Errorf("got: %+v want: %+v", decoded, ev)
	}
	if decoded.Records[0].Cf.Request.URI != "/foo/bar" {
		t.Errorf("got: %s want: %s", decoded.Records[0].Cf.Request.URI, "/foo/bar")
	}
	_, err = uuid.FromString(decoded.Records[0].Cf.Config.RequestID)
	if err != nil {
		t.Error(err)
	}
}

func TestEdgeSampleEventFreshRequestID(t *testing.T) {
	a := EdgeSampleEvent("example.com", "/")
	b := EdgeSampleEvent("example.com", "/")
	if a.Records[0].Cf.Config.RequestID == b.Records[0].Cf.Config.RequestID {
		t.Error("request ids should differ")
	}
}

func TestEdgeRequestEventDecodesPlatformPayload(t *testing.T) {
	payload := `{
  "Records": [
    {
      "cf": {
        "config": {
          "distributionDomainName": "d111111abcdef8.cloudfront.net",
          "distributionId": "EDFDVBD6EXAMPLE",
          "eventType": "viewer-request",
          "requestId": "4TyzHTaYWb1GX1qTfsHhEqV6HUDd_BzoBZnwfnvQc_1oF26ClkoUSEQ=="
        },
        "request": {
          "clientIp": "203.0.113.178",
          "headers": {
            "host": [{"key": "Host", "value": "d111111abcdef8.cloudfront.net"}],
            "user-agent": [{"key": "User-Agent", "value": "curl/7.66.0"}]
          },
          "method": "GET",
          "querystring": "",
          "uri": "/"
        }
      }
    }
  ]
}`
	var ev EdgeRequestEvent
	err := json.Unmarshal([]byte(payload), &ev)
	if err != nil {
		t.Error(err)
		return
	}
	if len(ev.Records) != 1 {
		t.Errorf("got: %d want: %d", len(ev.Records), 1)
		return
	}
	if ev.Records[0].Cf.Request.Headers["user-agent"][0].Value != "curl/7.66.0" {
		t.Errorf("got: %+v", ev.Records[0].Cf.Request.Headers)
	}
}

func TestEdgeRequestEventDecodesAnyShape(t *testing.T) {
	payloads := []string{
		`{"Records":{"foo":"bar"}}`,
		`{"Records":[{"cf":{"request":{"headers":{"host":"x"}}}}]}`,
		`[]`,
		`42`,
		`null`,
	}
	for _, payload := range payloads {
		ev := EdgeSampleEvent("example.com", "/")
		err := json.Unmarshal([]byte(payload), &ev)
		if err != nil {
			t.Errorf("got: %v for %s", err, payload)
			continue
		}
		if payload != `null` && !reflect.DeepEqual(ev, EdgeRequestEvent{}) {
			t.Errorf("got: %+v want zero event for %s", ev, payload)
		}
	}
}
