package lib

import (
	"encoding/json"

	"github.com/gofrs/uuid"
)

// EdgeRequestEvent is the payload an edge location hands to a request
// trigger. Redirect handlers accept it and ignore it.
type EdgeRequestEvent struct {
	Records []EdgeEventRecord `json:"Records"`
}

type edgeRequestEvent EdgeRequestEvent

// UnmarshalJSON never fails: a payload of any other shape decodes to the
// zero event, so a handler is always reached.
func (e *EdgeRequestEvent) UnmarshalJSON(data []byte) error {
	var ev edgeRequestEvent
	err := json.Unmarshal(data, &ev)
	if err != nil {
		*e = EdgeRequestEvent{}
		return nil
	}
	*e = EdgeRequestEvent(ev)
	return nil
}

type EdgeEventRecord struct {
	Cf EdgeCf `json:"cf"`
}

type EdgeCf struct {
	Config  EdgeConfig  `json:"config"`
	Request EdgeRequest `json:"request"`
}

type EdgeConfig struct {
	DistributionDomainName string `json:"distributionDomainName,omitempty"`
	DistributionID         string `json:"distributionId,omitempty"`
	EventType              string `json:"eventType,omitempty"`
	RequestID              string `json:"requestId,omitempty"`
}

type EdgeRequest struct {
	ClientIP    string                  `json:"clientIp,omitempty"`
	Method      string                  `json:"method,omitempty"`
	URI         string                  `json:"uri,omitempty"`
	QueryString string                  `json:"querystring"`
	Headers     map[string][]EdgeHeader `json:"headers,omitempty"`
}

type EdgeHeader struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// EdgeResponse is a generated response returned from a request trigger
// instead of forwarding to the origin.
type EdgeResponse struct {
	Status            string                  `json:"status" yaml:"status"`
	StatusDescription string                  `json:"statusDescription" yaml:"statusDescription"`
	Headers           map[string][]EdgeHeader `json:"headers" yaml:"headers"`
}

func EdgeSampleEvent(domain, uri string) EdgeRequestEvent {
	return EdgeRequestEvent{
		Records: []EdgeEventRecord{{
			Cf: EdgeCf{
				Config: EdgeConfig{
					DistributionDomainName: domain,
					DistributionID:         "EDFDVBD6EXAMPLE",
					EventType:              "viewer-request",
					RequestID:              uuid.Must(uuid.NewV4()).String(),
				},
				Request: EdgeRequest{
					ClientIP: "203.0.113.178",
					Method:   "GET",
					URI:      uri,
					Headers: map[string][]EdgeHeader{
						"host": {{Key: "Host", Value: domain}},
					},
				},
			},
		}},
	}
}
