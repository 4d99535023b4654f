package checkin

import (
	"bytes"
	"encoding/json"
	"net/http"
)

// ErrorKind classifies why a report could not be produced.
type ErrorKind int

const (
	// KindUnreachable means the health check against the table failed.
	KindUnreachable ErrorKind = iota + 1
	// KindAccessDenied means a lookup was refused for lack of permission.
	KindAccessDenied
	// KindUnknown covers every other lookup failure.
	KindUnknown
)

func (k ErrorKind) String() string {
	switch k {
	case KindUnreachable:
		return "unreachable"
	case KindAccessDenied:
		return "access-denied"
	case KindUnknown:
		return "unknown"
	}
	return "invalid"
}

// LastSeen is one entry of the latestCheckins object.
type LastSeen struct {
	ID    string
	Value string
}

// LatestCheckins marshals as a JSON object whose keys keep slice order.
type LatestCheckins []LastSeen

func (l LatestCheckins) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range l {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(e.ID)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(e.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Get returns the value reported for id.
func (l LatestCheckins) Get(id string) (string, bool) {
	for _, e := range l {
		if e.ID == id {
			return e.Value, true
		}
	}
	return "", false
}

type StatusDocument struct {
	Message        string         `json:"message"`
	LatestCheckins LatestCheckins `json:"latestCheckins"`
}

type ErrorDetails struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

type ErrorDocument struct {
	Kind    ErrorKind    `json:"-"`
	Cause   error        `json:"-"`
	Error   string       `json:"error"`
	Details ErrorDetails `json:"details"`
}

func newErrorDocument(kind ErrorKind, msg string, cause error) *ErrorDocument {
	return &ErrorDocument{
		Kind:  kind,
		Cause: cause,
		Error: msg,
		Details: ErrorDetails{
			Name:    ErrorName(cause),
			Message: cause.Error(),
		},
	}
}

// Result is what a Reporter returns: exactly one of Status or Error is set.
type Result struct {
	Status *StatusDocument
	Error  *ErrorDocument
}

func (r Result) OK() bool {
	return r.Error == nil
}

func (r Result) StatusCode() int {
	if r.OK() {
		return http.StatusOK
	}
	return http.StatusInternalServerError
}

// Body is the JSON encoding of whichever document the result carries.
func (r Result) Body() ([]byte, error) {
	if r.Error != nil {
		return json.Marshal(r.Error)
	}
	return json.Marshal(r.Status)
}
