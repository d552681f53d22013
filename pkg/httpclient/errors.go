package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// StatusError is a non-2xx answer from a downstream service.
type StatusError struct {
	Service    string
	StatusCode int
	Code       string
	Message    string
}

func (e *StatusError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s returned %d (%s): %s", e.Service, e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("%s returned %d: %s", e.Service, e.StatusCode, e.Message)
}

// envelope matches the {"error": {"code", "message"}} body our services return.
type envelope struct {
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// ParseResponseError turns a non-2xx response into a *StatusError. The body
// is read (up to 64 KiB) but not closed.
func ParseResponseError(resp *http.Response, service string) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	se := &StatusError{Service: service, StatusCode: resp.StatusCode, Message: string(raw)}
	var env envelope
	if json.Unmarshal(raw, &env) == nil && env.Error != nil {
		se.Code = env.Error.Code
		se.Message = env.Error.Message
	}
	return se
}
