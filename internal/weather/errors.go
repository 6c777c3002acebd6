package weather

import (
	"errors"
	"fmt"
)

// ErrInvalidResponseFormat is returned when the upstream body lacks
// response.body.items.item.
var ErrInvalidResponseFormat = errors.New("invalid API response format")

// SuccessCode is the upstream resultCode for a successful call.
const SuccessCode = "00"

// UpstreamError is a well-formed upstream response with a non-success code.
type UpstreamError struct {
	Code    string
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("upstream result code %s", e.Code)
	}
	return fmt.Sprintf("upstream result code %s: %s", e.Code, e.Message)
}

// TransportError is a failed HTTP exchange: network, DNS, or a non-2xx status.
// Message holds the upstream resultMsg when the error body carried one.
type TransportError struct {
	Status  int
	Message string
	Err     error
}

func (e *TransportError) Error() string {
	switch {
	case e.Message != "" && e.Status != 0:
		return fmt.Sprintf("transport error (status %d): %s", e.Status, e.Message)
	case e.Message != "":
		return "transport error: " + e.Message
	case e.Err != nil:
		return "transport error: " + e.Err.Error()
	default:
		return fmt.Sprintf("transport error (status %d)", e.Status)
	}
}

func (e *TransportError) Unwrap() error { return e.Err }

// GenericFetchError is recorded for failures that did not come from the HTTP layer.
const GenericFetchError = "Failed to fetch weather data"

// StoreMessage renders a fetch error as the shared store error string.
func StoreMessage(err error) string {
	var te *TransportError
	if errors.As(err, &te) {
		msg := te.Message
		if msg == "" && te.Err != nil {
			msg = te.Err.Error()
		}
		if msg == "" {
			msg = fmt.Sprintf("request failed with status code %d", te.Status)
		}
		return "API Error: " + msg
	}

	var ue *UpstreamError
	if errors.As(err, &ue) {
		if ue.Message == "" {
			return "API Error"
		}
		return "API Error: " + ue.Message
	}

	return GenericFetchError
}
