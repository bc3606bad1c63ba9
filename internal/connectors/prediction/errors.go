package prediction

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

var (
	ErrInvalidRequest  = errors.New("invalid prediction request")
	ErrInvalidResponse = errors.New("invalid prediction response")
)

// RequestFailedError is returned when the upstream API answers outside the 2xx range.
type RequestFailedError struct {
	Endpoint   string
	StatusCode int
	StatusText string
	Body       string
}

func (e *RequestFailedError) Error() string {
	return fmt.Sprintf("API call failed: %d %s", e.StatusCode, e.StatusText)
}

// IsRequestFailed unwraps err into a *RequestFailedError when possible.
func IsRequestFailed(err error) (*RequestFailedError, bool) {
	var rf *RequestFailedError
	if errors.As(err, &rf) {
		return rf, true
	}
	return nil, false
}
