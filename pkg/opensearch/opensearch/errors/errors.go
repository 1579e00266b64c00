package errors

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"regexp"

	"emperror.dev/errors"
)

var (
	ErrConfigMissing   = errors.New("missing required config")
	ErrConfigInvalid   = errors.New("invalid config")
	ErrMissingArgument = errors.New("required argument missing")
	ErrNotFound        = errors.New("not found")
)

// StatusError is an error carrying the HTTP status returned by the cluster.
type StatusError struct {
	Code   int
	Status string
}

func NewStatusError(code int) *StatusError {
	return &StatusError{
		Code:   code,
		Status: http.StatusText(code),
	}
}

func (e *StatusError) Error() string {
	if e.Status == "" {
		return fmt.Sprintf("opensearch returned status %d", e.Code)
	}
	return fmt.Sprintf("opensearch returned status %d %s", e.Code, e.Status)
}

func (e *StatusError) StatusCode() int {
	return e.Code
}

func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.Code == http.StatusNotFound
}

func MissingArgument(name string) error {
	return errors.WithMessagef(ErrMissingArgument, "%q", name)
}

// notFoundMessage is a compatibility shim for transports that only report
// a missing resource through the error text. Prefer a structured signal.
var notFoundMessage = regexp.MustCompile(`(?i)not\s*found|\b404\b`)

// IsNotFound reports whether err signals that the requested resource does
// not exist on the cluster.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return false
	}
	if errors.Is(err, ErrNotFound) {
		return true
	}

	var coded interface{ StatusCode() int }
	if errors.As(err, &coded) {
		return coded.StatusCode() == http.StatusNotFound
	}
	var tagged interface{ NotFound() bool }
	if errors.As(err, &tagged) {
		return tagged.NotFound()
	}

	return notFoundMessage.MatchString(err.Error())
}
