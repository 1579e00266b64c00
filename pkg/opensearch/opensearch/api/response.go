package api

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	headerContentType = "Content-Type"
	jsonContentHeader = "application/json"
)

type Response http.Response

func (r *Response) IsError() bool {
	return r.StatusCode > 299
}

// String returns the status line followed by the body. The body is read
// and replaced so it can still be consumed by the caller.
func (r *Response) String() string {
	var out strings.Builder
	if r == nil {
		return "[0 <nil>]"
	}
	out.WriteString(fmt.Sprintf("[%d %s]", r.StatusCode, http.StatusText(r.StatusCode)))
	if r.Body == nil {
		return out.String()
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r.Body); err != nil {
		out.WriteString(fmt.Sprintf(" <error reading response body: %v>", err))
		return out.String()
	}
	r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(buf.Bytes()))
	if buf.Len() > 0 {
		out.WriteString(" ")
		out.WriteString(buf.String())
	}
	return out.String()
}
