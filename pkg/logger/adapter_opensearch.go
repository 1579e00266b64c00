package logger

import (
	"net/http"
	"time"

	"github.com/opensearch-project/opensearch-go/v2/opensearchtransport"
	"go.uber.org/zap"
)

type transportLogAdapter struct {
	logger *zap.SugaredLogger
}

var _ opensearchtransport.Logger = (*transportLogAdapter)(nil)

func (la *transportLogAdapter) LogRoundTrip(
	req *http.Request,
	res *http.Response,
	err error,
	start time.Time,
	dur time.Duration,
) error {
	fields := []interface{}{
		"method", req.Method,
		"path", req.URL.EscapedPath(),
		"duration", dur,
	}
	if req.URL.RawQuery != "" {
		fields = append(fields, "query", req.URL.RawQuery)
	}
	if res != nil {
		fields = append(fields, "status", res.StatusCode)
	}
	if err != nil {
		la.logger.With(fields...).Debugf("round trip failed: %v", err)
		return nil
	}
	la.logger.Debugw("round trip", fields...)
	return nil
}

func (la *transportLogAdapter) RequestBodyEnabled() bool {
	return false
}

func (la *transportLogAdapter) ResponseBodyEnabled() bool {
	return false
}

func NewOpensearchTransportLogger(logger *zap.SugaredLogger) opensearchtransport.Logger {
	return &transportLogAdapter{
		logger: logger,
	}
}
