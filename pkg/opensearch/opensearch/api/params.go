package api

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// listify splits each element on commas, drops empty entries and escapes
// every remaining component before joining them back with commas.
func listify(items []string) string {
	parts := lo.FlatMap(items, func(item string, _ int) []string {
		return strings.Split(item, ",")
	})
	parts = lo.Compact(lo.Map(parts, func(p string, _ int) string {
		return strings.TrimSpace(p)
	}))
	return strings.Join(lo.Map(parts, func(p string, _ int) string {
		return escapePathComponent(p)
	}), ",")
}

func escapePathComponent(s string) string {
	if s == "*" {
		return s
	}
	return strings.ReplaceAll(url.PathEscape(s), "%2A", "*")
}

// pathify joins non-empty segments into a rooted request path.
func pathify(segments ...string) string {
	var path strings.Builder
	for _, segment := range lo.Compact(segments) {
		path.WriteString("/")
		path.WriteString(segment)
	}
	return path.String()
}

// extractParams copies the allow-listed options into a query string.
// Unrecognized keys are dropped.
func extractParams(options map[string]any, valid []string) url.Values {
	q := url.Values{}
	for key, value := range lo.PickByKeys(options, valid) {
		q.Set(key, formatParam(value))
	}
	return q
}

func formatParam(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case []string:
		return strings.Join(v, ",")
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
