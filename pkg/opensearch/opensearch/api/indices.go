package api

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/opensearch-project/opensearch-go/v2/opensearchtransport"
	"github.com/rancher/opni-osalias/pkg/logger"
	"github.com/rancher/opni-osalias/pkg/opensearch/opensearch/errors"
	"go.uber.org/zap"
)

const (
	AliasResultExists    = "exists"
	AliasResultNotExists = "not_exists"
	AliasResultError     = "error"
)

// AliasObserver receives the outcome of every alias lookup that reached
// the transport.
type AliasObserver interface {
	ObserveAliasCheck(result string, duration time.Duration)
}

type IndicesAPI struct {
	opensearchtransport.Interface
	// PathPrefix is the escaped path the cluster is served under, if any.
	PathPrefix string
	Logger     logger.ExtendedSugaredLogger
	Observer   AliasObserver
}

var existsAliasParams = []string{
	"ignore_indices",
	"ignore_unavailable",
	"allow_no_indices",
	"expand_wildcards",
}

type ExistsAliasRequest struct {
	// Index optionally limits the lookup to these indices.
	Index []string
	// Name lists the aliases to look up. Required.
	Name []string
	// Options holds query parameters. Only ignore_indices,
	// ignore_unavailable, allow_no_indices and expand_wildcards are sent.
	Options map[string]any
}

type aliasLookup int

const (
	aliasExists aliasLookup = iota
	aliasNotExists
	aliasLookupFailed
)

func (l aliasLookup) String() string {
	switch l {
	case aliasExists:
		return AliasResultExists
	case aliasNotExists:
		return AliasResultNotExists
	default:
		return AliasResultError
	}
}

func generateAliasPath(indices, names []string) string {
	return pathify(listify(indices), "_alias", listify(names))
}

// ExistsAlias returns true if the cluster reports that the requested
// aliases exist. A not found response or transport error is reported as
// false; any other transport error is returned unchanged.
func (a *IndicesAPI) ExistsAlias(ctx context.Context, request ExistsAliasRequest) (bool, error) {
	if listify(request.Name) == "" {
		return false, errors.MissingArgument("name")
	}

	path := generateAliasPath(request.Index, request.Name)
	start := time.Now()
	result, err := a.lookupAlias(ctx, path, extractParams(request.Options, existsAliasParams).Encode())
	if a.Observer != nil {
		a.Observer.ObserveAliasCheck(result.String(), time.Since(start))
	}

	switch result {
	case aliasExists:
		return true, nil
	case aliasNotExists:
		return false, nil
	default:
		return false, err
	}
}

func (a *IndicesAPI) lookupAlias(ctx context.Context, path, query string) (aliasLookup, error) {
	req, err := http.NewRequest(http.MethodHead, a.PathPrefix+path, nil)
	if err != nil {
		return aliasLookupFailed, err
	}
	req.URL.RawQuery = query
	if ctx != nil {
		req = req.WithContext(ctx)
	}

	res, err := a.Perform(req)
	if err != nil {
		if errors.IsNotFound(err) {
			a.debug("alias lookup reported not found", zap.String("path", path), zap.Error(err))
			return aliasNotExists, nil
		}
		return aliasLookupFailed, err
	}
	if res.Body != nil {
		defer res.Body.Close()
	}

	a.debug("alias lookup complete", zap.String("path", path), zap.Int("status", res.StatusCode))
	if res.StatusCode == http.StatusOK {
		return aliasExists, nil
	}
	return aliasNotExists, nil
}

func (a *IndicesAPI) debug(msg string, fields ...zap.Field) {
	if a.Logger == nil {
		return
	}
	a.Logger.Desugar().Debug(msg, fields...)
}

func (a *IndicesAPI) UpdateAlias(ctx context.Context, body io.Reader) (*Response, error) {
	method := http.MethodPost
	path := a.PathPrefix + "/_aliases"

	req, err := http.NewRequest(method, path, body)
	if err != nil {
		return nil, err
	}
	if ctx != nil {
		req = req.WithContext(ctx)
	}

	req.Header.Add(headerContentType, jsonContentHeader)
	res, err := a.Perform(req)
	return (*Response)(res), err
}
