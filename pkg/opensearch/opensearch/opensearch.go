package opensearch

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/opensearch-project/opensearch-go/v2/opensearchtransport"
	"github.com/rancher/opni-osalias/pkg/logger"
	"github.com/rancher/opni-osalias/pkg/opensearch/opensearch/api"
	"github.com/rancher/opni-osalias/pkg/opensearch/opensearch/errors"
)

type Client struct {
	ClientOptions
	Indices api.IndicesAPI
}

type ClientConfig struct {
	URLs               []string
	Username           string
	Password           string
	CACert             []byte
	InsecureSkipVerify bool
	MaxRetries         int
	DisableRetry       bool
}

type ClientOptions struct {
	transport http.RoundTripper
	logger    logger.ExtendedSugaredLogger
	observer  api.AliasObserver
}

type ClientOption func(*ClientOptions)

func (o *ClientOptions) apply(opts ...ClientOption) {
	for _, op := range opts {
		op(o)
	}
}

func WithTransport(transport http.RoundTripper) ClientOption {
	return func(o *ClientOptions) {
		o.transport = transport
	}
}

func WithLogger(lg logger.ExtendedSugaredLogger) ClientOption {
	return func(o *ClientOptions) {
		o.logger = lg
	}
}

func WithAliasObserver(observer api.AliasObserver) ClientOption {
	return func(o *ClientOptions) {
		o.observer = observer
	}
}

func NewClient(cfg ClientConfig, opts ...ClientOption) (*Client, error) {
	if len(cfg.URLs) == 0 {
		return nil, fmt.Errorf("at least one url is required: %w", errors.ErrConfigMissing)
	}
	urls, prefix, err := addrsToURLs(cfg.URLs)
	if err != nil {
		return nil, err
	}

	options := ClientOptions{}
	options.apply(opts...)

	if options.transport == nil {
		// Set sane transport timeouts
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.DialContext = (&net.Dialer{
			Timeout: 5 * time.Second,
		}).DialContext
		transport.TLSHandshakeTimeout = 5 * time.Second
		// CACert is applied by opensearchtransport onto this config.
		transport.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: cfg.InsecureSkipVerify,
		}
		options.transport = transport
	}

	tc := opensearchtransport.Config{
		URLs:         urls,
		Username:     cfg.Username,
		Password:     cfg.Password,
		CACert:       cfg.CACert,
		Transport:    options.transport,
		MaxRetries:   cfg.MaxRetries,
		DisableRetry: cfg.DisableRetry,
		RetryBackoff: retryBackoff,
	}
	if options.logger != nil {
		tc.Logger = logger.NewOpensearchTransportLogger(options.logger.XNamed("transport").Zap())
	}

	client, err := opensearchtransport.New(tc)
	if err != nil {
		return nil, err
	}

	var indicesLogger logger.ExtendedSugaredLogger
	if options.logger != nil {
		indicesLogger = options.logger.XNamed("indices")
	}

	return &Client{
		ClientOptions: options,
		Indices: api.IndicesAPI{
			Interface:  client,
			PathPrefix: prefix,
			Logger:     indicesLogger,
			Observer:   options.observer,
		},
	}, nil
}

// retryBackoff computes the delay before the given retry attempt. It keeps
// no state between calls so concurrent requests never share a back-off.
func retryBackoff(attempt int) time.Duration {
	b := backoff.NewExponentialBackOff()
	delay := b.NextBackOff()
	for i := 1; i < attempt; i++ {
		delay = b.NextBackOff()
	}
	return delay
}

// addrsToURLs parses addrs and strips their path. The transport only
// rewrites the unescaped path when joining a base path, so the shared
// path is returned separately and prepended by the API.
func addrsToURLs(addrs []string) ([]*url.URL, string, error) {
	var urls []*url.URL
	var prefix string
	for i, addr := range addrs {
		u, err := url.Parse(strings.TrimRight(addr, "/"))
		if err != nil {
			return nil, "", fmt.Errorf("cannot parse url: %v", err)
		}
		p := u.EscapedPath()
		if i == 0 {
			prefix = p
		} else if p != prefix {
			return nil, "", fmt.Errorf("urls %q and %q must share the same path: %w", addrs[0], addr, errors.ErrConfigInvalid)
		}
		u.Path, u.RawPath = "", ""

		urls = append(urls, u)
	}
	return urls, prefix, nil
}
