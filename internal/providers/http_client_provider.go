package providers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"stationd/internal/structures"

	"github.com/klauspost/compress/gzhttp"
)

const maxResponseBodySize = 8 << 20 // 8 MB

// ErrInvalidRequest marks a request that was never sent because it could not
// be built. The remote server is not at fault.
var ErrInvalidRequest = errors.New("invalid request")

type HttpResponse struct {
	Status int
	Body   []byte
}

func (r *HttpResponse) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

// HttpClientInterface reports the status code of every response; only
// transport failures are returned as errors.
type HttpClientInterface interface {
	Get(ctx context.Context, url string) (*HttpResponse, error)
	Head(ctx context.Context, url string) (*HttpResponse, error)
}

type HttpClient struct {
	client    *http.Client
	userAgent string
}

func NewHttpClientProvider(conf *structures.Config) HttpClientInterface {
	return &HttpClient{
		client: &http.Client{
			Timeout:   conf.Catalog.RequestTimeout,
			Transport: gzhttp.Transport(http.DefaultTransport),
		},
		userAgent: conf.Catalog.UserAgent,
	}
}

func (c *HttpClient) Get(ctx context.Context, url string) (*HttpResponse, error) {
	return c.do(ctx, http.MethodGet, url)
}

func (c *HttpClient) Head(ctx context.Context, url string) (*HttpResponse, error) {
	return c.do(ctx, http.MethodHead, url)
}

func (c *HttpClient) do(ctx context.Context, method, url string) (*HttpResponse, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w: %w", ErrInvalidRequest, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return &HttpResponse{Status: resp.StatusCode, Body: body}, nil
}
