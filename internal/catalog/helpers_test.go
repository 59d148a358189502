package catalog

import (
	"context"
	"errors"
	"net"
	"stationd/internal/providers"
	"stationd/internal/structures"
	"sync"
	"time"
)

func testConfig() *structures.Config {
	return &structures.Config{
		Catalog: structures.CatalogConfig{
			SrvDomain:      "example.test",
			FallbackHost:   "all.example.test",
			Scheme:         "http",
			UserAgent:      "stationd-test",
			RequestTimeout: 2 * time.Second,
		},
	}
}

// fakeHTTP answers every request through fn and remembers the URLs it saw.
type fakeHTTP struct {
	mu    sync.Mutex
	fn    func(url string) (*providers.HttpResponse, error)
	calls []string
	heads int
}

func (f *fakeHTTP) Get(_ context.Context, url string) (*providers.HttpResponse, error) {
	f.mu.Lock()
	f.calls = append(f.calls, url)
	fn := f.fn
	f.mu.Unlock()
	if fn == nil {
		return &providers.HttpResponse{Status: 200, Body: []byte(`{}`)}, nil
	}
	return fn(url)
}

func (f *fakeHTTP) Head(ctx context.Context, url string) (*providers.HttpResponse, error) {
	f.mu.Lock()
	f.heads++
	f.mu.Unlock()
	return f.Get(ctx, url)
}

func (f *fakeHTTP) Heads() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.heads
}

func (f *fakeHTTP) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

type fakeResolver struct {
	records []*net.SRV
	err     error
	names   []string
}

func (f *fakeResolver) LookupSRV(_ context.Context, service, proto, name string) (string, []*net.SRV, error) {
	f.names = append(f.names, "_"+service+"._"+proto+"."+name)
	return "", f.records, f.err
}

var errDNS = errors.New("no such host")
