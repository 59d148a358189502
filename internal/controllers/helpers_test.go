package controllers

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"stationd/internal/services"
	"stationd/internal/starred"
	"stationd/internal/structures"
	"stationd/internal/testutil"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	api     *ApiController
	starred *StarredController
	catalog *testutil.MockCatalog
	store   starred.StoreInterface
	sources *services.SourceRegistry
	logger  *testutil.MockLogger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	conf := &structures.Config{
		Catalog: structures.CatalogConfig{RequestTimeout: time.Second},
		Starred: structures.StarredConfig{FilePath: filepath.Join(t.TempDir(), "starred.json")},
		Source:  structures.SourceConfig{PageSize: 2, MaxOpen: 8},
		Search:  structures.SearchConfig{Debounce: 10 * time.Millisecond},
	}
	logger := &testutil.MockLogger{}
	metrics := &testutil.MockMetrics{}
	cat := &testutil.MockCatalog{}

	files := starred.NewFileManager(conf, &testutil.MockCompressor{}, logger, metrics)
	store := starred.NewStore(files, cat, logger, metrics)
	factory := services.NewSourceFactory(conf, cat, store)
	sources := services.NewSourceRegistry(conf)
	live := services.NewLiveSearches(conf, factory)

	api := NewApiController(conf, logger, factory, sources, cat, store, live)
	api.dispatch = func(f func()) { f() }

	return &fixture{
		api:     api,
		starred: NewStarredController(logger, store, cat),
		catalog: cat,
		store:   store,
		sources: sources,
		logger:  logger,
	}
}

func serve(handler http.HandlerFunc, method, target string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	handler(rr, httptest.NewRequest(method, target, nil))
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	return out
}
