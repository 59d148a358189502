package testutil

import (
	"context"
	"stationd/internal/models"
	"stationd/internal/providers"
	"strings"
	"sync"
	"time"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Contains reports whether any entry at level has a format containing substr.
func (m *MockLogger) Contains(level, substr string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.Logs {
		if e.Level == level && strings.Contains(e.Format, substr) {
			return true
		}
	}
	return false
}

// MockCatalog implements catalog.ClientInterface with injectable behavior.
type MockCatalog struct {
	mu         sync.Mutex
	SearchFn   func(params models.SearchParams, rowcount, offset int) ([]*models.Station, error)
	ByUUIDFn   func(uuids string) ([]*models.Station, error)
	TagsFn     func(offset, limit int) ([]models.Tag, error)
	StatsFn    func() (*models.Stats, error)
	SearchArgs []SearchCall
	ByUUIDArgs []string
	Votes      []string
	Clicks     []string
}

type SearchCall struct {
	Params   models.SearchParams
	Rowcount int
	Offset   int
}

func (m *MockCatalog) Search(_ context.Context, params models.SearchParams, rowcount, offset int) ([]*models.Station, error) {
	m.mu.Lock()
	m.SearchArgs = append(m.SearchArgs, SearchCall{Params: params, Rowcount: rowcount, Offset: offset})
	fn := m.SearchFn
	m.mu.Unlock()
	if fn == nil {
		return make([]*models.Station, 0), nil
	}
	return fn(params, rowcount, offset)
}

func (m *MockCatalog) ByUUID(_ context.Context, uuids string) ([]*models.Station, error) {
	m.mu.Lock()
	m.ByUUIDArgs = append(m.ByUUIDArgs, uuids)
	fn := m.ByUUIDFn
	m.mu.Unlock()
	if fn == nil {
		return make([]*models.Station, 0), nil
	}
	return fn(uuids)
}

func (m *MockCatalog) Vote(_ context.Context, uuid string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Votes = append(m.Votes, uuid)
}

func (m *MockCatalog) Click(_ context.Context, uuid string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Clicks = append(m.Clicks, uuid)
}

func (m *MockCatalog) Tags(_ context.Context, offset, limit int) ([]models.Tag, error) {
	if m.TagsFn == nil {
		return make([]models.Tag, 0), nil
	}
	return m.TagsFn(offset, limit)
}

func (m *MockCatalog) Stats(_ context.Context) (*models.Stats, error) {
	if m.StatsFn == nil {
		return &models.Stats{}, nil
	}
	return m.StatsFn()
}

func (m *MockCatalog) SearchCalls() []SearchCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]SearchCall(nil), m.SearchArgs...)
}

func (m *MockCatalog) ByUUIDCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.ByUUIDArgs...)
}

// MockStarred implements the Contains lookup used by station sources.
type MockStarred struct {
	IDs map[string]bool
}

func (m *MockStarred) Contains(uuid string) bool {
	return m.IDs[uuid]
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	// Default: return as-is (identity)
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() {}

// MockMetrics implements providers.MetricsProviderInterface and keeps the
// values tests care about.
type MockMetrics struct {
	mu           sync.Mutex
	Reselections int
	LastScore    int
	StarredTotal int
	CacheHits    int
	CacheMisses  int
	Persists     int
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCatalogRequests(_ string, _ int)               {}

func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}

func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}

func (m *MockMetrics) SetServerScore(_ string, score int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastScore = score
}

func (m *MockMetrics) IncServerReselections() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Reselections++
}

func (m *MockMetrics) SetStarredTotal(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StarredTotal = count
}

func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Persists++
}
