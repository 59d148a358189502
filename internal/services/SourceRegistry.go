package services

import (
	"context"
	"errors"
	"stationd/internal/models"
	"stationd/internal/structures"
	"sync"

	"github.com/google/uuid"
)

var ErrUnknownSource = errors.New("unknown or expired source")

type Page struct {
	Stations []*models.Station `json:"stations"`
	HasMore  bool              `json:"has_more"`
	Offset   int               `json:"offset"`
}

// SourceRegistry keeps open cursors for API clients. Each cursor has its own
// lock so concurrent requests for the same id are served one after another.
type SourceRegistry struct {
	sources *boundedMap[*openSource]
}

type openSource struct {
	mu     sync.Mutex
	source StationSourceInterface
}

func NewSourceRegistry(conf *structures.Config) *SourceRegistry {
	return &SourceRegistry{sources: newBoundedMap[*openSource](conf.Source.MaxOpen)}
}

func (r *SourceRegistry) Open(source StationSourceInterface) string {
	id := uuid.NewString()
	r.sources.put(id, &openSource{source: source})
	return id
}

func (r *SourceRegistry) Next(ctx context.Context, id string) (*Page, error) {
	open, ok := r.sources.get(id)
	if !ok {
		return nil, ErrUnknownSource
	}

	open.mu.Lock()
	defer open.mu.Unlock()

	offset := open.source.Offset()
	stations, err := open.source.Next(ctx)
	if err != nil {
		return nil, err
	}
	return &Page{Stations: stations, HasMore: open.source.HasMore(), Offset: offset}, nil
}

func (r *SourceRegistry) Close(id string) bool {
	return r.sources.delete(id)
}

func (r *SourceRegistry) Len() int {
	return r.sources.len()
}
