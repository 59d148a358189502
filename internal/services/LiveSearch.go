package services

import (
	"context"
	"stationd/internal/models"
	"stationd/internal/structures"
	"strings"
	"sync"
	"time"
)

type LiveResult struct {
	Query    string            `json:"query"`
	Stations []*models.Station `json:"stations"`
	HasMore  bool              `json:"has_more"`
	Pending  bool              `json:"pending"`
	Err      error             `json:"-"`
}

// LiveSearch turns a stream of search-text updates into at most one fetch per
// settled input. Results of superseded inputs are dropped.
type LiveSearch struct {
	mu         sync.Mutex
	debouncer  *Debouncer
	factory    SourceFactoryInterface
	timeout    time.Duration
	generation uint64
	result     LiveResult
}

func NewLiveSearch(factory SourceFactoryInterface, delay, timeout time.Duration) *LiveSearch {
	return &LiveSearch{
		debouncer: NewDebouncer(delay),
		factory:   factory,
		timeout:   timeout,
	}
}

func (l *LiveSearch) Update(text string) {
	text = strings.TrimSpace(text)

	l.mu.Lock()
	l.generation++
	gen := l.generation
	l.result = LiveResult{Query: text, Pending: true}
	l.mu.Unlock()

	l.debouncer.Trigger(func() { l.run(gen, text) })
}

func (l *LiveSearch) run(gen uint64, text string) {
	result := LiveResult{Query: text, Stations: make([]*models.Station, 0)}
	if text != "" {
		ctx, cancel := context.WithTimeout(context.Background(), l.timeout)
		defer cancel()

		source, err := l.factory.New(SourceRequest{Intent: IntentSearch, Text: text})
		if err == nil {
			result.Stations, err = source.Next(ctx)
			result.HasMore = source.HasMore()
		}
		result.Err = err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if gen != l.generation {
		return
	}
	l.result = result
}

func (l *LiveSearch) Result() LiveResult {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.result
}

func (l *LiveSearch) Stop() {
	l.debouncer.Cancel()
}

// LiveSearches holds one LiveSearch per client session.
type LiveSearches struct {
	sessions *boundedMap[*LiveSearch]
	factory  SourceFactoryInterface
	delay    time.Duration
	timeout  time.Duration
}

func NewLiveSearches(conf *structures.Config, factory SourceFactoryInterface) *LiveSearches {
	sessions := newBoundedMap[*LiveSearch](conf.Source.MaxOpen)
	sessions.onEvict = (*LiveSearch).Stop
	return &LiveSearches{
		sessions: sessions,
		factory:  factory,
		delay:    conf.Search.Debounce,
		timeout:  conf.Catalog.RequestTimeout,
	}
}

func (ls *LiveSearches) Update(session, text string) {
	live := ls.sessions.getOrCreate(session, func() *LiveSearch {
		return NewLiveSearch(ls.factory, ls.delay, ls.timeout)
	})
	live.Update(text)
}

func (ls *LiveSearches) Result(session string) (LiveResult, bool) {
	live, ok := ls.sessions.get(session)
	if !ok {
		return LiveResult{}, false
	}
	return live.Result(), true
}
