package services

import (
	"context"
	"errors"
	"fmt"
	"stationd/internal/catalog"
	"stationd/internal/models"
)

// FetchFunc returns up to rowcount stations starting at offset.
type FetchFunc func(ctx context.Context, rowcount, offset int) ([]*models.Station, error)

type StarredLookup interface {
	Contains(uuid string) bool
}

type StationSourceInterface interface {
	Next(ctx context.Context) ([]*models.Station, error)
	HasMore() bool
	Offset() int
	PageSize() int
}

// StationSource is a resumable cursor over one fixed query. Each Next asks
// for one record more than a page; that lookahead decides HasMore and is
// never returned. Calls to Next must not overlap.
type StationSource struct {
	fetch    FetchFunc
	starred  StarredLookup
	pageSize int
	offset   int
	more     bool
}

func NewStationSource(fetch FetchFunc, pageSize int, starred StarredLookup) StationSourceInterface {
	if pageSize < 1 {
		pageSize = 1
	}
	return &StationSource{
		fetch:    fetch,
		starred:  starred,
		pageSize: pageSize,
		more:     true,
	}
}

func (s *StationSource) Next(ctx context.Context) ([]*models.Station, error) {
	stations, err := s.fetch(ctx, s.pageSize+1, s.offset)
	if err != nil {
		if !errors.Is(err, catalog.ErrSourceUnavailable) {
			err = fmt.Errorf("%w: %w", catalog.ErrSourceUnavailable, err)
		}
		return nil, fmt.Errorf("page at offset %d: %w", s.offset, err)
	}

	s.offset += s.pageSize
	s.more = len(stations) > s.pageSize
	if s.more {
		stations = stations[:s.pageSize]
	}

	if s.starred != nil {
		for _, st := range stations {
			if !st.Starred && s.starred.Contains(st.UUID) {
				st.Starred = true
			}
		}
	}
	return stations, nil
}

func (s *StationSource) HasMore() bool {
	return s.more
}

func (s *StationSource) Offset() int {
	return s.offset
}

func (s *StationSource) PageSize() int {
	return s.pageSize
}
