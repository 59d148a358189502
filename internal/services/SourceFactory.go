package services

import (
	"context"
	"errors"
	"fmt"
	"stationd/internal/catalog"
	"stationd/internal/models"
	"stationd/internal/starred"
	"stationd/internal/structures"
	"strings"
)

type Intent string

const (
	IntentRandom    Intent = "random"
	IntentTrending  Intent = "trending"
	IntentPopular   Intent = "popular"
	IntentSearch    Intent = "search"
	IntentCountry   Intent = "country"
	IntentTag       Intent = "tag"
	IntentFavorites Intent = "favorites"
	IntentUUIDs     Intent = "uuids"

	maxPageSize = 500
)

var ErrUnknownIntent = errors.New("unknown source intent")

// SourceRequest is the caller's query intent. Order and Reverse only apply
// to IntentSearch; a nil Reverse means descending.
type SourceRequest struct {
	Intent      Intent
	Text        string
	CountryCode string
	Tags        []string
	Order       string
	Reverse     *bool
	UUIDs       []string
	PageSize    int
}

type SourceFactoryInterface interface {
	New(req SourceRequest) (StationSourceInterface, error)
}

type SourceFactory struct {
	conf    *structures.Config
	catalog catalog.ClientInterface
	store   starred.StoreInterface
}

func NewSourceFactory(conf *structures.Config, catalog catalog.ClientInterface, store starred.StoreInterface) SourceFactoryInterface {
	return &SourceFactory{
		conf:    conf,
		catalog: catalog,
		store:   store,
	}
}

func (f *SourceFactory) New(req SourceRequest) (StationSourceInterface, error) {
	pageSize := f.conf.Source.PageSize
	if req.PageSize > 0 {
		pageSize = min(req.PageSize, maxPageSize)
	}

	if req.Intent == IntentFavorites {
		return NewStationSource(f.favorites, pageSize, f.store), nil
	}

	params, err := paramsFor(req)
	if err != nil {
		return nil, err
	}
	fetch := func(ctx context.Context, rowcount, offset int) ([]*models.Station, error) {
		return f.catalog.Search(ctx, params, rowcount, offset)
	}
	return NewStationSource(fetch, pageSize, f.store), nil
}

// favorites pages through the local starred list without touching the network.
func (f *SourceFactory) favorites(_ context.Context, rowcount, offset int) ([]*models.Station, error) {
	all := f.store.List()
	if offset >= len(all) {
		return make([]*models.Station, 0), nil
	}
	return all[offset:min(offset+rowcount, len(all))], nil
}

func paramsFor(req SourceRequest) (models.SearchParams, error) {
	switch req.Intent {
	case IntentRandom:
		return models.SearchParams{Order: models.OrderRandom}, nil
	case IntentTrending:
		return models.SearchParams{Order: models.OrderClickTrend, Reverse: true}, nil
	case IntentPopular:
		return models.SearchParams{Order: models.OrderVotes, Reverse: true}, nil
	case IntentSearch:
		reverse := true
		if req.Reverse != nil {
			reverse = *req.Reverse
		}
		return models.SearchParams{
			Text:        req.Text,
			CountryCode: req.CountryCode,
			Tags:        req.Tags,
			Order:       models.ParseOrder(req.Order),
			Reverse:     reverse,
			UUIDs:       req.UUIDs,
		}, nil
	case IntentCountry:
		cc := strings.ToUpper(strings.TrimSpace(req.CountryCode))
		if cc == "" {
			return models.SearchParams{}, fmt.Errorf("country intent needs a country code")
		}
		return models.SearchParams{CountryCode: cc, Order: models.OrderVotes, Reverse: true}, nil
	case IntentTag:
		if len(req.Tags) == 0 {
			return models.SearchParams{}, fmt.Errorf("tag intent needs at least one tag")
		}
		return models.SearchParams{Tags: req.Tags, Order: models.OrderVotes, Reverse: true}, nil
	case IntentUUIDs:
		if len(req.UUIDs) == 0 {
			return models.SearchParams{}, fmt.Errorf("uuids intent needs at least one identifier")
		}
		return models.SearchParams{UUIDs: req.UUIDs}, nil
	default:
		return models.SearchParams{}, fmt.Errorf("%w: %q", ErrUnknownIntent, req.Intent)
	}
}
