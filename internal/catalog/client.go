package catalog

import (
	"context"
	"errors"
	"fmt"
	"stationd/internal/models"
	"stationd/internal/providers"
	"strconv"
	"strings"
)

type ClientInterface interface {
	Search(ctx context.Context, params models.SearchParams, rowcount, offset int) ([]*models.Station, error)
	ByUUID(ctx context.Context, uuids string) ([]*models.Station, error)
	Vote(ctx context.Context, uuid string)
	Click(ctx context.Context, uuid string)
	Tags(ctx context.Context, offset, limit int) ([]models.Tag, error)
	Stats(ctx context.Context) (*models.Stats, error)
}

// Client issues catalog queries against whichever server the registry has
// selected and feeds every outcome back into the registry's score.
type Client struct {
	registry ServerRegistryInterface
	http     providers.HttpClientInterface
	cache    providers.CacheProviderInterface
	logger   providers.Logger
	metrics  providers.MetricsProviderInterface
}

func NewClient(registry ServerRegistryInterface, http providers.HttpClientInterface, cache providers.CacheProviderInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) ClientInterface {
	return &Client{
		registry: registry,
		http:     http,
		cache:    cache,
		logger:   logger,
		metrics:  metrics,
	}
}

// Search resolves an explicit UUID set by direct lookups, ignoring every other
// field; otherwise it runs a stations search. Random ordering is never cached.
func (c *Client) Search(ctx context.Context, params models.SearchParams, rowcount, offset int) ([]*models.Station, error) {
	if params.HasUUIDs() {
		return c.searchByUUIDs(ctx, params.UUIDs, rowcount, offset)
	}

	path := "/json/stations/search?" + BuildSearchQuery(params, rowcount, offset)
	var stations []*models.Station
	err := c.get(ctx, "search", path, params.Order != models.OrderRandom, func(body []byte) error {
		decoded, skipped, err := models.DecodeStations(body)
		if err != nil {
			return err
		}
		if skipped > 0 {
			c.logger.Debugf(providers.TypeCatalog, "Skipped %d search results without identifier", skipped)
		}
		stations = decoded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stations, nil
}

// uuidBatch is the number of identifiers per by-UUID lookup. Batches are
// aligned on the identifier list so later pages hit the same cache keys.
const uuidBatch = 100

// searchByUUIDs resolves the identifier list in order and pages over the
// stations found. Identifiers the catalog does not know are skipped, so they
// never end a cursor early. Duplicates collapse by identity.
func (c *Client) searchByUUIDs(ctx context.Context, uuids []string, rowcount, offset int) ([]*models.Station, error) {
	ids := dedupe(uuids)
	offset = max(offset, 0)
	want := len(ids)
	if rowcount > 0 {
		want = offset + rowcount
	}

	found := make([]*models.Station, 0, min(want, len(ids)))
	for start := 0; start < len(ids) && len(found) < want; start += uuidBatch {
		chunk := ids[start:min(start+uuidBatch, len(ids))]
		stations, err := c.ByUUID(ctx, strings.Join(chunk, ","))
		if err != nil {
			return nil, err
		}
		byID := make(map[string]*models.Station, len(stations))
		for _, st := range stations {
			byID[st.UUID] = st
		}
		for _, id := range chunk {
			if st, ok := byID[id]; ok {
				found = append(found, st)
			}
		}
	}

	if offset >= len(found) {
		return make([]*models.Station, 0), nil
	}
	return found[offset:min(want, len(found))], nil
}

// ByUUID accepts one identifier or a comma-separated list. Blank input never
// touches the network.
func (c *Client) ByUUID(ctx context.Context, uuids string) ([]*models.Station, error) {
	ids := make([]string, 0, strings.Count(uuids, ",")+1)
	for _, id := range strings.Split(uuids, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, EscapeQueryValue(id))
		}
	}
	if len(ids) == 0 {
		return make([]*models.Station, 0), nil
	}

	var stations []*models.Station
	err := c.get(ctx, "byuuid", "/json/stations/byuuid?uuids="+strings.Join(ids, ","), true, func(body []byte) error {
		decoded, _, err := models.DecodeStations(body)
		stations = decoded
		return err
	})
	if err != nil {
		return nil, err
	}
	return stations, nil
}

func (c *Client) Vote(ctx context.Context, uuid string) {
	c.track(ctx, "vote", "/json/vote/"+EscapeQueryValue(uuid))
}

func (c *Client) Click(ctx context.Context, uuid string) {
	c.track(ctx, "click", "/json/url/"+EscapeQueryValue(uuid))
}

// track sends a best-effort interaction signal. Nothing is returned, but the
// outcome is scored the same way as any other catalog request.
func (c *Client) track(ctx context.Context, endpoint, path string) {
	resp, host, err := c.send(ctx, endpoint, path)
	if err != nil {
		c.logger.Warnf(providers.TypeCatalog, "%s %s failed: %s", endpoint, path, err)
		return
	}
	if !resp.OK() {
		c.logger.Warnf(providers.TypeCatalog, "%s %s on %s returned status %d", endpoint, path, host, resp.Status)
		c.registry.RecordOutcome(ctx, false)
		return
	}
	c.registry.RecordOutcome(ctx, true)
	c.logger.Debugf(providers.TypeCatalog, "%s %s on %s returned status %d", endpoint, path, host, resp.Status)
}

func (c *Client) Tags(ctx context.Context, offset, limit int) ([]models.Tag, error) {
	path := "/json/tags"
	if limit > 0 {
		path += "?offset=" + strconv.Itoa(max(offset, 0)) + "&limit=" + strconv.Itoa(limit)
	}
	var tags []models.Tag
	err := c.get(ctx, "tags", path, true, func(body []byte) error {
		decoded, err := models.DecodeTags(body)
		tags = decoded
		return err
	})
	if err != nil {
		return nil, err
	}
	return tags, nil
}

func (c *Client) Stats(ctx context.Context) (*models.Stats, error) {
	var stats *models.Stats
	err := c.get(ctx, "stats", "/json/stats", true, func(body []byte) error {
		decoded, err := models.DecodeStats(body)
		stats = decoded
		return err
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// get fetches path, decodes it and records the outcome. Cached bodies are
// decoded without touching the registry.
func (c *Client) get(ctx context.Context, endpoint, path string, cacheable bool, decode func([]byte) error) error {
	if cacheable {
		if body, ok := c.cache.Get(path); ok {
			if err := decode(body); err == nil {
				return nil
			}
		}
	}

	resp, host, err := c.send(ctx, endpoint, path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	if !resp.OK() {
		c.registry.RecordOutcome(ctx, false)
		return fmt.Errorf("%w: %w: %s returned %d", ErrSourceUnavailable, ErrBadStatus, host, resp.Status)
	}
	if err := decode(resp.Body); err != nil {
		c.logger.Warnf(providers.TypeCatalog, "Malformed %s response from %s: %s", endpoint, host, err)
		c.registry.RecordOutcome(ctx, false)
		return fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}

	c.registry.RecordOutcome(ctx, true)
	if cacheable {
		c.cache.Set(path, resp.Body)
	}
	return nil
}

// send issues one request to the selected server. Transport failures degrade
// the server unless the caller cancelled or the request could not be built.
func (c *Client) send(ctx context.Context, endpoint, path string) (*providers.HttpResponse, string, error) {
	host := c.registry.Current()
	if host == "" {
		host = c.registry.Select(ctx)
	}
	if host == "" {
		return nil, "", ErrNoServers
	}

	resp, err := c.http.Get(ctx, c.registry.Scheme()+"://"+host+path)
	if err != nil {
		if errors.Is(err, providers.ErrInvalidRequest) {
			c.logger.Warnf(providers.TypeCatalog, "Request %s to %s not sent: %s", path, host, err)
			return nil, host, err
		}
		c.metrics.IncCatalogRequests(endpoint, 0)
		if !errors.Is(err, context.Canceled) {
			c.logger.Warnf(providers.TypeCatalog, "Request %s to %s failed: %s", path, host, err)
			c.registry.RecordOutcome(ctx, false)
		}
		return nil, host, err
	}
	c.metrics.IncCatalogRequests(endpoint, resp.Status)
	return resp, host, nil
}
