package controllers

import (
	"errors"
	"net/http"
	"stationd/internal/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggle_FetchesUnknownStationFromCatalog(t *testing.T) {
	f := newFixture(t)
	f.catalog.ByUUIDFn = func(string) ([]*models.Station, error) {
		return []*models.Station{{UUID: "abc", Name: "Jazz", URL: "http://jazz/stream"}}, nil
	}

	rr := serve(f.starred.Toggle, http.MethodPost, "/starred/toggle?uuid=abc")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, map[string]any{"uuid": "abc", "starred": true}, decode[map[string]any](t, rr))
	assert.True(t, f.store.Contains("abc"))

	rr = serve(f.starred.Toggle, http.MethodPost, "/starred/toggle?uuid=abc")
	assert.Equal(t, map[string]any{"uuid": "abc", "starred": false}, decode[map[string]any](t, rr))
	assert.False(t, f.store.Contains("abc"))
	assert.Len(t, f.catalog.ByUUIDCalls(), 1)
}

func TestToggle_Errors(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, http.StatusBadRequest, serve(f.starred.Toggle, http.MethodPost, "/starred/toggle").Code)
	assert.Equal(t, http.StatusNotFound, serve(f.starred.Toggle, http.MethodPost, "/starred/toggle?uuid=nope").Code)

	f.catalog.ByUUIDFn = func(string) ([]*models.Station, error) { return nil, errors.New("down") }
	assert.Equal(t, http.StatusServiceUnavailable, serve(f.starred.Toggle, http.MethodPost, "/starred/toggle?uuid=nope").Code)
}

func TestStarredList_AndExport(t *testing.T) {
	f := newFixture(t)

	rr := serve(f.starred.List, http.MethodGet, "/starred")
	assert.Equal(t, "[]", rr.Body.String())

	require.NoError(t, f.store.Add(&models.Station{UUID: "a", Name: "Alpha", URL: "http://a/stream"}))
	list := decode[[]*models.Station](t, serve(f.starred.List, http.MethodGet, "/starred"))
	require.Len(t, list, 1)
	assert.True(t, list[0].Starred)

	rr = serve(f.starred.Export, http.MethodGet, "/starred/export")
	assert.Equal(t, "audio/x-mpegurl", rr.Header().Get("Content-Type"))
	assert.Equal(t, "#EXTM3U\n#EXTINF:-1,Alpha\nhttp://a/stream\n", rr.Body.String())
}

func TestSavedSearches(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, http.StatusBadRequest, serve(f.starred.AddSearch, http.MethodPost, "/searches").Code)

	rr := serve(f.starred.AddSearch, http.MethodPost, "/searches?q=jazz")
	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, []string{"jazz"}, decode[[]string](t, rr))

	assert.Equal(t, []string{"jazz"}, decode[[]string](t, serve(f.starred.Searches, http.MethodGet, "/searches")))

	assert.Equal(t, http.StatusNoContent, serve(f.starred.RemoveSearch, http.MethodPost, "/searches/remove?q=jazz").Code)
	assert.Equal(t, "[]", serve(f.starred.Searches, http.MethodGet, "/searches").Body.String())
}
