package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeStation_AllFields(t *testing.T) {
	st, err := DecodeStation(map[string]any{
		"stationuuid":  "9617a958-0601-11e8-ae97-52543be04c81",
		"changeuuid":   "c1",
		"name":         "  Jazz FM ",
		"url":          "http://example.com/playlist.m3u",
		"url_resolved": "http://example.com/stream",
		"bitrate":      float64(128),
		"votes":        "42",
		"clickcount":   float64(7),
		"countrycode":  "GB",
		"starred":      true,
	})
	require.NoError(t, err)

	assert.Equal(t, "9617a958-0601-11e8-ae97-52543be04c81", st.UUID)
	assert.Equal(t, "Jazz FM", st.Name)
	assert.Equal(t, 128, st.Bitrate)
	assert.Equal(t, 42, st.Votes)
	assert.Equal(t, 7, st.ClickCount)
	assert.Equal(t, "GB", st.CountryCode)
	assert.True(t, st.Starred)
	assert.Equal(t, "http://example.com/stream", st.StreamURL())
}

func TestDecodeStation_MissingUUID(t *testing.T) {
	_, err := DecodeStation(map[string]any{"name": "No id"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingField))

	var fe *FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "stationuuid", fe.Field)
}

func TestDecodeStation_MalformedOptionalDefaults(t *testing.T) {
	st, err := DecodeStation(map[string]any{"stationuuid": "abc", "bitrate": "fast"})
	require.NoError(t, err)
	assert.Equal(t, 0, st.Bitrate)
	assert.False(t, st.Starred)
}

func TestStreamURL_FallsBackToURL(t *testing.T) {
	st := &Station{URL: "http://a/b"}
	assert.Equal(t, "http://a/b", st.StreamURL())
}

func TestSame_ComparesIdentityOnly(t *testing.T) {
	a := &Station{UUID: "x", Name: "A", ChangeUUID: "1"}
	b := &Station{UUID: "x", Name: "B", ChangeUUID: "2"}
	c := &Station{UUID: "y", Name: "A", ChangeUUID: "1"}

	assert.True(t, a.Same(b))
	assert.False(t, a.Same(c))
	assert.False(t, a.Same(nil))
}

func TestDecodeStations_SkipsRecordsWithoutID(t *testing.T) {
	body := []byte(`[{"stationuuid":"a","name":"A"},{"name":"broken"},{"stationuuid":"b","name":"B"}]`)
	stations, skipped, err := DecodeStations(body)
	require.NoError(t, err)
	assert.Equal(t, 1, skipped)
	require.Len(t, stations, 2)
	assert.Equal(t, "a", stations[0].UUID)
	assert.Equal(t, "b", stations[1].UUID)
}

func TestDecodeStations_NotAnArray(t *testing.T) {
	_, _, err := DecodeStations([]byte(`{"error":"nope"}`))
	assert.Error(t, err)
}

func TestParseOrder(t *testing.T) {
	assert.Equal(t, OrderRandom, ParseOrder("RANDOM"))
	assert.Equal(t, OrderClickTrend, ParseOrder(" clicktrend "))
	assert.Equal(t, OrderVotes, ParseOrder(""))
	assert.Equal(t, OrderVotes, ParseOrder("loudness"))
}

func TestDecodeTags_StringCounts(t *testing.T) {
	tags, err := DecodeTags([]byte(`[{"name":"jazz","stationcount":"12"},{"name":"rock","stationcount":30},{"name":""}]`))
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, Tag{Name: "jazz", StationCount: 12}, tags[0])
	assert.Equal(t, Tag{Name: "rock", StationCount: 30}, tags[1])
}

func TestDecodeStats(t *testing.T) {
	stats, err := DecodeStats([]byte(`{"stations":30000,"tags":"8000"}`))
	require.NoError(t, err)
	assert.Equal(t, 8000, stats.Tags)
	assert.Equal(t, 30000, stats.Stations)

	_, err = DecodeStats([]byte(`{"stations":1}`))
	assert.True(t, errors.Is(err, ErrMissingField))
}
