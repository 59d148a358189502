package models

import (
	"errors"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/spf13/cast"
)

var ErrMissingField = errors.New("missing required field")

// FieldError reports a required field that is absent or malformed in a decoded record.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q: %s", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// Station is a catalog entry. Identity is the stable UUID; Starred is local state
// that the catalog never reports.
type Station struct {
	UUID        string `json:"stationuuid"`
	ChangeUUID  string `json:"changeuuid"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	URLResolved string `json:"url_resolved"`
	Homepage    string `json:"homepage"`
	Favicon     string `json:"favicon"`
	Tags        string `json:"tags"`
	Country     string `json:"country"`
	CountryCode string `json:"countrycode"`
	Language    string `json:"language"`
	Codec       string `json:"codec"`
	Bitrate     int    `json:"bitrate"`
	Votes       int    `json:"votes"`
	ClickCount  int    `json:"clickcount"`
	ClickTrend  int    `json:"clicktrend"`
	Starred     bool   `json:"starred"`
}

// StreamURL prefers the resolved stream address over the raw (possibly playlist) one.
func (s *Station) StreamURL() string {
	if s.URLResolved != "" {
		return s.URLResolved
	}
	return s.URL
}

func (s *Station) Same(other *Station) bool {
	if s == nil || other == nil {
		return false
	}
	return s.UUID == other.UUID
}

func (s *Station) Clone() *Station {
	c := *s
	return &c
}

// DecodeStation binds one JSON object field by field. stationuuid is required,
// everything else falls back to its zero value when absent or malformed.
func DecodeStation(raw map[string]any) (*Station, error) {
	id := strings.TrimSpace(cast.ToString(raw["stationuuid"]))
	if id == "" {
		return nil, &FieldError{Field: "stationuuid", Err: ErrMissingField}
	}

	return &Station{
		UUID:        id,
		ChangeUUID:  cast.ToString(raw["changeuuid"]),
		Name:        strings.TrimSpace(cast.ToString(raw["name"])),
		URL:         cast.ToString(raw["url"]),
		URLResolved: cast.ToString(raw["url_resolved"]),
		Homepage:    cast.ToString(raw["homepage"]),
		Favicon:     cast.ToString(raw["favicon"]),
		Tags:        cast.ToString(raw["tags"]),
		Country:     cast.ToString(raw["country"]),
		CountryCode: cast.ToString(raw["countrycode"]),
		Language:    cast.ToString(raw["language"]),
		Codec:       cast.ToString(raw["codec"]),
		Bitrate:     cast.ToInt(raw["bitrate"]),
		Votes:       cast.ToInt(raw["votes"]),
		ClickCount:  cast.ToInt(raw["clickcount"]),
		ClickTrend:  cast.ToInt(raw["clicktrend"]),
		Starred:     cast.ToBool(raw["starred"]),
	}, nil
}

// DecodeStations parses a JSON array of station objects. Records without an
// identifier are skipped and counted; a body that is not an array is an error.
func DecodeStations(data []byte) ([]*Station, int, error) {
	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, 0, fmt.Errorf("decode stations: %w", err)
	}

	stations := make([]*Station, 0, len(raw))
	skipped := 0
	for _, obj := range raw {
		st, err := DecodeStation(obj)
		if err != nil {
			skipped++
			continue
		}
		stations = append(stations, st)
	}
	return stations, skipped, nil
}
