package models

import (
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/spf13/cast"
)

type Tag struct {
	Name         string `json:"name"`
	StationCount int    `json:"stationcount"`
}

// Stats is the subset of the catalog's /json/stats document we use.
type Stats struct {
	Stations int `json:"stations"`
	Tags     int `json:"tags"`
}

// DecodeTags parses a tag listing. stationcount is a string on some servers.
func DecodeTags(data []byte) ([]Tag, error) {
	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode tags: %w", err)
	}
	tags := make([]Tag, 0, len(raw))
	for _, obj := range raw {
		name := strings.TrimSpace(cast.ToString(obj["name"]))
		if name == "" {
			continue
		}
		tags = append(tags, Tag{Name: name, StationCount: cast.ToInt(obj["stationcount"])})
	}
	return tags, nil
}

func DecodeStats(data []byte) (*Stats, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode stats: %w", err)
	}
	if raw["tags"] == nil {
		return nil, &FieldError{Field: "tags", Err: ErrMissingField}
	}
	tags, err := cast.ToIntE(raw["tags"])
	if err != nil {
		return nil, &FieldError{Field: "tags", Err: err}
	}
	return &Stats{Stations: cast.ToInt(raw["stations"]), Tags: tags}, nil
}
