package models

import (
	"fmt"

	json "github.com/goccy/go-json"
)

const (
	AppID         = "stationd"
	StarredFileID = "starred"
	SchemaVersion = "2.0"
)

// StarredDocument is the on-disk envelope of the starred store (schema 2.0).
// Schema 1 files were a bare array of stations.
type StarredDocument struct {
	App      string     `json:"app"`
	File     string     `json:"file"`
	Schema   string     `json:"schema"`
	Stations []*Station `json:"stations"`
	Searches []string   `json:"searches"`
}

func NewStarredDocument(stations []*Station, searches []string) *StarredDocument {
	if stations == nil {
		stations = make([]*Station, 0)
	}
	if searches == nil {
		searches = make([]string, 0)
	}
	return &StarredDocument{
		App:      AppID,
		File:     StarredFileID,
		Schema:   SchemaVersion,
		Stations: stations,
		Searches: searches,
	}
}

// ParseStarredDocument accepts both layouts. legacy is true when the input had
// no schema marker and was read as a bare station array.
func ParseStarredDocument(data []byte) (doc *StarredDocument, legacy bool, err error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(data, &envelope); err == nil {
		if schema, ok := envelope["schema"]; ok {
			return parseCurrent(envelope, schema)
		}
	}

	stations, _, err := DecodeStations(data)
	if err != nil {
		return nil, true, fmt.Errorf("legacy starred document: %w", err)
	}
	return NewStarredDocument(stations, nil), true, nil
}

func parseCurrent(envelope map[string]json.RawMessage, schema json.RawMessage) (*StarredDocument, bool, error) {
	var version string
	if err := json.Unmarshal(schema, &version); err != nil {
		return nil, false, &FieldError{Field: "schema", Err: err}
	}

	var stations []*Station
	if raw, ok := envelope["stations"]; ok && string(raw) != "null" {
		decoded, _, err := DecodeStations(raw)
		if err != nil {
			return nil, false, err
		}
		stations = decoded
	}

	var searches []string
	if raw, ok := envelope["searches"]; ok && string(raw) != "null" {
		if err := json.Unmarshal(raw, &searches); err != nil {
			return nil, false, &FieldError{Field: "searches", Err: err}
		}
	}

	doc := NewStarredDocument(stations, searches)
	doc.Schema = version
	if raw, ok := envelope["app"]; ok {
		_ = json.Unmarshal(raw, &doc.App)
	}
	if raw, ok := envelope["file"]; ok {
		_ = json.Unmarshal(raw, &doc.File)
	}
	return doc, false, nil
}
