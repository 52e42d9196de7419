package storage

import (
	"encoding/json"
	"io"
)

// ExportData is a run flattened into a single JSON document.
type ExportData struct {
	Run    *RunMetadata         `json:"run"`
	Times  []float64            `json:"times"`
	Series map[string][]float64 `json:"series"`
}

// ExportJSON writes the metadata and full metric series of runID to w.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	series, err := s.LoadSeries(runID)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(ExportData{Run: meta, Times: series.Times, Series: series.Values})
}
