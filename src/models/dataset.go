package models

import "time"

// MDataset is an immutable snapshot of everything ingestion produced.
// A reload builds a new snapshot; nothing mutates a published one.
type MDataset struct {
	Version  uint64
	LoadedAt time.Time
	Source   string
	Rows     []MObservation
	Indices  []string // unique index names, first-appearance order
}

// -----------------------------------------------------------------------------

// NewDataset builds a snapshot and derives its index list.
func NewDataset(version uint64, source string, rows []MObservation) *MDataset {
	seen := make(map[string]struct{})
	var indices []string
	for _, r := range rows {
		if r.IndexName == "" {
			continue
		}
		if _, ok := seen[r.IndexName]; ok {
			continue
		}
		seen[r.IndexName] = struct{}{}
		indices = append(indices, r.IndexName)
	}

	return &MDataset{
		Version:  version,
		LoadedAt: time.Now().UTC(),
		Source:   source,
		Rows:     rows,
		Indices:  indices,
	}
}

// -----------------------------------------------------------------------------

// HasIndex reports whether name appears in the snapshot.
func (d *MDataset) HasIndex(name string) bool {
	for _, n := range d.Indices {
		if n == name {
			return true
		}
	}
	return false
}

// -----------------------------------------------------------------------------

// RowsFor returns the observations of one index that carry a close value.
func (d *MDataset) RowsFor(name string) []MObservation {
	var out []MObservation
	for _, r := range d.Rows {
		if r.IndexName == name && r.Close != nil {
			out = append(out, r)
		}
	}
	return out
}
