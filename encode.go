package portfolio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// This file contains the boundary codecs: JSON documents are parsed into
// strictly typed values, then validated, so malformed data never reaches the
// arithmetic.

// DecodeSnapshot reads a single JSON snapshot and validates it.
//
// Unknown fields are rejected, a typo in a field name would otherwise silently
// zero an amount.
func DecodeSnapshot(r io.Reader) (PortfolioSnapshot, error) {
	var s PortfolioSnapshot
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return PortfolioSnapshot{}, fmt.Errorf("format error in snapshot: %w", err)
	}
	if err := s.Validate(); err != nil {
		return PortfolioSnapshot{}, err
	}
	return s, nil
}

// EncodeSnapshot writes s in the format read by DecodeSnapshot.
func EncodeSnapshot(w io.Writer, s PortfolioSnapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// LoadSnapshot decodes the snapshot stored in filename.
//
// An empty filename loads the PreviewSnapshot.
func LoadSnapshot(filename string) (PortfolioSnapshot, error) {
	if filename == "" {
		return PreviewSnapshot(), nil
	}
	f, err := os.Open(filename)
	if err != nil {
		return PortfolioSnapshot{}, err
	}
	defer f.Close()
	s, err := DecodeSnapshot(f)
	if err != nil {
		return PortfolioSnapshot{}, fmt.Errorf("error in %q: %w", filename, err)
	}
	return s, nil
}

// DecodeProgress reads a `{"current": …, "target": …}` progress document.
//
// Missing counters follow the campaign defaults: no current means nothing
// committed yet, no target means DefaultTarget. Extra fields are ignored.
func DecodeProgress(r io.Reader) (ProgressState, error) {
	var doc struct {
		Current *float64 `json:"current"`
		Target  *float64 `json:"target"`
	}
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return ProgressState{}, fmt.Errorf("format error in progress document: %w", err)
	}
	p := InitialProgress()
	if doc.Current != nil {
		p.Current = *doc.Current
	}
	if doc.Target != nil && *doc.Target != 0 {
		p.Target = *doc.Target
	}
	if err := p.Validate(); err != nil {
		return ProgressState{}, err
	}
	return p, nil
}

// EncodeProgress writes p as a progress document.
func EncodeProgress(w io.Writer, p ProgressState) error {
	if err := p.Validate(); err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(p)
}
