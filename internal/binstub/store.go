// Package binstub is a local stand-in for the BIN lookup service. It serves
// GET /lookup/:bin from a fixture file so the front ends can be exercised
// offline and in end-to-end tests.
package binstub

import (
	"fmt"
	"os"

	"bincheck/internal/bin"
	"bincheck/internal/jsonutil"
)

// Store holds fixture records keyed by digit prefix.
type Store struct {
	records map[string]bin.Result
}

// NewStore builds a store from in-memory records.
func NewStore(records map[string]bin.Result) *Store {
	s := &Store{records: make(map[string]bin.Result, len(records))}
	for k, v := range records {
		s.records[k] = v
	}
	return s
}

// LoadStore reads a JSON object of prefix -> record from path.
func LoadStore(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixtures: %w", err)
	}

	var records map[string]bin.Result
	if err := jsonutil.UnmarshalWithContext(data, &records, "decode fixtures "+path); err != nil {
		return nil, err
	}
	for k := range records {
		if bin.Sanitize(k) != k || bin.Validate(k) != nil {
			return nil, fmt.Errorf("fixture key %q: must be %d-%d digits", k, bin.MinDigits, bin.MaxDigits)
		}
	}
	return NewStore(records), nil
}

// Get returns the record for digits, falling back to shorter prefixes down
// to bin.MinDigits the way the real service matches ranges.
func (s *Store) Get(digits string) (bin.Result, bool) {
	for n := len(digits); n >= bin.MinDigits; n-- {
		if r, ok := s.records[digits[:n]]; ok {
			return r, true
		}
	}
	return bin.Result{}, false
}

// Len returns the number of fixture records.
func (s *Store) Len() int {
	return len(s.records)
}
