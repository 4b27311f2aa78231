// Package storage persists the standups collection.
//
// A Gateway moves opaque bytes to and from one fixed key; Store layers the
// TOML codec on top. Two gateways ship: Files (the default, one file under the
// data directory) and Bolt (a bbolt database). Memory is the in-process
// gateway used by tests.
package storage

import (
	"errors"
	"fmt"

	"github.com/five82/standups/internal/standup"
)

// Store loads and saves the whole collection under Key.
type Store struct {
	gateway Gateway
}

// NewStore wraps a gateway.
func NewStore(g Gateway) *Store {
	return &Store{gateway: g}
}

// Load returns the saved collection. A missing or empty file is an empty
// collection, not an error.
func (s *Store) Load() ([]standup.Standup, error) {
	data, err := s.gateway.Load(Key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load standups: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	standups, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("load standups: %w", err)
	}
	return standups, nil
}

// Save replaces the saved collection.
func (s *Store) Save(standups []standup.Standup) error {
	data, err := Encode(standups)
	if err != nil {
		return fmt.Errorf("save standups: %w", err)
	}
	if err := s.gateway.Save(data, Key); err != nil {
		return fmt.Errorf("save standups: %w", err)
	}
	return nil
}
