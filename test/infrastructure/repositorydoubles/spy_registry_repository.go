//go:build integration || unit || test

// Package repositorydoubles provides test doubles (spies, stubs, dummies) for
// repository interfaces. These are hand-crafted implementations, no mock frameworks.
package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/Masterminds/semver/v3"

	"github.com/rios0rios0/cargo-outdated/internal/domain/entities"
	"github.com/rios0rios0/cargo-outdated/internal/domain/repositories"
)

// SpyRegistryRepository implements repositories.RegistryRepository as a configurable spy.
// It is safe for concurrent use.
type SpyRegistryRepository struct {
	// --- FetchLatest ---
	Latest map[string]string // crate -> latest version
	Errors map[string]error  // crate -> failure

	mu       sync.Mutex
	requests []string
	options  []entities.SelectionOptions
	inFlight int
	peak     int
}

var _ repositories.RegistryRepository = (*SpyRegistryRepository)(nil)

func (s *SpyRegistryRepository) FetchLatest(
	_ context.Context,
	name string,
	opts entities.SelectionOptions,
) (entities.RegistryVersionInfo, error) {
	s.mu.Lock()
	s.requests = append(s.requests, name)
	s.options = append(s.options, opts)
	s.inFlight++
	if s.inFlight > s.peak {
		s.peak = s.inFlight
	}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.inFlight--
		s.mu.Unlock()
	}()

	runtime.Gosched()

	if err, ok := s.Errors[name]; ok {
		return entities.RegistryVersionInfo{}, err
	}
	raw, ok := s.Latest[name]
	if !ok {
		return entities.RegistryVersionInfo{}, &entities.FetchError{
			Kind:  entities.NetworkError,
			Crate: name,
			Err:   fmt.Errorf("unexpected status code: %d", 404),
		}
	}
	if raw == "" {
		return entities.EmptyRegistryVersionInfo(), nil
	}
	return entities.RegistryVersionInfo{
		CrateName: name,
		Version:   semver.MustParse(raw),
	}, nil
}

// Requests returns the crate names requested so far.
func (s *SpyRegistryRepository) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

// Options returns the selection options received so far.
func (s *SpyRegistryRepository) Options() []entities.SelectionOptions {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entities.SelectionOptions(nil), s.options...)
}

// PeakInFlight returns the highest number of concurrent calls observed.
func (s *SpyRegistryRepository) PeakInFlight() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.peak
}
