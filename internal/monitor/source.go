package monitor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
)

// Source is a pluggable provider of athlete snapshots.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]Athlete, error)
}

// Registry keeps track of available athlete sources.
type Registry struct {
	sources []Source
}

// NewRegistry builds a registry with the provided sources.
func NewRegistry(sources ...Source) (*Registry, error) {
	if len(sources) == 0 {
		return nil, errors.New("monitor: at least one source is required")
	}
	return &Registry{sources: sources}, nil
}

// Add registers a new source instance.
func (r *Registry) Add(source Source) {
	r.sources = append(r.sources, source)
}

// FetchAll aggregates athletes from each registered source.
func (r *Registry) FetchAll(ctx context.Context) ([]Athlete, error) {
	var results []Athlete
	for _, src := range r.sources {
		athletes, err := src.Fetch(ctx)
		if err != nil {
			return nil, fmt.Errorf("fetch from %s: %w", src.Name(), err)
		}
		results = append(results, athletes...)
	}
	return results, nil
}

// StaticFileSource serves athlete snapshots from a JSON file.
type StaticFileSource struct {
	name string
	path string
}

// NewStaticFileSource returns a new StaticFileSource referencing the given file.
func NewStaticFileSource(name, path string) (*StaticFileSource, error) {
	if name == "" {
		return nil, errors.New("static source requires a name")
	}
	if path == "" {
		return nil, errors.New("static source requires a path")
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("static source: %w", err)
	}
	return &StaticFileSource{name: name, path: path}, nil
}

// Name returns the source name.
func (s *StaticFileSource) Name() string { return s.name }

// Fetch reads and decodes the snapshot file.
func (s *StaticFileSource) Fetch(ctx context.Context) ([]Athlete, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read static file %s: %w", s.path, err)
	}

	athletes, err := DecodeAthletes(raw)
	if err != nil {
		return nil, fmt.Errorf("decode static file %s: %w", s.path, err)
	}
	return athletes, nil
}

// SampleSource serves the built-in demo snapshot. It backs the service when
// no snapshot file is available.
type SampleSource struct{}

// Name returns the source name.
func (SampleSource) Name() string { return "sample" }

// Fetch returns the built-in athlete set.
func (SampleSource) Fetch(ctx context.Context) ([]Athlete, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	return SampleAthletes(), nil
}

// IngestSource stores athlete snapshots submitted via the API.
type IngestSource struct {
	name     string
	mu       sync.RWMutex
	athletes []Athlete
}

// NewIngestSource constructs an empty ingest source.
func NewIngestSource(name string) *IngestSource {
	if name == "" {
		name = "ingest"
	}
	return &IngestSource{name: name}
}

// Name returns the source identifier.
func (s *IngestSource) Name() string { return s.name }

// Add registers an athlete snapshot, replacing any existing record with the
// same name.
func (s *IngestSource) Add(athlete Athlete) (Athlete, error) {
	if strings.TrimSpace(athlete.Name) == "" {
		return Athlete{}, errors.New("athlete requires a name")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for idx := range s.athletes {
		if s.athletes[idx].Name == athlete.Name {
			s.athletes[idx] = athlete
			return athlete, nil
		}
	}

	s.athletes = append(s.athletes, athlete)
	return athlete, nil
}

// Fetch returns the stored athletes sorted by name for a stable order.
func (s *IngestSource) Fetch(ctx context.Context) ([]Athlete, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Athlete, len(s.athletes))
	copy(out, s.athletes)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
