package header_mapping_service

import (
	"fmt"
	"log/slog"

	"github.com/init-pkg/siot-loader/domain/app"
	"github.com/init-pkg/siot-loader/domain/schema"
)

// HeaderMappingService resolves observed spreadsheet headers to canonical
// field names through the registry's alias table.
type HeaderMappingService struct {
	index  map[string]string // normalized alias -> canonical name
	anchor map[string]struct{}
	log    *slog.Logger
}

var _ app.HeaderResolver = &HeaderMappingService{}

// New builds the alias index. A normalized alias claimed by two different
// fields is a configuration error.
func New(registry schema.Registry, log *slog.Logger) (*HeaderMappingService, error) {
	index := make(map[string]string)
	for _, f := range registry {
		for _, alias := range append([]string{f.Name}, f.Aliases...) {
			key := Normalize(alias)
			if key == "" {
				return nil, fmt.Errorf("header mapping: field %q has an alias that normalizes to empty", f.Name)
			}
			if owner, ok := index[key]; ok && owner != f.Name {
				return nil, fmt.Errorf("header mapping: alias %q of %q collides with %q", alias, f.Name, owner)
			}
			index[key] = f.Name
		}
	}

	anchor := make(map[string]struct{})
	for key, name := range index {
		if name == schema.AnchorField {
			anchor[key] = struct{}{}
		}
	}

	return &HeaderMappingService{index: index, anchor: anchor, log: log}, nil
}

// Resolve returns observed header -> canonical name for every header that
// matches. Unmatched headers are left out.
func (s *HeaderMappingService) Resolve(observed []string) map[string]string {
	out := make(map[string]string, len(observed))
	for _, h := range observed {
		if name, ok := s.Canonical(h); ok {
			out[h] = name
		}
	}
	s.log.Debug("headers resolved", "observed", len(observed), "matched", len(out))
	return out
}

// Unresolved returns the observed headers, in order, that match no field.
func (s *HeaderMappingService) Unresolved(observed []string) []string {
	var out []string
	for _, h := range observed {
		if _, ok := s.Canonical(h); !ok {
			out = append(out, h)
		}
	}
	return out
}

// Canonical returns the canonical name for a single header.
func (s *HeaderMappingService) Canonical(header string) (string, bool) {
	name, ok := s.index[Normalize(header)]
	return name, ok
}

// IsAnchor reports whether a header names the anchor field.
func (s *HeaderMappingService) IsAnchor(header string) bool {
	_, ok := s.anchor[Normalize(header)]
	return ok
}
