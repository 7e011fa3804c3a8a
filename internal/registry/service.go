// Package registry hands out unique model names within one conversion run.
package registry

import (
	"fmt"
	"sort"
)

// Service tracks every model name issued during a run. Names are unique:
// a second request for the same base gets a numeric suffix.
type Service struct {
	owners   map[string]string
	byOwner  map[string]string
	counters map[string]int
}

// NewService creates an empty name registry.
func NewService() *Service {
	return &Service{
		owners:   make(map[string]string),
		byOwner:  make(map[string]string),
		counters: make(map[string]int),
	}
}

// Claim returns the name registered for owner, reserving a unique name
// derived from base on first use. An empty owner always reserves a new name.
func (s *Service) Claim(owner, base string) string {
	if owner != "" {
		if name, ok := s.byOwner[owner]; ok {
			return name
		}
	}

	name := s.next(base)
	s.owners[name] = owner
	if owner != "" {
		s.byOwner[owner] = name
	}
	return name
}

// Reserve returns a fresh unique name derived from base.
func (s *Service) Reserve(base string) string {
	return s.Claim("", base)
}

// Lookup returns the name already claimed by owner.
func (s *Service) Lookup(owner string) (string, bool) {
	name, ok := s.byOwner[owner]
	return name, ok
}

// Owner returns the owner of a name, "" for anonymous reservations.
func (s *Service) Owner(name string) (string, bool) {
	owner, ok := s.owners[name]
	return owner, ok
}

// Taken reports whether name has been issued.
func (s *Service) Taken(name string) bool {
	_, ok := s.owners[name]
	return ok
}

// Names returns every issued name in sorted order.
func (s *Service) Names() []string {
	names := make([]string, 0, len(s.owners))
	for name := range s.owners {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Service) next(base string) string {
	if !s.Taken(base) {
		return base
	}
	for {
		s.counters[base]++
		candidate := fmt.Sprintf("%s_%d", base, s.counters[base])
		if !s.Taken(candidate) {
			return candidate
		}
	}
}
