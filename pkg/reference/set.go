package reference

import (
	"sort"
	"sync/atomic"
)

// Location is one valid region/commune/village triple.
type Location struct {
	Region  string
	Commune string
	Village string
}

// Set is an immutable lookup structure over reference locations.
type Set struct {
	index    map[Location]struct{}
	byRegion map[string]map[string][]string
	regions  []string
}

// NewSet builds a Set from a slice of locations. Duplicates are collapsed.
func NewSet(locations []Location) *Set {
	s := &Set{
		index:    make(map[Location]struct{}, len(locations)),
		byRegion: make(map[string]map[string][]string),
	}

	for _, loc := range locations {
		if loc.Region == "" || loc.Commune == "" || loc.Village == "" {
			continue
		}
		if _, ok := s.index[loc]; ok {
			continue
		}
		s.index[loc] = struct{}{}

		communes, ok := s.byRegion[loc.Region]
		if !ok {
			communes = make(map[string][]string)
			s.byRegion[loc.Region] = communes
		}
		communes[loc.Commune] = append(communes[loc.Commune], loc.Village)
	}

	for region, communes := range s.byRegion {
		s.regions = append(s.regions, region)
		for _, villages := range communes {
			sort.Strings(villages)
		}
	}
	sort.Strings(s.regions)

	return s
}

// Contains reports whether the triple is part of the reference dataset.
func (s *Set) Contains(region, commune, village string) bool {
	_, ok := s.index[Location{Region: region, Commune: commune, Village: village}]
	return ok
}

// Regions returns all regions, sorted.
func (s *Set) Regions() []string {
	out := make([]string, len(s.regions))
	copy(out, s.regions)
	return out
}

// Communes returns the communes of a region, sorted.
func (s *Set) Communes(region string) []string {
	communes := s.byRegion[region]
	out := make([]string, 0, len(communes))
	for commune := range communes {
		out = append(out, commune)
	}
	sort.Strings(out)
	return out
}

// Villages returns the villages of a commune, sorted.
func (s *Set) Villages(region, commune string) []string {
	villages := s.byRegion[region][commune]
	out := make([]string, len(villages))
	copy(out, villages)
	return out
}

// Len returns the number of distinct triples in the set.
func (s *Set) Len() int {
	return len(s.index)
}

// Catalog holds the current reference Set and allows it to be replaced
// atomically, so a reload never exposes a partially built set to readers.
type Catalog struct {
	current atomic.Value // *Set
}

// NewCatalog creates a Catalog seeded with the given set.
func NewCatalog(set *Set) *Catalog {
	c := &Catalog{}
	c.current.Store(set)
	return c
}

// Current returns the active reference set.
func (c *Catalog) Current() *Set {
	return c.current.Load().(*Set)
}

// Replace swaps in a new reference set.
func (c *Catalog) Replace(set *Set) {
	c.current.Store(set)
}
