package hostcaps

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedPlatform is returned by [New] on architectures that have no
// capability vocabulary.
var ErrUnsupportedPlatform = errors.New("hostcaps: no capability vocabulary for this architecture")

// Capability identifies one independently detectable hardware instruction-set
// or behavioral extension of the target architecture.
//
// The set of valid values is closed and architecture-specific: each CPU
// family defines its own ordered vocabulary at build time. A Capability from
// one architecture is meaningless on another.
type Capability int

func (c Capability) String() string {
	if name, ok := capabilityNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Capability(%d)", int(c))
}

// Values returns the full ordered vocabulary for the build architecture.
// The returned slice is a copy; mutating it does not affect the vocabulary.
func Values() []Capability {
	out := make([]Capability, len(capabilityValues))
	copy(out, capabilityValues)
	return out
}

// Names returns the stable textual names of the vocabulary, in vocabulary order.
func Names() []string {
	names := make([]string, 0, len(capabilityValues))
	for _, c := range capabilityValues {
		names = append(names, c.String())
	}
	return names
}

// ByName resolves the stable textual name of a capability back to its value.
// Lookup is exact and case-sensitive; manifests and diagnostics use these
// names, so they must round-trip byte for byte.
func ByName(name string) (Capability, bool) {
	for _, c := range capabilityValues {
		if c.String() == name {
			return c, true
		}
	}
	return 0, false
}

// Set is an ordered, duplicate-free collection of capabilities.
//
// The zero value is an empty set ready for use. Membership is by capability
// identity; insertion order is preserved, which keeps diagnostics stable.
type Set struct {
	members []Capability
	index   map[Capability]struct{}
}

// NewSet builds a set from the given capabilities, dropping duplicates while
// preserving first-occurrence order.
func NewSet(caps ...Capability) Set {
	var s Set
	for _, c := range caps {
		s.Add(c)
	}
	return s
}

// Add inserts c if not already present and reports whether the set grew.
func (s *Set) Add(c Capability) bool {
	if s.index == nil {
		s.index = make(map[Capability]struct{})
	}
	if _, ok := s.index[c]; ok {
		return false
	}
	s.index[c] = struct{}{}
	s.members = append(s.members, c)
	return true
}

// Contains reports whether c is a member of the set.
func (s *Set) Contains(c Capability) bool {
	_, ok := s.index[c]
	return ok
}

// ContainsAll reports whether every member of other is also a member of s.
func (s *Set) ContainsAll(other Set) bool {
	for _, c := range other.members {
		if !s.Contains(c) {
			return false
		}
	}
	return true
}

// Members returns the capabilities in insertion order.
// The returned slice is a copy.
func (s *Set) Members() []Capability {
	out := make([]Capability, len(s.members))
	copy(out, s.members)
	return out
}

// Len returns the number of members.
func (s *Set) Len() int {
	return len(s.members)
}

func (s Set) String() string {
	names := make([]string, 0, len(s.members))
	for _, c := range s.members {
		names = append(names, c.String())
	}
	return strings.Join(names, ", ")
}

// MissingCapabilitiesError reports that the host CPU lacks capabilities the
// compiled artifact was built to assume. Running further would risk executing
// unsupported instructions, so callers are expected to treat it as fatal.
//
// Missing holds every absent capability in the required set's iteration
// order, not just the first, so a deployer can fix all gaps from one run.
type MissingCapabilitiesError struct {
	Missing []Capability
}

func (e *MissingCapabilitiesError) Error() string {
	names := make([]string, 0, len(e.Missing))
	for _, c := range e.Missing {
		names = append(names, c.String())
	}
	return fmt.Sprintf("host CPU does not support capabilities required by this build: %s", strings.Join(names, ", "))
}
