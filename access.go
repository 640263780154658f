package hostcaps

import "fmt"

// ProbeFunc executes the capability-detection sequence and fills the record.
//
// A probe is total: it always returns, never reports failure, and writes
// nothing outside the record it is handed. The record arrives fully zeroed.
type ProbeFunc func(*CapabilityRecord)

// Access enumerates, verifies, and propagates host CPU capabilities.
//
// It is a plain value constructed once by [New] and passed to whatever
// startup and code-generation logic needs it. All operations are synchronous,
// bounded, and free of I/O; none of them cache, so every enumeration reflects
// a fresh probe.
type Access struct {
	probe ProbeFunc
}

// Option configures an [Access] under construction.
type Option func(*Access)

// WithProbe replaces the default hardware probe.
// This is primarily for tests, which use it to simulate arbitrary hosts.
func WithProbe(probe ProbeFunc) Option {
	return func(a *Access) {
		a.probe = probe
	}
}

// New constructs an [Access] for the build architecture.
//
// It returns [ErrUnsupportedPlatform] on architectures without a capability
// vocabulary, and an internal-consistency error if the vocabulary and the
// flag accessors are not in exact 1:1 correspondence. The latter can only
// happen when a vocabulary edit misses its accessor or name entry, so it is
// a defect in this package, not a property of the host.
func New(opts ...Option) (*Access, error) {
	if len(capabilityValues) == 0 {
		return nil, ErrUnsupportedPlatform
	}
	for _, c := range capabilityValues {
		if _, ok := capabilityFlags[c]; !ok {
			return nil, fmt.Errorf("hostcaps: capability %s has no flag accessor", c)
		}
		if _, ok := capabilityNames[c]; !ok {
			return nil, fmt.Errorf("hostcaps: capability %d has no name", int(c))
		}
	}
	if len(capabilityFlags) != len(capabilityValues) {
		return nil, fmt.Errorf("hostcaps: %d flag accessors for %d capabilities", len(capabilityFlags), len(capabilityValues))
	}

	a := &Access{probe: defaultProbe}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// resolve reads the flag for c out of a probed record.
// A capability without an accessor is a vocabulary/accessor mismatch that
// [New] rules out, so hitting one here is unreachable in a correctly built
// binary and panics rather than silently reporting absence.
func resolve(c Capability, r *CapabilityRecord) bool {
	flag, ok := capabilityFlags[c]
	if !ok {
		panic(fmt.Sprintf("hostcaps: missing flag accessor for capability %s", c))
	}
	return flag(r)
}

// Host enumerates the capabilities supported by the current host.
//
// Each call allocates a private zeroed [CapabilityRecord], runs the probe
// exactly once, and tests every vocabulary member against the result. The
// returned set is in vocabulary order and freshly built per call; callers
// may cache it, this package never does.
func (a *Access) Host() Set {
	var rec CapabilityRecord
	a.probe(&rec)

	var host Set
	for _, c := range capabilityValues {
		if resolve(c, &rec) {
			host.Add(c)
		}
	}
	return host
}

// Verify checks that the host supports every capability in required.
//
// On a shortfall it returns a [MissingCapabilitiesError] listing every
// absent capability in required's iteration order. It is meant to run once
// at process start, before any capability-dependent code path executes;
// a non-nil result means continuing is unsafe.
func (a *Access) Verify(required Set) error {
	host := a.Host()
	if host.ContainsAll(required) {
		return nil
	}

	var missing []Capability
	for _, c := range required.Members() {
		if !host.Contains(c) {
			missing = append(missing, c)
		}
	}
	return &MissingCapabilitiesError{Missing: missing}
}

// Enable widens target with every capability the host supports.
//
// Widening is monotonic (members are only added, never removed) and
// idempotent for a stable host. When regConventionFixed is true, Enable does
// nothing: the callee-saved register spill and restore code covers only the
// register widths known at build time, and widening the capability set
// without extending that code would corrupt register state during
// deoptimization. The silent no-op is the contract for that branch.
//
// TODO: lift the fixed-convention restriction once spill code can grow
// register widths at runtime; until then JIT output stays at AOT capability
// level on such builds.
func (a *Access) Enable(target *Set, regConventionFixed bool) {
	if regConventionFixed {
		return
	}
	host := a.Host()
	for _, c := range host.Members() {
		target.Add(c)
	}
}
