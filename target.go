package hostcaps

// Target describes a compilation target from the capability perspective:
// the immutable set the artifact was built to assume, and the
// runtime-mutable set still open to widening.
type Target interface {
	// Required returns the capability baseline assumed by the compiled
	// artifact. Read-only to this package.
	Required() Set
	// Mutable returns the capability set used for code compiled at run
	// time. It starts at the required baseline and only ever grows.
	Mutable() *Set
}

// VerifyTarget checks the host against the target's required baseline.
// See [Access.Verify].
func (a *Access) VerifyTarget(t Target) error {
	return a.Verify(t.Required())
}

// EnableTarget widens the target's runtime-mutable set with host
// capabilities. See [Access.Enable].
func (a *Access) EnableTarget(t Target, regConventionFixed bool) {
	a.Enable(t.Mutable(), regConventionFixed)
}

// ArtifactTarget is the plain [Target] implementation for an artifact whose
// required set came from its build manifest.
type ArtifactTarget struct {
	required Set
	runtime  Set
}

// NewArtifactTarget builds a target whose runtime set starts at the required
// baseline. Both sets are private copies of the argument.
func NewArtifactTarget(required Set) *ArtifactTarget {
	return &ArtifactTarget{
		required: NewSet(required.Members()...),
		runtime:  NewSet(required.Members()...),
	}
}

func (t *ArtifactTarget) Required() Set {
	return NewSet(t.required.Members()...)
}

func (t *ArtifactTarget) Mutable() *Set {
	return &t.runtime
}
