//go:build !amd64 && !arm64

package hostcaps

// CapabilityRecord is a no-op placeholder on architectures without a
// capability vocabulary. [New] returns [ErrUnsupportedPlatform] on them.
type CapabilityRecord struct{}

func defaultProbe(*CapabilityRecord) {}

var (
	capabilityValues []Capability
	capabilityNames  = map[Capability]string{}
	capabilityFlags  = map[Capability]func(*CapabilityRecord) bool{}
)
