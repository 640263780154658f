// Package hostcaps verifies that ahead-of-time compiled code runs only on
// hardware that supports the CPU instructions it contains.
//
// A compiled artifact is built against a fixed set of instruction-set
// capabilities. At startup it may land on a different physical or virtual
// machine, so before any capability-dependent code path executes the host
// must be interrogated and checked against the artifact's assumptions. A
// false positive here means an illegal-instruction crash; a false negative
// leaves performance on the table. hostcaps answers three questions:
//
//   - which capabilities does the current host support? ([Access.Host])
//   - does the host satisfy what the artifact requires? ([Access.Verify])
//   - may the runtime-compiled-code capability set be widened to match the
//     host? ([Access.Enable])
//
// # API Model
//
// Construct one [Access] per process and pass it to whatever startup and
// code-generation logic needs it; there is no package-level registry.
//
//	acc, err := hostcaps.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := acc.Verify(required); err != nil {
//	    var me *hostcaps.MissingCapabilitiesError
//	    if errors.As(err, &me) {
//	        log.Fatalf("host CPU unsupported: %s", me)
//	    }
//	    log.Fatal(err)
//	}
//
// Verification is a startup gate, not a background check: run it once,
// before executing any code that assumes the required capabilities.
//
// # Architecture Vocabularies
//
// Each CPU family has its own closed, ordered vocabulary of [Capability]
// values and its own flag accessors, selected at build time via GOARCH.
// On architectures without a vocabulary, [New] returns
// [ErrUnsupportedPlatform]. The vocabulary and the accessor map are kept in
// exact 1:1 correspondence; [New] validates total coverage so that a
// mismatch is caught at construction rather than at first unmatched lookup.
//
// # Probing
//
// Enumeration allocates a zeroed, stack-local [CapabilityRecord], hands it
// to the probe exactly once, and reads flags back through the accessors.
// Zeroing first means any flag the probe does not touch defaults to absent,
// never to stale memory. The default probe fills the record from
// golang.org/x/sys/cpu; [WithProbe] injects a replacement, which tests use
// to simulate arbitrary hosts.
//
// # Manifests
//
// The build toolchain records an artifact's required capability set as a
// small YAML manifest ([Manifest]). [LoadManifest] plus
// [Manifest.RequiredSet] turn that file back into a [Set] consumable by
// [Access.Verify], failing closed on unknown capability names or an
// architecture mismatch.
package hostcaps
