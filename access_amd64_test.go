package hostcaps

import (
	"errors"
	"strings"
	"testing"
)

// setFlag mirrors capabilityFlags for writing: it lets tests flip individual
// record flags to simulate arbitrary hosts.
var setFlag = map[Capability]func(*CapabilityRecord){
	CapCX8:      func(r *CapabilityRecord) { r.cx8 = true },
	CapCMOV:     func(r *CapabilityRecord) { r.cmov = true },
	CapFXSR:     func(r *CapabilityRecord) { r.fxsr = true },
	CapMMX:      func(r *CapabilityRecord) { r.mmx = true },
	CapSSE:      func(r *CapabilityRecord) { r.sse = true },
	CapSSE2:     func(r *CapabilityRecord) { r.sse2 = true },
	CapSSE3:     func(r *CapabilityRecord) { r.sse3 = true },
	CapSSSE3:    func(r *CapabilityRecord) { r.ssse3 = true },
	CapSSE41:    func(r *CapabilityRecord) { r.sse41 = true },
	CapSSE42:    func(r *CapabilityRecord) { r.sse42 = true },
	CapPOPCNT:   func(r *CapabilityRecord) { r.popcnt = true },
	CapCX16:     func(r *CapabilityRecord) { r.cx16 = true },
	CapAVX:      func(r *CapabilityRecord) { r.avx = true },
	CapAVX2:     func(r *CapabilityRecord) { r.avx2 = true },
	CapFMA:      func(r *CapabilityRecord) { r.fma = true },
	CapBMI1:     func(r *CapabilityRecord) { r.bmi1 = true },
	CapBMI2:     func(r *CapabilityRecord) { r.bmi2 = true },
	CapERMS:     func(r *CapabilityRecord) { r.erms = true },
	CapADX:      func(r *CapabilityRecord) { r.adx = true },
	CapAES:      func(r *CapabilityRecord) { r.aes = true },
	CapCLMUL:    func(r *CapabilityRecord) { r.clmul = true },
	CapRDRAND:   func(r *CapabilityRecord) { r.rdrand = true },
	CapRDSEED:   func(r *CapabilityRecord) { r.rdseed = true },
	CapAVX512F:  func(r *CapabilityRecord) { r.avx512f = true },
	CapAVX512BW: func(r *CapabilityRecord) { r.avx512bw = true },
	CapAVX512CD: func(r *CapabilityRecord) { r.avx512cd = true },
	CapAVX512DQ: func(r *CapabilityRecord) { r.avx512dq = true },
	CapAVX512VL: func(r *CapabilityRecord) { r.avx512vl = true },
}

// probeFor builds a fake probe that marks exactly the given capabilities.
func probeFor(t *testing.T, caps ...Capability) ProbeFunc {
	t.Helper()
	return func(r *CapabilityRecord) {
		for _, c := range caps {
			set, ok := setFlag[c]
			if !ok {
				t.Fatalf("test setter missing for %s", c)
			}
			set(r)
		}
	}
}

func newAccess(t *testing.T, opts ...Option) *Access {
	t.Helper()
	acc, err := New(opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return acc
}

func sameMembers(a, b Set) bool {
	if a.Len() != b.Len() {
		return false
	}
	return a.ContainsAll(b) && b.ContainsAll(a)
}

func TestNew_VocabularyCoverage(t *testing.T) {
	if _, err := New(); err != nil {
		t.Fatalf("New() error = %v, vocabulary and accessors out of sync", err)
	}

	for _, c := range capabilityValues {
		if _, ok := capabilityFlags[c]; !ok {
			t.Errorf("capability %s has no flag accessor", c)
		}
		if _, ok := capabilityNames[c]; !ok {
			t.Errorf("capability %d has no name", int(c))
		}
	}
	if len(capabilityFlags) != len(capabilityValues) {
		t.Errorf("accessor count = %d, vocabulary size = %d", len(capabilityFlags), len(capabilityValues))
	}
	if len(setFlag) != len(capabilityValues) {
		t.Errorf("test setter count = %d, vocabulary size = %d", len(setFlag), len(capabilityValues))
	}
}

func TestHost_UntouchedRecordYieldsEmptySet(t *testing.T) {
	acc := newAccess(t, WithProbe(func(*CapabilityRecord) {}))

	host := acc.Host()
	if host.Len() != 0 {
		t.Errorf("Host() = %s, want empty set for a probe that writes nothing", host)
	}
}

func TestHost_FlagSetMembershipBijection(t *testing.T) {
	// One flag set -> exactly that capability enumerated.
	for _, c := range Values() {
		t.Run(c.String(), func(t *testing.T) {
			acc := newAccess(t, WithProbe(probeFor(t, c)))

			host := acc.Host()
			if host.Len() != 1 || !host.Contains(c) {
				t.Errorf("Host() = %s, want exactly {%s}", host, c)
			}
		})
	}

	// All flags set -> the whole vocabulary, in canonical order.
	acc := newAccess(t, WithProbe(probeFor(t, Values()...)))
	host := acc.Host()
	got := host.Members()
	want := Values()
	if len(got) != len(want) {
		t.Fatalf("Host() = %s, want full vocabulary", host)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Host()[%d] = %s, want %s (canonical order)", i, got[i], want[i])
		}
	}
}

func TestHost_FreshProbePerCall(t *testing.T) {
	calls := 0
	acc := newAccess(t, WithProbe(func(r *CapabilityRecord) {
		calls++
		r.sse = true
	}))

	acc.Host()
	acc.Host()
	if calls != 2 {
		t.Errorf("probe ran %d times for 2 enumerations, want 2", calls)
	}
}

func TestVerify_HostSatisfiesRequired(t *testing.T) {
	acc := newAccess(t, WithProbe(probeFor(t, CapCX8, CapSSE, CapSSE2)))

	if err := acc.Verify(NewSet(CapCX8, CapSSE)); err != nil {
		t.Errorf("Verify() error = %v, want nil", err)
	}
}

func TestVerify_ReportsSingleMissingCapability(t *testing.T) {
	acc := newAccess(t, WithProbe(probeFor(t, CapCX8, CapSSE)))

	err := acc.Verify(NewSet(CapCX8, CapSSE, CapAVX))

	var me *MissingCapabilitiesError
	if !errors.As(err, &me) {
		t.Fatalf("Verify() error = %v, want *MissingCapabilitiesError", err)
	}
	if len(me.Missing) != 1 || me.Missing[0] != CapAVX {
		t.Errorf("Missing = %v, want exactly [AVX]", me.Missing)
	}
}

func TestVerify_ListsEveryMissingCapabilityInRequiredOrder(t *testing.T) {
	acc := newAccess(t, WithProbe(probeFor(t, CapCX8, CapSSE)))

	err := acc.Verify(NewSet(CapAVX2, CapCX8, CapAVX, CapSSE))

	var me *MissingCapabilitiesError
	if !errors.As(err, &me) {
		t.Fatalf("Verify() error = %v, want *MissingCapabilitiesError", err)
	}
	want := []Capability{CapAVX2, CapAVX}
	if len(me.Missing) != len(want) {
		t.Fatalf("Missing = %v, want %v", me.Missing, want)
	}
	for i := range want {
		if me.Missing[i] != want[i] {
			t.Fatalf("Missing[%d] = %s, want %s (required-set order)", i, me.Missing[i], want[i])
		}
	}

	msg := err.Error()
	if !strings.Contains(msg, "AVX2, AVX") {
		t.Errorf("Error() = %q, want every missing capability named", msg)
	}
}

func TestVerify_EmptyRequiredAlwaysPasses(t *testing.T) {
	acc := newAccess(t, WithProbe(func(*CapabilityRecord) {}))

	if err := acc.Verify(NewSet()); err != nil {
		t.Errorf("Verify(empty) error = %v, want nil", err)
	}
}

func TestEnable_WidensTargetWithHostCapabilities(t *testing.T) {
	acc := newAccess(t, WithProbe(probeFor(t, CapCX8, CapSSE, CapAVX2)))

	target := NewSet(CapCX8)
	acc.Enable(&target, false)

	want := NewSet(CapCX8, CapSSE, CapAVX2)
	if !sameMembers(target, want) {
		t.Errorf("target after Enable = %s, want %s", target, want)
	}
}

func TestEnable_NoOpWhenRegisterConventionFixed(t *testing.T) {
	acc := newAccess(t, WithProbe(probeFor(t, CapCX8, CapSSE, CapAVX2)))

	target := NewSet(CapCX8)
	acc.Enable(&target, true)

	if target.Len() != 1 || !target.Contains(CapCX8) {
		t.Errorf("target after fixed-convention Enable = %s, want unchanged {CX8}", target)
	}
}

func TestEnable_Idempotent(t *testing.T) {
	acc := newAccess(t, WithProbe(probeFor(t, CapCX8, CapSSE, CapAVX2)))

	once := NewSet(CapCX8)
	acc.Enable(&once, false)

	twice := NewSet(CapCX8)
	acc.Enable(&twice, false)
	acc.Enable(&twice, false)

	if !sameMembers(once, twice) {
		t.Errorf("Enable twice = %s, Enable once = %s, want equal sets", twice, once)
	}
}

func TestEnable_NeverNarrows(t *testing.T) {
	acc := newAccess(t, WithProbe(probeFor(t, CapCX8)))

	// AVX512F is not in the fake host set; it must survive anyway.
	target := NewSet(CapAVX512F)
	acc.Enable(&target, false)

	if !target.Contains(CapAVX512F) {
		t.Error("Enable removed a pre-existing target member")
	}
	if !target.Contains(CapCX8) {
		t.Error("Enable did not add a host capability")
	}
}

func TestResolve_UnknownCapabilityPanics(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("resolve(unknown) did not panic; silently returning false is unsafe")
		}
		msg, ok := r.(string)
		if !ok || !strings.Contains(msg, "missing flag accessor") {
			t.Fatalf("panic = %v, want internal-consistency message", r)
		}
	}()

	var rec CapabilityRecord
	resolve(Capability(9999), &rec)
}

func TestHost_DefaultProbeReportsBaseline(t *testing.T) {
	acc := newAccess(t)

	// The x86-64 ISA guarantees these regardless of the machine the test
	// runs on; their absence means the default probe is broken.
	host := acc.Host()
	for _, c := range []Capability{CapCX8, CapCMOV, CapFXSR, CapMMX, CapSSE, CapSSE2} {
		if !host.Contains(c) {
			t.Errorf("Host() missing baseline capability %s", c)
		}
	}
}

func TestReport_MarksSupport(t *testing.T) {
	acc := newAccess(t, WithProbe(probeFor(t, CapCX8, CapAVX2)))

	report := Report(acc.Host())
	if !strings.Contains(report, "CX8: yes") {
		t.Errorf("Report() missing supported marker:\n%s", report)
	}
	if !strings.Contains(report, "AVX512F: no") {
		t.Errorf("Report() missing unsupported marker:\n%s", report)
	}
	if !strings.Contains(report, "Architecture: amd64") {
		t.Errorf("Report() missing architecture header:\n%s", report)
	}
}

func TestCapability_NameRoundTrip(t *testing.T) {
	for _, c := range Values() {
		got, ok := ByName(c.String())
		if !ok || got != c {
			t.Errorf("ByName(%q) = %v, %v; want %v, true", c.String(), got, ok, c)
		}
	}
	if _, ok := ByName("NOSUCHCAP"); ok {
		t.Error("ByName(NOSUCHCAP) = true, want false")
	}
}

func TestArtifactTarget_RequiredIsACopy(t *testing.T) {
	target := NewArtifactTarget(NewSet(CapCX8))

	req := target.Required()
	req.Add(CapAVX)

	fresh := target.Required()
	if fresh.Contains(CapAVX) {
		t.Error("mutating Required() result leaked into the target")
	}
}

func TestArtifactTarget_VerifyAndEnable(t *testing.T) {
	acc := newAccess(t, WithProbe(probeFor(t, CapCX8, CapSSE, CapAVX2)))
	target := NewArtifactTarget(NewSet(CapCX8))

	if err := acc.VerifyTarget(target); err != nil {
		t.Fatalf("VerifyTarget() error = %v, want nil", err)
	}

	acc.EnableTarget(target, false)
	if !sameMembers(*target.Mutable(), NewSet(CapCX8, CapSSE, CapAVX2)) {
		t.Errorf("runtime set after EnableTarget = %s, want host set", target.Mutable())
	}
	if !sameMembers(target.Required(), NewSet(CapCX8)) {
		t.Errorf("required baseline changed to %s after EnableTarget", target.Required())
	}
}
