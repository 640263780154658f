package hostcaps

import "golang.org/x/sys/cpu"

// CapabilityRecord is the fixed-layout scratch block a probe fills with one
// boolean per detectable x86-64 capability.
//
// Records are allocated zeroed on the stack for the duration of a single
// enumeration and never escape it: a flag the probe does not touch stays
// absent rather than reflecting stale memory.
type CapabilityRecord struct {
	cx8      bool
	cmov     bool
	fxsr     bool
	mmx      bool
	sse      bool
	sse2     bool
	sse3     bool
	ssse3    bool
	sse41    bool
	sse42    bool
	popcnt   bool
	cx16     bool
	avx      bool
	avx2     bool
	fma      bool
	bmi1     bool
	bmi2     bool
	erms     bool
	adx      bool
	aes      bool
	clmul    bool
	rdrand   bool
	rdseed   bool
	avx512f  bool
	avx512bw bool
	avx512cd bool
	avx512dq bool
	avx512vl bool
}

// defaultProbe fills the record from golang.org/x/sys/cpu, which runs the
// CPUID detection sequence once at package init.
//
// CX8 through SSE2 are set unconditionally: the x86-64 ISA guarantees them,
// so no runtime detection is needed (or offered by x/sys/cpu).
func defaultProbe(r *CapabilityRecord) {
	r.cx8 = true
	r.cmov = true
	r.fxsr = true
	r.mmx = true
	r.sse = true
	r.sse2 = true

	r.sse3 = cpu.X86.HasSSE3
	r.ssse3 = cpu.X86.HasSSSE3
	r.sse41 = cpu.X86.HasSSE41
	r.sse42 = cpu.X86.HasSSE42
	r.popcnt = cpu.X86.HasPOPCNT
	r.cx16 = cpu.X86.HasCX16
	r.avx = cpu.X86.HasAVX
	r.avx2 = cpu.X86.HasAVX2
	r.fma = cpu.X86.HasFMA
	r.bmi1 = cpu.X86.HasBMI1
	r.bmi2 = cpu.X86.HasBMI2
	r.erms = cpu.X86.HasERMS
	r.adx = cpu.X86.HasADX
	r.aes = cpu.X86.HasAES
	r.clmul = cpu.X86.HasPCLMULQDQ
	r.rdrand = cpu.X86.HasRDRAND
	r.rdseed = cpu.X86.HasRDSEED
	r.avx512f = cpu.X86.HasAVX512F
	r.avx512bw = cpu.X86.HasAVX512BW
	r.avx512cd = cpu.X86.HasAVX512CD
	r.avx512dq = cpu.X86.HasAVX512DQ
	r.avx512vl = cpu.X86.HasAVX512VL
}
