package hostcaps

// x86-64 capability vocabulary.
//
// The vocabulary is closed: it covers the instruction-set extensions the
// toolchain can emit code for on this architecture. CX8 through SSE2 are part
// of the 64-bit architectural baseline and are listed anyway so that build
// descriptions carrying them verify cleanly.
const (
	CapCX8 Capability = iota
	CapCMOV
	CapFXSR
	CapMMX
	CapSSE
	CapSSE2
	CapSSE3
	CapSSSE3
	CapSSE41
	CapSSE42
	CapPOPCNT
	CapCX16
	CapAVX
	CapAVX2
	CapFMA
	CapBMI1
	CapBMI2
	CapERMS
	CapADX
	CapAES
	CapCLMUL
	CapRDRAND
	CapRDSEED
	CapAVX512F
	CapAVX512BW
	CapAVX512CD
	CapAVX512DQ
	CapAVX512VL
)

// capabilityValues fixes the canonical enumeration order. Host sets and
// reports iterate in this order, so it must stay stable across releases.
var capabilityValues = []Capability{
	CapCX8,
	CapCMOV,
	CapFXSR,
	CapMMX,
	CapSSE,
	CapSSE2,
	CapSSE3,
	CapSSSE3,
	CapSSE41,
	CapSSE42,
	CapPOPCNT,
	CapCX16,
	CapAVX,
	CapAVX2,
	CapFMA,
	CapBMI1,
	CapBMI2,
	CapERMS,
	CapADX,
	CapAES,
	CapCLMUL,
	CapRDRAND,
	CapRDSEED,
	CapAVX512F,
	CapAVX512BW,
	CapAVX512CD,
	CapAVX512DQ,
	CapAVX512VL,
}

var capabilityNames = map[Capability]string{
	CapCX8:      "CX8",
	CapCMOV:     "CMOV",
	CapFXSR:     "FXSR",
	CapMMX:      "MMX",
	CapSSE:      "SSE",
	CapSSE2:     "SSE2",
	CapSSE3:     "SSE3",
	CapSSSE3:    "SSSE3",
	CapSSE41:    "SSE4_1",
	CapSSE42:    "SSE4_2",
	CapPOPCNT:   "POPCNT",
	CapCX16:     "CX16",
	CapAVX:      "AVX",
	CapAVX2:     "AVX2",
	CapFMA:      "FMA",
	CapBMI1:     "BMI1",
	CapBMI2:     "BMI2",
	CapERMS:     "ERMS",
	CapADX:      "ADX",
	CapAES:      "AES",
	CapCLMUL:    "CLMUL",
	CapRDRAND:   "RDRAND",
	CapRDSEED:   "RDSEED",
	CapAVX512F:  "AVX512F",
	CapAVX512BW: "AVX512BW",
	CapAVX512CD: "AVX512CD",
	CapAVX512DQ: "AVX512DQ",
	CapAVX512VL: "AVX512VL",
}

// capabilityFlags maps each vocabulary member to the accessor reading its
// flag out of a probed record. [New] checks this map covers the vocabulary
// exactly, so a missing entry surfaces at construction, not at first lookup.
var capabilityFlags = map[Capability]func(*CapabilityRecord) bool{
	CapCX8:      func(r *CapabilityRecord) bool { return r.cx8 },
	CapCMOV:     func(r *CapabilityRecord) bool { return r.cmov },
	CapFXSR:     func(r *CapabilityRecord) bool { return r.fxsr },
	CapMMX:      func(r *CapabilityRecord) bool { return r.mmx },
	CapSSE:      func(r *CapabilityRecord) bool { return r.sse },
	CapSSE2:     func(r *CapabilityRecord) bool { return r.sse2 },
	CapSSE3:     func(r *CapabilityRecord) bool { return r.sse3 },
	CapSSSE3:    func(r *CapabilityRecord) bool { return r.ssse3 },
	CapSSE41:    func(r *CapabilityRecord) bool { return r.sse41 },
	CapSSE42:    func(r *CapabilityRecord) bool { return r.sse42 },
	CapPOPCNT:   func(r *CapabilityRecord) bool { return r.popcnt },
	CapCX16:     func(r *CapabilityRecord) bool { return r.cx16 },
	CapAVX:      func(r *CapabilityRecord) bool { return r.avx },
	CapAVX2:     func(r *CapabilityRecord) bool { return r.avx2 },
	CapFMA:      func(r *CapabilityRecord) bool { return r.fma },
	CapBMI1:     func(r *CapabilityRecord) bool { return r.bmi1 },
	CapBMI2:     func(r *CapabilityRecord) bool { return r.bmi2 },
	CapERMS:     func(r *CapabilityRecord) bool { return r.erms },
	CapADX:      func(r *CapabilityRecord) bool { return r.adx },
	CapAES:      func(r *CapabilityRecord) bool { return r.aes },
	CapCLMUL:    func(r *CapabilityRecord) bool { return r.clmul },
	CapRDRAND:   func(r *CapabilityRecord) bool { return r.rdrand },
	CapRDSEED:   func(r *CapabilityRecord) bool { return r.rdseed },
	CapAVX512F:  func(r *CapabilityRecord) bool { return r.avx512f },
	CapAVX512BW: func(r *CapabilityRecord) bool { return r.avx512bw },
	CapAVX512CD: func(r *CapabilityRecord) bool { return r.avx512cd },
	CapAVX512DQ: func(r *CapabilityRecord) bool { return r.avx512dq },
	CapAVX512VL: func(r *CapabilityRecord) bool { return r.avx512vl },
}
