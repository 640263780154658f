package hostcaps

// arm64 capability vocabulary.
//
// Names follow the Linux hwcap spelling so they match what operators see in
// /proc/cpuinfo. FP and ASIMD are mandatory on AArch64 but stay in the
// vocabulary so build descriptions carrying them verify cleanly.
const (
	CapFP Capability = iota
	CapASIMD
	CapAES
	CapPMULL
	CapSHA1
	CapSHA2
	CapSHA3
	CapSHA512
	CapCRC32
	CapATOMICS
	CapFPHP
	CapASIMDHP
	CapASIMDRDM
	CapASIMDDP
	CapASIMDFHM
	CapJSCVT
	CapFCMA
	CapLRCPC
	CapDCPOP
	CapSVE
)

// capabilityValues fixes the canonical enumeration order. Host sets and
// reports iterate in this order, so it must stay stable across releases.
var capabilityValues = []Capability{
	CapFP,
	CapASIMD,
	CapAES,
	CapPMULL,
	CapSHA1,
	CapSHA2,
	CapSHA3,
	CapSHA512,
	CapCRC32,
	CapATOMICS,
	CapFPHP,
	CapASIMDHP,
	CapASIMDRDM,
	CapASIMDDP,
	CapASIMDFHM,
	CapJSCVT,
	CapFCMA,
	CapLRCPC,
	CapDCPOP,
	CapSVE,
}

var capabilityNames = map[Capability]string{
	CapFP:       "FP",
	CapASIMD:    "ASIMD",
	CapAES:      "AES",
	CapPMULL:    "PMULL",
	CapSHA1:     "SHA1",
	CapSHA2:     "SHA2",
	CapSHA3:     "SHA3",
	CapSHA512:   "SHA512",
	CapCRC32:    "CRC32",
	CapATOMICS:  "ATOMICS",
	CapFPHP:     "FPHP",
	CapASIMDHP:  "ASIMDHP",
	CapASIMDRDM: "ASIMDRDM",
	CapASIMDDP:  "ASIMDDP",
	CapASIMDFHM: "ASIMDFHM",
	CapJSCVT:    "JSCVT",
	CapFCMA:     "FCMA",
	CapLRCPC:    "LRCPC",
	CapDCPOP:    "DCPOP",
	CapSVE:      "SVE",
}

// capabilityFlags maps each vocabulary member to the accessor reading its
// flag out of a probed record. [New] checks this map covers the vocabulary
// exactly, so a missing entry surfaces at construction, not at first lookup.
var capabilityFlags = map[Capability]func(*CapabilityRecord) bool{
	CapFP:       func(r *CapabilityRecord) bool { return r.fp },
	CapASIMD:    func(r *CapabilityRecord) bool { return r.asimd },
	CapAES:      func(r *CapabilityRecord) bool { return r.aes },
	CapPMULL:    func(r *CapabilityRecord) bool { return r.pmull },
	CapSHA1:     func(r *CapabilityRecord) bool { return r.sha1 },
	CapSHA2:     func(r *CapabilityRecord) bool { return r.sha2 },
	CapSHA3:     func(r *CapabilityRecord) bool { return r.sha3 },
	CapSHA512:   func(r *CapabilityRecord) bool { return r.sha512 },
	CapCRC32:    func(r *CapabilityRecord) bool { return r.crc32 },
	CapATOMICS:  func(r *CapabilityRecord) bool { return r.atomics },
	CapFPHP:     func(r *CapabilityRecord) bool { return r.fphp },
	CapASIMDHP:  func(r *CapabilityRecord) bool { return r.asimdhp },
	CapASIMDRDM: func(r *CapabilityRecord) bool { return r.asimdrdm },
	CapASIMDDP:  func(r *CapabilityRecord) bool { return r.asimddp },
	CapASIMDFHM: func(r *CapabilityRecord) bool { return r.asimdfhm },
	CapJSCVT:    func(r *CapabilityRecord) bool { return r.jscvt },
	CapFCMA:     func(r *CapabilityRecord) bool { return r.fcma },
	CapLRCPC:    func(r *CapabilityRecord) bool { return r.lrcpc },
	CapDCPOP:    func(r *CapabilityRecord) bool { return r.dcpop },
	CapSVE:      func(r *CapabilityRecord) bool { return r.sve },
}
