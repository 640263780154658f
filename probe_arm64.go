package hostcaps

import "golang.org/x/sys/cpu"

// CapabilityRecord is the fixed-layout scratch block a probe fills with one
// boolean per detectable arm64 capability.
//
// Records are allocated zeroed on the stack for the duration of a single
// enumeration and never escape it: a flag the probe does not touch stays
// absent rather than reflecting stale memory.
type CapabilityRecord struct {
	fp       bool
	asimd    bool
	aes      bool
	pmull    bool
	sha1     bool
	sha2     bool
	sha3     bool
	sha512   bool
	crc32    bool
	atomics  bool
	fphp     bool
	asimdhp  bool
	asimdrdm bool
	asimddp  bool
	asimdfhm bool
	jscvt    bool
	fcma     bool
	lrcpc    bool
	dcpop    bool
	sve      bool
}

// defaultProbe fills the record from golang.org/x/sys/cpu, which reads the
// kernel-provided hwcap vectors (or the OS equivalent) once at package init.
func defaultProbe(r *CapabilityRecord) {
	r.fp = cpu.ARM64.HasFP
	r.asimd = cpu.ARM64.HasASIMD
	r.aes = cpu.ARM64.HasAES
	r.pmull = cpu.ARM64.HasPMULL
	r.sha1 = cpu.ARM64.HasSHA1
	r.sha2 = cpu.ARM64.HasSHA2
	r.sha3 = cpu.ARM64.HasSHA3
	r.sha512 = cpu.ARM64.HasSHA512
	r.crc32 = cpu.ARM64.HasCRC32
	r.atomics = cpu.ARM64.HasATOMICS
	r.fphp = cpu.ARM64.HasFPHP
	r.asimdhp = cpu.ARM64.HasASIMDHP
	r.asimdrdm = cpu.ARM64.HasASIMDRDM
	r.asimddp = cpu.ARM64.HasASIMDDP
	r.asimdfhm = cpu.ARM64.HasASIMDFHM
	r.jscvt = cpu.ARM64.HasJSCVT
	r.fcma = cpu.ARM64.HasFCMA
	r.lrcpc = cpu.ARM64.HasLRCPC
	r.dcpop = cpu.ARM64.HasDCPOP
	r.sve = cpu.ARM64.HasSVE
}
