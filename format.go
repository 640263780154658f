package hostcaps

import (
	"fmt"
	"runtime"
	"strings"
)

// Report returns a human-readable summary of host capability support: every
// vocabulary member in canonical order with a yes/no marker. Meant for
// operator diagnostics; machine consumers should use [Set] directly.
func Report(host Set) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Architecture: %s\n", runtime.GOARCH)
	b.WriteString("Capabilities:\n")
	for _, c := range capabilityValues {
		writeSupport(&b, c.String(), host.Contains(c))
	}

	return b.String()
}

func writeSupport(b *strings.Builder, name string, supported bool) {
	status := "no"
	if supported {
		status = "yes"
	}
	fmt.Fprintf(b, "  %s: %s\n", name, status)
}
