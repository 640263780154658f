package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"reflect"
	"runtime"
	"strings"

	"github.com/leodido/hostcaps"
	"github.com/leodido/structcli"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/thediveo/enumflag/v2"
)

// Build metadata injected via ldflags. When built without ldflags (e.g.,
// plain `go build`), these remain at their zero values and the version
// command omits them gracefully.
var (
	version = ""
	commit  = ""
	date    = ""
)

func main() {
	root := &cobra.Command{
		Use:   "hostcaps",
		Short: "CPU capability verification for ahead-of-time compiled artifacts",
		Long: `hostcaps inspects the CPU capabilities of the current host.

It enumerates supported instruction-set extensions, verifies them against an
artifact's capability manifest (or an explicit requirement list), and captures
the host set as a new manifest. Use it for deployment gating, CI/CD checks,
or diagnosing illegal-instruction crashes.`,
		SilenceUsage: true,
	}

	root.AddCommand(probeCmd())
	root.AddCommand(verifyCmd())
	root.AddCommand(captureCmd())
	root.AddCommand(versionCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// ProbeOptions defines flags for the probe subcommand.
type ProbeOptions struct {
	JSON bool `flag:"json" flagshort:"j" flagdescr:"Output in JSON format"`
}

func (o *ProbeOptions) Attach(c *cobra.Command) error {
	return structcli.Define(c, o)
}

func probeCmd() *cobra.Command {
	opts := &ProbeOptions{}

	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Enumerate the capabilities of the current host CPU",
		PreRunE: func(c *cobra.Command, args []string) error {
			return structcli.Unmarshal(c, opts)
		},
		RunE: func(c *cobra.Command, args []string) error {
			acc, err := hostcaps.New()
			if err != nil {
				return err
			}
			host := acc.Host()

			if opts.JSON {
				return printJSON(map[string]any{
					"arch":         runtime.GOARCH,
					"capabilities": capabilityNames(host),
				})
			}

			fmt.Print(hostcaps.Report(host))
			return nil
		},
	}

	if err := opts.Attach(cmd); err != nil {
		panic(err)
	}
	return cmd
}

// VerifyOptions defines flags for the verify subcommand.
type VerifyOptions struct {
	Manifest string                 `flag:"manifest" flagshort:"m" flagdescr:"Capability manifest to verify against the host"`
	Require  capabilityRequirements `flag:"require" flagshort:"r" flagdescr:"Required capabilities (see available capabilities above)" flagcustom:"true"`
	JSON     bool                   `flag:"json" flagshort:"j" flagdescr:"Output in JSON format"`
}

func (o *VerifyOptions) Attach(c *cobra.Command) error {
	return structcli.Define(c, o)
}

func (o *VerifyOptions) DefineRequire(name, short, descr string, structField reflect.StructField, fieldValue reflect.Value) (pflag.Value, string) {
	fieldPtr := fieldValue.Addr().Interface().(*capabilityRequirements)
	*fieldPtr = nil
	return fieldPtr, descr
}

func (o *VerifyOptions) DecodeRequire(input any) (any, error) {
	s, ok := input.(string)
	if !ok {
		return input, nil
	}

	return parseCapabilityRequirements(s)
}

func verifyCmd() *cobra.Command {
	opts := &VerifyOptions{}

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify that the host satisfies required capabilities",
		Long:  verifyLongDescription(),
		PreRunE: func(c *cobra.Command, args []string) error {
			return structcli.Unmarshal(c, opts)
		},
		RunE: func(c *cobra.Command, args []string) error {
			required, err := requiredSet(opts)
			if err != nil {
				return err
			}

			acc, err := hostcaps.New()
			if err != nil {
				return err
			}

			err = acc.Verify(required)
			if err != nil {
				var me *hostcaps.MissingCapabilitiesError
				if errors.As(err, &me) {
					if opts.JSON {
						return printJSON(map[string]any{
							"ok":      false,
							"missing": missingNames(me),
						})
					}
					fmt.Fprintf(os.Stderr, "FAIL: %s\n", me)
					os.Exit(1)
				}
				return err
			}

			if opts.JSON {
				return printJSON(map[string]any{"ok": true})
			}
			fmt.Println("OK: host satisfies all required capabilities")
			return nil
		},
	}

	if err := opts.Attach(cmd); err != nil {
		panic(err)
	}
	return cmd
}

// requiredSet merges the manifest (if any) and the explicit requirement list
// into one required capability set.
func requiredSet(opts *VerifyOptions) (hostcaps.Set, error) {
	if opts.Manifest == "" && len(opts.Require) == 0 {
		return hostcaps.Set{}, fmt.Errorf("no requirements: pass --manifest and/or --require")
	}

	var required hostcaps.Set
	if opts.Manifest != "" {
		m, err := hostcaps.LoadManifest(opts.Manifest)
		if err != nil {
			return hostcaps.Set{}, err
		}
		required, err = m.RequiredSet()
		if err != nil {
			return hostcaps.Set{}, err
		}
	}
	for _, c := range opts.Require {
		required.Add(c)
	}
	return required, nil
}

// CaptureOptions defines flags for the capture subcommand.
type CaptureOptions struct {
	Output string `flag:"output" flagshort:"o" flagdescr:"Write the manifest to this path instead of stdout"`
}

func (o *CaptureOptions) Attach(c *cobra.Command) error {
	return structcli.Define(c, o)
}

func captureCmd() *cobra.Command {
	opts := &CaptureOptions{}

	cmd := &cobra.Command{
		Use:   "capture",
		Short: "Capture the host capability set as a manifest",
		PreRunE: func(c *cobra.Command, args []string) error {
			return structcli.Unmarshal(c, opts)
		},
		RunE: func(c *cobra.Command, args []string) error {
			acc, err := hostcaps.New()
			if err != nil {
				return err
			}
			m := hostcaps.HostManifest(acc.Host())

			if opts.Output != "" {
				return hostcaps.SaveManifest(opts.Output, m)
			}
			return hostcaps.WriteManifest(os.Stdout, m)
		},
	}

	if err := opts.Attach(cmd); err != nil {
		panic(err)
	}
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show tool version and host architecture",
		RunE: func(c *cobra.Command, args []string) error {
			if version != "" {
				fmt.Printf("hostcaps %s", version)
				if commit != "" {
					fmt.Printf(" (%s)", commit)
				}
				if date != "" {
					fmt.Printf(" built %s", date)
				}
				fmt.Println()
			} else {
				fmt.Println("hostcaps (dev)")
			}

			fmt.Printf("Architecture: %s/%s\n", runtime.GOOS, runtime.GOARCH)
			return nil
		},
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func availableCapabilities() string {
	return strings.Join(hostcaps.Names(), ", ")
}

func verifyLongDescription() string {
	return fmt.Sprintf(`Verify that the host CPU supports all required capabilities.
Requirements come from a capability manifest, an explicit --require list, or both.
Exits with code 0 if the host satisfies them, 1 if any are missing.

Available capabilities:
%s`, formatWrappedList(hostcaps.Names(), "  ", 80))
}

func formatWrappedList(items []string, indent string, maxWidth int) string {
	if len(items) == 0 {
		return indent + "(none)"
	}

	lines := make([]string, 0, len(items))
	line := indent
	for i, item := range items {
		token := item
		if i < len(items)-1 {
			token += ", "
		}

		if len(line)+len(token) > maxWidth && line != indent {
			lines = append(lines, strings.TrimRight(line, " "))
			line = indent + token
			continue
		}

		line += token
	}

	lines = append(lines, strings.TrimRight(line, " "))
	return strings.Join(lines, "\n")
}

func capabilityNames(s hostcaps.Set) []string {
	names := make([]string, 0, s.Len())
	for _, c := range s.Members() {
		names = append(names, c.String())
	}
	return names
}

func missingNames(me *hostcaps.MissingCapabilitiesError) []string {
	names := make([]string, 0, len(me.Missing))
	for _, c := range me.Missing {
		names = append(names, c.String())
	}
	return names
}

type capabilityRequirements []hostcaps.Capability

var capabilityIdentifierMap = func() map[hostcaps.Capability][]string {
	ids := make(map[hostcaps.Capability][]string, len(hostcaps.Values()))
	for _, c := range hostcaps.Values() {
		ids[c] = []string{c.String()}
	}
	return ids
}()

func (r *capabilityRequirements) String() string {
	names := make([]string, 0, len(*r))
	for _, c := range *r {
		names = append(names, c.String())
	}

	return strings.Join(names, ",")
}

func (r *capabilityRequirements) Set(input string) error {
	caps, err := parseCapabilityRequirements(input)
	if err != nil {
		return err
	}

	*r = append(*r, caps...)
	return nil
}

func (r *capabilityRequirements) Type() string {
	return "capability"
}

func parseCapabilityRequirements(input string) (capabilityRequirements, error) {
	if strings.TrimSpace(input) == "" {
		return capabilityRequirements{}, nil
	}

	parts := strings.Split(input, ",")
	caps := make(capabilityRequirements, 0, len(parts))
	for _, part := range parts {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}

		var capability hostcaps.Capability
		enumValue := enumflag.New(&capability, "hostcaps.Capability", capabilityIdentifierMap, enumflag.EnumCaseInsensitive)
		if err := enumValue.Set(name); err != nil {
			return nil, fmt.Errorf("unknown capability: %q (available: %s)", name, availableCapabilities())
		}

		caps = append(caps, capability)
	}

	return caps, nil
}
