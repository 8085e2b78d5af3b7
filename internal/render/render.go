package render

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"

	"github.com/kriansa/mountline/internal/mounttab"
)

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ValidFormat reports whether format is one of the supported formats
func ValidFormat(format string) bool {
	switch format {
	case FormatText, FormatJSON, FormatYAML:
		return true
	}
	return false
}

// Write renders mounts to w in the given format.
//
// Text output is an aligned table with a header when w is a terminal and
// one mount-table line per entry otherwise, so piped output can be parsed
// again.
func Write(w io.Writer, format string, mounts []mounttab.Mount) error {
	if mounts == nil {
		mounts = []mounttab.Mount{}
	}

	switch format {
	case FormatText:
		if isTerminal(w) {
			return writeTable(w, mounts)
		}
		return writeLines(w, mounts)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(mounts); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(mounts); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func writeLines(w io.Writer, mounts []mounttab.Mount) error {
	for _, m := range mounts {
		if _, err := fmt.Fprintln(w, m.String()); err != nil {
			return err
		}
	}
	return nil
}

func writeTable(w io.Writer, mounts []mounttab.Mount) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DEVICE\tMOUNT POINT\tTYPE\tOPTIONS\tDUMP\tPASS")
	for _, m := range mounts {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\n",
			mounttab.Escape(m.Device),
			mounttab.Escape(m.MountPoint),
			mounttab.Escape(m.FSType),
			mounttab.Escape(strings.Join(m.Options, ",")),
			m.Freq, m.PassNo)
	}
	return tw.Flush()
}
