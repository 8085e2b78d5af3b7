package procmounts

import (
	"fmt"

	"github.com/kriansa/mountline/internal/mounttab"
)

// LineError is returned for a line that is not a valid mount-table entry
type LineError struct {
	// Line is the 1-based line number
	Line int
	// Text is the line as read, without its newline
	Text string
	// Err is the parse error, usually a *mounttab.ParseError
	Err error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// Table is an ordered list of mount entries as they appear in the source
type Table []mounttab.Mount

// ByMountPoint returns the entry mounted on path. When several entries
// share a mount point the last one wins, since later mounts stack on top.
func (t Table) ByMountPoint(path string) (mounttab.Mount, bool) {
	for i := len(t) - 1; i >= 0; i-- {
		if t[i].MountPoint == path {
			return t[i], true
		}
	}
	return mounttab.Mount{}, false
}

// ByDevice returns all entries whose device matches, in table order
func (t Table) ByDevice(device string) []mounttab.Mount {
	var found []mounttab.Mount
	for _, m := range t {
		if m.Device == device {
			found = append(found, m)
		}
	}
	return found
}

// IsMounted checks if anything is mounted on path
func (t Table) IsMounted(path string) bool {
	_, ok := t.ByMountPoint(path)
	return ok
}
