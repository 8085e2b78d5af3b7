// Package mounttab parses single lines of fstab(5) style mount tables.
package mounttab

import (
	"fmt"
	"strings"
)

// Mount is a single mount-table entry.
//
// All string fields hold decoded values: escapes such as \040 have already
// been turned back into the characters they stand for.
type Mount struct {
	// Device is the first field, e.g. /dev/sda1 or UUID=...
	Device string `json:"device" yaml:"device"`
	// MountPoint is the directory the device is mounted on
	MountPoint string `json:"mount_point" yaml:"mount_point"`
	// FSType is the filesystem type, e.g. ext4 or proc
	FSType string `json:"fs_type" yaml:"fs_type"`
	// Options are the comma separated mount options, in line order
	Options []string `json:"options" yaml:"options"`
	// Freq is the dump field
	Freq int `json:"freq" yaml:"freq"`
	// PassNo is the fsck pass field
	PassNo int `json:"passno" yaml:"passno"`
}

// String renders the entry as a mount-table line. A Mount with zero
// counters renders to a line ParseLine accepts; non-zero counters need the
// CountersDigits grammar. Empty fields are written as "none" and an empty option list as
// "defaults", following getmntent(3) conventions.
func (m Mount) String() string {
	opts := "defaults"
	if len(m.Options) != 0 {
		escaped := make([]string, len(m.Options))
		for i, o := range m.Options {
			escaped[i] = Escape(o)
		}
		opts = strings.Join(escaped, ",")
	}

	return fmt.Sprintf("%s %s %s %s %d %d",
		orNone(m.Device), orNone(m.MountPoint), orNone(m.FSType), opts, m.Freq, m.PassNo)
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return Escape(s)
}
