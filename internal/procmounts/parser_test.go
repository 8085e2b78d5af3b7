package procmounts

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kriansa/mountline/internal/log"
	"github.com/kriansa/mountline/internal/mounttab"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	log.Setup(false)
	os.Exit(m.Run())
}

const procMounts = `sysfs /sys sysfs rw,nosuid,nodev,noexec,relatime 0 0
proc /proc proc rw,nosuid,nodev,noexec,relatime 0 0
/dev/mapper/root / ext4 rw,relatime 0 0
/dev/sdb1 /run/media/user/USB\040Stick vfat rw,uid=1000,gid=1000 0 0
tmpfs /tmp tmpfs rw,nosuid,nodev 0 0
overlay /tmp overlay rw,lowerdir=/a,upperdir=/b,workdir=/c 0 0
`

func TestReadAll(t *testing.T) {
	table, err := ReadAll(strings.NewReader(procMounts))
	require.NoError(t, err)
	require.Len(t, table, 6)

	assert.Equal(t, "sysfs", table[0].Device)
	assert.Equal(t, "/run/media/user/USB Stick", table[3].MountPoint)
	assert.Equal(t, []string{"rw", "uid=1000", "gid=1000"}, table[3].Options)
}

func TestReadAll_SkipsBlankAndComments(t *testing.T) {
	input := "# /etc/fstab\n\n   \n  # indented comment\n\tproc /proc proc defaults 0 0\n"

	table, err := ReadAll(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, table, 1)
	assert.Equal(t, "/proc", table[0].MountPoint)
}

func TestReadAll_InvalidLine(t *testing.T) {
	input := "proc /proc proc rw 0 0\n  /dev/sda1 / ext4 defaults 0 1\n"

	table, err := ReadAll(strings.NewReader(input))
	require.Error(t, err)
	assert.Nil(t, table)

	var lerr *LineError
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, 2, lerr.Line)
	assert.Equal(t, "  /dev/sda1 / ext4 defaults 0 1", lerr.Text)
	assert.ErrorIs(t, err, mounttab.ErrGrammarMismatch)

	var perr *mounttab.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "pass", perr.Element)
	// offset is relative to the untrimmed line
	assert.Equal(t, "1", lerr.Text[perr.Offset:])
}

func TestReadAll_SkipInvalid(t *testing.T) {
	input := "bad line\nproc /proc proc rw 0 0\ndev mp fs a,,b 0 0\n"

	var skipped []int
	table, err := ReadAll(strings.NewReader(input), WithSkipInvalid(func(lerr *LineError) {
		skipped = append(skipped, lerr.Line)
	}))
	require.NoError(t, err)
	require.Len(t, table, 1)
	assert.Equal(t, "proc", table[0].Device)
	assert.Equal(t, []int{1, 3}, skipped)
}

func TestReadAll_SkipInvalidNilReport(t *testing.T) {
	table, err := ReadAll(strings.NewReader("nope\n"), WithSkipInvalid(nil))
	require.NoError(t, err)
	assert.Empty(t, table)
}

func TestReadAll_DigitsParser(t *testing.T) {
	input := "UUID=abcd / ext4 defaults 1 1\nUUID=ef01 /home ext4 defaults 1 2\n"

	_, err := ReadAll(strings.NewReader(input))
	require.ErrorIs(t, err, mounttab.ErrGrammarMismatch)

	table, err := ReadAll(strings.NewReader(input), WithParser(mounttab.Parser{Counters: mounttab.CountersDigits}))
	require.NoError(t, err)
	require.Len(t, table, 2)
	assert.Equal(t, 2, table[1].PassNo)
}

func TestReader_Next(t *testing.T) {
	r := NewReader(strings.NewReader("proc /proc proc rw 0 0\n"))

	m, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "proc", m.FSType)

	_, err = r.Next()
	assert.True(t, errors.Is(err, io.EOF))
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mounts")
	require.NoError(t, os.WriteFile(path, []byte(procMounts), 0644))

	table, err := ParseFile(path)
	require.NoError(t, err)
	assert.Len(t, table, 6)

	_, err = ParseFile(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestTable_Lookups(t *testing.T) {
	table, err := ReadAll(strings.NewReader(procMounts))
	require.NoError(t, err)

	m, ok := table.ByMountPoint("/tmp")
	require.True(t, ok)
	assert.Equal(t, "overlay", m.FSType, "last mount on a path wins")

	_, ok = table.ByMountPoint("/nonexistent")
	assert.False(t, ok)

	assert.True(t, table.IsMounted("/run/media/user/USB Stick"))
	assert.False(t, table.IsMounted(`/run/media/user/USB\040Stick`))

	found := table.ByDevice("/dev/sdb1")
	require.Len(t, found, 1)
	assert.Equal(t, "vfat", found[0].FSType)
	assert.Empty(t, table.ByDevice("/dev/nope"))
}
