package mounttab

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitOptions(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"single", "defaults", []string{"defaults"}},
		{"several", `a,bc,d\040e`, []string{"a", "bc", "d e"}},
		{"values kept verbatim", "uid=1000,gid=100,umask=022", []string{"uid=1000", "gid=100", "umask=022"}},
		{"order kept", "ro,rw,ro", []string{"ro", "rw", "ro"}},
		{"escaped backslash", `path=a\\b`, []string{`path=a\b`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SplitOptions(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplitOptions_Errors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		kind   error
		offset int
	}{
		{"empty", "", ErrEmptyOptionList, 0},
		{"comma", ",", ErrEmptyOptionList, 0},
		{"double comma", "a,,b", ErrEmptyOptionList, 2},
		{"trailing comma", "a,b,", ErrEmptyOptionList, 4},
		{"bad escape", `a,b\9`, ErrUnescape, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SplitOptions(tt.input)
			assert.Nil(t, got)
			require.ErrorIs(t, err, tt.kind)

			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, "options", perr.Element)
			assert.Equal(t, tt.offset, perr.Offset)
		})
	}
}

func TestSplitOptions_JoinRoundTrip(t *testing.T) {
	sets := [][]string{
		{"a"},
		{"rw", "nosuid", "nodev"},
		{"x-systemd.automount", "x-systemd.idle-timeout=60", "_netdev"},
		{"b=c", "d e", "f\tg"},
	}

	for _, opts := range sets {
		escaped := make([]string, len(opts))
		for i, o := range opts {
			escaped[i] = Escape(o)
		}

		got, err := SplitOptions(strings.Join(escaped, ","))
		require.NoError(t, err)
		assert.Equal(t, opts, got)
	}
}
