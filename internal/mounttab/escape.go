package mounttab

import (
	"fmt"
	"strings"
)

// escapes maps the three-digit octal escape bodies to the byte they encode.
// 134 is not part of the fstab(5) list but the kernel writes backslashes
// that way in /proc/mounts.
var escapes = map[string]byte{
	"040": ' ',
	"011": '\t',
	"012": '\n',
	"134": '\\',
}

var escapeReplacer = strings.NewReplacer(
	" ", `\040`, "\t", `\011`, "\n", `\012`, `\`, `\134`)

// Escape encodes space, tab, newline and backslash so that s can be written
// as a single mount-table field. Unescape(Escape(s)) == s for every s.
// Commas are not escaped; an option containing one cannot be represented.
func Escape(s string) string {
	return escapeReplacer.Replace(s)
}

// Unescape decodes a single whitespace-free field token. A backslash must
// be followed by another backslash or by one of 040, 011, 012, 134;
// anything else fails with ErrUnescape.
func Unescape(token string) (string, error) {
	s, perr := decode(token, 0, len(token), "token")
	if perr != nil {
		return "", perr
	}
	return s, nil
}

// decode unescapes line[start:end]. Errors are positioned relative to line.
func decode(line string, start, end int, element string) (string, *ParseError) {
	tok := line[start:end]
	if strings.IndexByte(tok, '\\') < 0 {
		return tok, nil
	}

	var b strings.Builder
	b.Grow(len(tok))
	for i := 0; i < len(tok); {
		c := tok[i]
		if c != '\\' {
			b.WriteByte(c)
			i++
			continue
		}

		body := tok[i+1:]
		if strings.HasPrefix(body, `\`) {
			b.WriteByte('\\')
			i += 2
			continue
		}
		if len(body) >= 3 {
			if r, ok := escapes[body[:3]]; ok {
				b.WriteByte(r)
				i += 4
				continue
			}
		}

		return "", newParseError(ErrUnescape, element, line, start+i, escapeDetail(body))
	}

	return b.String(), nil
}

func escapeDetail(body string) string {
	if body == "" {
		return "trailing backslash"
	}
	if len(body) > 3 {
		body = body[:3]
	}
	return fmt.Sprintf("unrecognized escape %q", `\`+body)
}
