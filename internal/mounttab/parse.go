package mounttab

import (
	"fmt"
	"strconv"
)

// Counters selects how the trailing dump and pass fields are matched
type Counters int

const (
	// CountersStrict accepts only the literal "0 0"
	CountersStrict Counters = iota
	// CountersDigits accepts any run of decimal digits in either field
	CountersDigits
)

func (c Counters) String() string {
	switch c {
	case CountersStrict:
		return "strict"
	case CountersDigits:
		return "digits"
	default:
		return fmt.Sprintf("Counters(%d)", int(c))
	}
}

// ParseCounters parses the names returned by Counters.String
func ParseCounters(s string) (Counters, error) {
	switch s {
	case "strict":
		return CountersStrict, nil
	case "digits":
		return CountersDigits, nil
	default:
		return 0, fmt.Errorf("unknown counters mode %q (use 'strict' or 'digits')", s)
	}
}

// Parser parses mount-table lines. The zero value uses the strict grammar.
// A Parser holds no state and may be shared between goroutines.
type Parser struct {
	Counters Counters
}

// ParseLine parses one line with the strict grammar:
//
//	device mount_point fs_type opt[,opt...] 0 0
//
// Fields are separated by one or more spaces or tabs and trailing blanks
// are allowed. The line must not contain its newline.
func ParseLine(line string) (Mount, error) {
	return Parser{}.Parse(line)
}

// Parse parses one mount-table line. On failure it returns the zero Mount
// and a *ParseError; the whole line is consumed on success.
func (p Parser) Parse(line string) (Mount, error) {
	m, perr := p.parse(line)
	if perr != nil {
		return Mount{}, perr
	}
	return m, nil
}

func (p Parser) parse(line string) (Mount, *ParseError) {
	s := &scanner{line: line}

	device, perr := s.decoded("device", false)
	if perr != nil {
		return Mount{}, perr
	}
	mountPoint, perr := s.decoded("mount point", true)
	if perr != nil {
		return Mount{}, perr
	}
	fsType, perr := s.decoded("filesystem type", true)
	if perr != nil {
		return Mount{}, perr
	}

	start, end, perr := s.field("options", ErrMalformedToken, true)
	if perr != nil {
		return Mount{}, perr
	}
	options, perr := splitOptions(line, start, end)
	if perr != nil {
		return Mount{}, perr
	}

	freq, perr := s.counter("dump", p.Counters)
	if perr != nil {
		return Mount{}, perr
	}
	passNo, perr := s.counter("pass", p.Counters)
	if perr != nil {
		return Mount{}, perr
	}

	s.blank()
	if s.pos != len(line) {
		return Mount{}, s.fail(ErrGrammarMismatch, "end of line", "unexpected trailing content")
	}

	return Mount{
		Device:     device,
		MountPoint: mountPoint,
		FSType:     fsType,
		Options:    options,
		Freq:       freq,
		PassNo:     passNo,
	}, nil
}

// scanner walks a line left to right
type scanner struct {
	line string
	pos  int
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t'
}

// blank consumes spaces and tabs and reports how many were skipped
func (s *scanner) blank() int {
	start := s.pos
	for s.pos < len(s.line) && isBlank(s.line[s.pos]) {
		s.pos++
	}
	return s.pos - start
}

// field consumes a maximal run of non-blank bytes, preceded by at least one
// blank when separated is set, and returns its bounds.
func (s *scanner) field(element string, kind error, separated bool) (int, int, *ParseError) {
	if separated && s.blank() == 0 {
		return 0, 0, s.fail(kind, element, s.missing())
	}

	start := s.pos
	for s.pos < len(s.line) && !isBlank(s.line[s.pos]) {
		s.pos++
	}
	if s.pos == start {
		return 0, 0, s.fail(kind, element, s.missing())
	}
	return start, s.pos, nil
}

func (s *scanner) decoded(element string, separated bool) (string, *ParseError) {
	start, end, perr := s.field(element, ErrMalformedToken, separated)
	if perr != nil {
		return "", perr
	}
	return decode(s.line, start, end, element)
}

func (s *scanner) counter(element string, mode Counters) (int, *ParseError) {
	start, end, perr := s.field(element, ErrGrammarMismatch, true)
	if perr != nil {
		return 0, perr
	}
	tok := s.line[start:end]

	if mode != CountersDigits {
		if tok != "0" {
			return 0, newParseError(ErrGrammarMismatch, element, s.line, start,
				fmt.Sprintf("expected \"0\", got %q", tok))
		}
		return 0, nil
	}

	for i := 0; i < len(tok); i++ {
		if tok[i] < '0' || tok[i] > '9' {
			return 0, newParseError(ErrGrammarMismatch, element, s.line, start,
				fmt.Sprintf("expected decimal digits, got %q", tok))
		}
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, newParseError(ErrGrammarMismatch, element, s.line, start,
			fmt.Sprintf("value %q out of range", tok))
	}
	return n, nil
}

func (s *scanner) missing() string {
	if s.pos == len(s.line) {
		return "unexpected end of line"
	}
	return "unexpected whitespace"
}

func (s *scanner) fail(kind error, element, detail string) *ParseError {
	return newParseError(kind, element, s.line, s.pos, detail)
}
