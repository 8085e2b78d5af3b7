package mounttab

import "strings"

// SplitOptions splits a raw options token on commas and decodes each
// option. The token must hold at least one option and no option may be
// empty, so "", ",", "a," and "a,,b" all fail with ErrEmptyOptionList.
func SplitOptions(token string) ([]string, error) {
	opts, perr := splitOptions(token, 0, len(token))
	if perr != nil {
		return nil, perr
	}
	return opts, nil
}

// splitOptions splits line[start:end]. Errors are positioned relative to line.
func splitOptions(line string, start, end int) ([]string, *ParseError) {
	if start == end {
		return nil, newParseError(ErrEmptyOptionList, "options", line, start, "no options")
	}

	opts := make([]string, 0, strings.Count(line[start:end], ",")+1)
	for pos := start; ; {
		stop := end
		i := strings.IndexByte(line[pos:end], ',')
		if i >= 0 {
			stop = pos + i
		}
		if stop == pos {
			return nil, newParseError(ErrEmptyOptionList, "options", line, pos, "empty option")
		}

		opt, perr := decode(line, pos, stop, "options")
		if perr != nil {
			return nil, perr
		}
		opts = append(opts, opt)

		if i < 0 {
			return opts, nil
		}
		pos = stop + 1
	}
}
