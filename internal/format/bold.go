package format

import (
	"strings"
)

const boldMarker = "**"

// findBold locates the first bold span at or after from. start is the offset
// of the opening marker and end is just past the closing marker. A span never
// crosses a line break (\n, \r, U+2028 or U+2029); an opener whose first
// closer lies past a break is skipped and scanning resumes after the break.
func findBold(s string, from int) (start, end int, ok bool) {
	for i := from; i < len(s); {
		k := strings.Index(s[i:], boldMarker)
		if k < 0 {
			return 0, 0, false
		}
		open := i + k
		inner := open + len(boldMarker)

		j := strings.Index(s[inner:], boldMarker)
		if j < 0 {
			return 0, 0, false
		}
		closer := inner + j

		if brk, size := lineBreak(s[inner:closer]); brk >= 0 {
			i = inner + brk + size
			continue
		}
		return open, closer + len(boldMarker), true
	}
	return 0, 0, false
}

// lineBreak returns the offset and byte length of the first line break in s,
// or -1 when there is none.
func lineBreak(s string) (int, int) {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\n', '\r':
			return i, 1
		case 0xE2:
			// U+2028 and U+2029 encode as E2 80 A8 / E2 80 A9
			if i+2 < len(s) && s[i+1] == 0x80 && (s[i+2] == 0xA8 || s[i+2] == 0xA9) {
				return i, 3
			}
		}
	}
	return -1, 0
}

// emphasize replaces every **text** span with <strong>text</strong>.
// Unmatched markers are left untouched.
func emphasize(s string) string {
	var b strings.Builder
	last := 0
	for {
		start, end, ok := findBold(s, last)
		if !ok {
			break
		}
		b.WriteString(s[last:start])
		b.WriteString("<strong>")
		b.WriteString(s[start+len(boldMarker) : end-len(boldMarker)])
		b.WriteString("</strong>")
		last = end
	}
	if last == 0 {
		return s
	}
	b.WriteString(s[last:])
	return b.String()
}
