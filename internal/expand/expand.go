// Package expand implements the placeholder expander: a pure text
// transform that substitutes ${NAME} tokens from a variable map, leaving
// unknown names intact in the output.
package expand

import "strings"

// Expand scans s left-to-right for non-overlapping ${NAME} placeholders
// where NAME matches [A-Za-z0-9_]+. Each placeholder whose name exists in
// vars is replaced with the mapped value; each placeholder whose name is
// absent is emitted verbatim, including its ${} delimiters.
//
// Expand does not use regexp: the grammar is small enough that a
// handwritten scanner is both faster and easier to reason about than
// backtracking.
func Expand(s string, vars map[string]string) string {
	var b strings.Builder
	i := 0
	n := len(s)

	for i < n {
		start := strings.IndexByte(s[i:], '$')
		if start == -1 {
			b.WriteString(s[i:])
			break
		}
		start += i
		b.WriteString(s[i:start])

		if start+1 >= n || s[start+1] != '{' {
			b.WriteByte('$')
			i = start + 1
			continue
		}

		nameStart := start + 2
		j := nameStart
		for j < n && isNameByte(s[j]) {
			j++
		}
		if j == nameStart || j >= n || s[j] != '}' {
			// Not a well-formed placeholder; emit the '$' and resume
			// scanning right after it so a later '{' can still match.
			b.WriteByte('$')
			i = start + 1
			continue
		}

		name := s[nameStart:j]
		if value, ok := vars[name]; ok {
			b.WriteString(value)
		} else {
			b.WriteString(s[start : j+1])
		}
		i = j + 1
	}

	return b.String()
}

func isNameByte(c byte) bool {
	return c == '_' ||
		(c >= 'A' && c <= 'Z') ||
		(c >= 'a' && c <= 'z') ||
		(c >= '0' && c <= '9')
}
