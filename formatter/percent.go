package formatter

import "strings"

// Punctuation left readable by PercentEncode.
const percentKeep = " :<>,()&"

const hexLower = "0123456789abcdef"

// PercentEncode escapes display text for the JSON label format. Bytes
// outside the unreserved URL set are written as lower-case %xx escapes,
// except spaces and the punctuation in percentKeep.
func PercentEncode(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) || strings.IndexByte(percentKeep, c) >= 0 {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hexLower[c>>4])
		b.WriteByte(hexLower[c&0x0f])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return c == '-' || c == '.' || c == '_' || c == '~'
}
