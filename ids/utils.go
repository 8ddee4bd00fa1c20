package ids

// IsHex reports whether s is non-empty and made only of hex digits (either case).
func IsHex(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// IsCanonicalTraceID reports whether s is 32 lowercase hex characters.
func IsCanonicalTraceID(s string) bool {
	return len(s) == TraceIDLength && isLowerHex(s)
}

// IsCanonicalSpanID reports whether s is 16 lowercase hex characters.
func IsCanonicalSpanID(s string) bool {
	return len(s) == SpanIDLength && isLowerHex(s)
}

func isLowerHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= '0' && c <= '9') && !(c >= 'a' && c <= 'f') {
			return false
		}
	}
	return true
}
