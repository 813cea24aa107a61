package utils

import "unicode/utf8"

const (
	// classifierSniffLimit bounds how many characters the heuristic examines.
	classifierSniffLimit = 1000
	// classifierControlThreshold is the number of control characters tolerated
	// before content is classified as binary.
	classifierControlThreshold = 10
)

// IsDecodableText reports whether the provided bytes decode as UTF-8 text.
// Content that fails this check is treated as unreadable before the binary
// heuristic ever runs.
func IsDecodableText(data []byte) bool {
	return utf8.Valid(data)
}

// IsBinaryText reports whether decoded text content appears to be binary. It
// examines at most the first classifierSniffLimit characters and counts
// control characters in the ranges 0x00–0x08 and 0x0B–0x1F, leaving tab,
// newline, and carriage return out. More than classifierControlThreshold such
// characters classifies the content as binary. This is a heuristic: crafted
// text can produce false positives and negatives.
func IsBinaryText(content string) bool {
	controlCharacterCount := 0
	examinedCharacterCount := 0
	for _, character := range content {
		if examinedCharacterCount >= classifierSniffLimit {
			break
		}
		examinedCharacterCount++
		if isControlCharacter(character) {
			controlCharacterCount++
			if controlCharacterCount > classifierControlThreshold {
				return true
			}
		}
	}
	return false
}

// isControlCharacter reports whether the character falls in the counted
// control ranges. Tab (0x09), newline (0x0A), and carriage return (0x0D) are
// ordinary text characters.
func isControlCharacter(character rune) bool {
	if character >= 0x00 && character <= 0x08 {
		return true
	}
	if character >= 0x0B && character <= 0x1F && character != 0x0D {
		return true
	}
	return false
}
