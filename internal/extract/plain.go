package extract

import (
	"strings"
	"unicode/utf8"
)

// extractPlain handles .txt and .md CVs. The bytes are taken as-is; anything
// that is not valid UTF-8 is replaced with U+FFFD so rune-offset matching
// downstream never sees a broken sequence.
func extractPlain(content []byte) (string, error) {
	if utf8.Valid(content) {
		return string(content), nil
	}
	return strings.ToValidUTF8(string(content), string(utf8.RuneError)), nil
}
