package cds

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

var newlineReplacer = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// decodeText validates data as UTF-8 and translates \r\n and \r line breaks to \n.
func decodeText(path string, data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", &DecodeError{Path: path, Offset: firstInvalid(data)}
	}
	return newlineReplacer.Replace(string(data)), nil
}

func firstInvalid(data []byte) int {
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return len(data)
}

// countLines counts lines split on \n, \r\n and \r. A trailing break does not
// start another line.
func countLines(text string) int {
	if text == "" {
		return 0
	}
	n := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			n++
		case '\r':
			n++
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
		}
	}
	if last := text[len(text)-1]; last != '\n' && last != '\r' {
		n++
	}
	return n
}

// countWords counts runs of non-whitespace. The ASCII file, group, record and
// unit separators (U+001C..U+001F) also separate words.
func countWords(text string) int {
	return len(strings.FieldsFunc(text, isWordSeparator))
}

func isWordSeparator(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

func countCharacters(text string) int {
	return utf8.RuneCountInString(text)
}

// countOccurrences counts non-overlapping occurrences of substr.
func countOccurrences(text, substr string) int {
	return strings.Count(text, substr)
}
