package cds

import (
	"errors"
	"testing"
)

func TestCountLines(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty", "", 0},
		{"single line no newline", "abc", 1},
		{"single line with newline", "abc\n", 1},
		{"two lines", "a\nb", 2},
		{"two lines trailing newline", "a\nb\n", 2},
		{"blank line in middle", "a\n\nb\n", 3},
		{"only newline", "\n", 1},
		{"crlf", "a\r\nb\r\n", 2},
		{"bare cr", "a\rb\r", 2},
		{"mixed breaks", "a\nb\r\nc\rd", 4},
		{"cr then lf separately", "a\r\r\n", 2},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := countLines(tt.text); got != tt.want {
				t.Errorf("countLines(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestCountWords(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"a b c\n", 3},
		{"  leading and trailing  ", 3},
		{"tabs\tand\nnewlines", 3},
		{"collapse    many   spaces", 3},
		{"\n\n\n", 0},
		{"a\x1cb\x1dc\x1ed\x1fe", 5},
		{"no-break\u00a0space", 2},
		{"ideographic\u3000space", 2},
		{"zero\u200bwidth", 1},
	}

	for _, tt := range tests {
		if got := countWords(tt.text); got != tt.want {
			t.Errorf("countWords(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}

func TestCountCharacters(t *testing.T) {
	if got := countCharacters("a b c\n"); got != 6 {
		t.Errorf("countCharacters(ascii) = %d, want 6", got)
	}
	if got := countCharacters("héllo"); got != 5 {
		t.Errorf("countCharacters(accented) = %d, want 5", got)
	}
	if got := countCharacters("日本語"); got != 3 {
		t.Errorf("countCharacters(cjk) = %d, want 3", got)
	}
}

func TestCountOccurrences(t *testing.T) {
	tests := []struct {
		text, substr string
		want         int
	}{
		{"class Foo:\n    def bar(): pass\n", "class ", 1},
		{"class Foo:\n    def bar(): pass\n", "def ", 1},
		{"subclass A: pass", "class ", 1},
		{"# def in a comment\nx = 'def '\n", "def ", 2},
		{"classy", "class ", 0},
		{"def def def ", "def ", 3},
	}

	for _, tt := range tests {
		if got := countOccurrences(tt.text, tt.substr); got != tt.want {
			t.Errorf("countOccurrences(%q, %q) = %d, want %d", tt.text, tt.substr, got, tt.want)
		}
	}
}

func TestDecodeText(t *testing.T) {
	t.Run("translates line breaks", func(t *testing.T) {
		got, err := decodeText("f.txt", []byte("a\r\nb\rc\n"))
		if err != nil {
			t.Fatalf("decodeText() error = %v", err)
		}
		if got != "a\nb\nc\n" {
			t.Errorf("decodeText() = %q, want %q", got, "a\nb\nc\n")
		}
	})

	t.Run("rejects invalid utf-8", func(t *testing.T) {
		_, err := decodeText("f.txt", []byte("ok\xff\xfe"))
		var decErr *DecodeError
		if !errors.As(err, &decErr) {
			t.Fatalf("decodeText() error = %v, want *DecodeError", err)
		}
		if decErr.Offset != 2 {
			t.Errorf("Offset = %d, want 2", decErr.Offset)
		}
		if decErr.Path != "f.txt" {
			t.Errorf("Path = %q, want f.txt", decErr.Path)
		}
	})

	t.Run("keeps multibyte text", func(t *testing.T) {
		got, err := decodeText("f.txt", []byte("héllo"))
		if err != nil || got != "héllo" {
			t.Errorf("decodeText() = %q, %v", got, err)
		}
	})
}
