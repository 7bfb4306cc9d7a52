package cds

import "strings"

// Category is the classification tag that decides which metadata a record describes.
type Category int

const (
	CategoryGeneric Category = iota
	CategoryText
	CategoryImage
	CategoryCode
)

func (c Category) String() string {
	switch c {
	case CategoryText:
		return "text"
	case CategoryImage:
		return "image"
	case CategoryCode:
		return "code"
	default:
		return "generic"
	}
}

// Classify maps a file extension, including its leading dot, to a Category.
// Matching is case-sensitive; unknown or empty extensions are Generic.
func Classify(extension string) Category {
	switch extension {
	case ".txt":
		return CategoryText
	case ".png", ".jpg":
		return CategoryImage
	case ".py", ".java":
		return CategoryCode
	default:
		return CategoryGeneric
	}
}

// Extension returns the suffix of name starting at its final dot.
// Leading dots do not start an extension, so ".bashrc" has none.
func Extension(name string) string {
	stem := strings.TrimLeft(name, ".")
	i := strings.LastIndexByte(stem, '.')
	if i < 0 {
		return ""
	}
	return stem[i:]
}
