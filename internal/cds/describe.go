package cds

import (
	"fmt"
	"io"
	"time"
)

// Field keys produced by Describe.
const (
	KeyFilename       = "filename"
	KeyExtension      = "extension"
	KeyCreationDate   = "creationDate"
	KeyLastUpdated    = "lastUpdated"
	KeyLineCount      = "lineCount"
	KeyWordCount      = "wordCount"
	KeyCharacterCount = "characterCount"
	KeyDimensions     = "dimensions"
	KeyClassCount     = "classCount"
	KeyMethodCount    = "methodCount"
)

// TimeLayout is how timestamps are rendered by Field.String.
const TimeLayout = "2006-01-02 15:04:05.000000"

// placeholderDimensions is reported for every image; headers are never read.
const placeholderDimensions = "800x600"

// Field is one key/value pair of a record description.
type Field struct {
	Key   string
	Value any
}

func (f Field) String() string {
	switch v := f.Value.(type) {
	case time.Time:
		return fmt.Sprintf("%s: %s", f.Key, v.Format(TimeLayout))
	default:
		return fmt.Sprintf("%s: %v", f.Key, v)
	}
}

// Describe returns the record's metadata in a fixed key order.
// Text and code files are read from disk on every call.
func (r *FileRecord) Describe() ([]Field, error) {
	fields := []Field{
		{Key: KeyFilename, Value: r.name},
		{Key: KeyExtension, Value: r.extension},
		{Key: KeyCreationDate, Value: r.createdAt},
		{Key: KeyLastUpdated, Value: r.modifiedAt},
	}

	switch r.category {
	case CategoryText:
		text, err := r.readText()
		if err != nil {
			return nil, err
		}
		fields = append(fields,
			Field{Key: KeyLineCount, Value: countLines(text)},
			Field{Key: KeyWordCount, Value: countWords(text)},
			Field{Key: KeyCharacterCount, Value: countCharacters(text)},
		)
	case CategoryImage:
		fields = append(fields, Field{Key: KeyDimensions, Value: placeholderDimensions})
	case CategoryCode:
		text, err := r.readText()
		if err != nil {
			return nil, err
		}
		fields = append(fields,
			Field{Key: KeyLineCount, Value: countLines(text)},
			Field{Key: KeyClassCount, Value: countOccurrences(text, "class ")},
			Field{Key: KeyMethodCount, Value: countOccurrences(text, "def ")},
		)
	}

	return fields, nil
}

func (r *FileRecord) readText() (string, error) {
	f, err := r.fsmgr.Open(r.path)
	if err != nil {
		return "", &IOError{Op: "open", Path: r.path.String(), Err: err}
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", &IOError{Op: "read", Path: r.path.String(), Err: err}
	}
	return decodeText(r.path.String(), data)
}
