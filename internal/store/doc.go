package store

import (
	"encoding/json"
	"time"
)

// TimeLayout is the fixed-width UTC layout used for every timestamp written
// to the store. Fixed width keeps lexicographic order equal to time order,
// which retention purges and log sorting rely on.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

// FormatTime renders t for storage.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// ToDoc converts a struct to a document via its JSON form.
func ToDoc(v interface{}) (Doc, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc Doc
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// FromDoc decodes a document into a struct via its JSON form.
func FromDoc(doc Doc, v interface{}) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}
