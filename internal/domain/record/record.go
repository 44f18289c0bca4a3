// Package record holds the schema-less record type and its identifier rules.
package record

import (
	"fmt"
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kailas-cloud/recdex/internal/domain"
)

const (
	// IDField is the store-assigned identifier field.
	IDField = "_id"
	// VersionField is the internal document version field.
	VersionField = "__v"
)

// Record is a document with no fixed shape.
type Record map[string]any

// ParseID validates a raw identifier and returns its canonical form.
func ParseID(raw string) (string, error) {
	oid, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return "", fmt.Errorf("%q: %w", raw, domain.ErrInvalidIdentifier)
	}
	return oid.Hex(), nil
}

// NewID returns a fresh identifier.
func NewID() string {
	return primitive.NewObjectID().Hex()
}

// Columns returns the field names of a sampled record, minus identifier and
// version fields, sorted. The set is inferred from one record only.
func Columns(sample Record) []string {
	cols := make([]string, 0, len(sample))
	for k := range sample {
		if k == IDField || k == VersionField {
			continue
		}
		cols = append(cols, k)
	}
	sort.Strings(cols)
	return cols
}
