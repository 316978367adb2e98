// Package feature projects a parsed log record into the fixed-order
// numeric vector a model was trained against, and derives new schemas
// from a training batch.
package feature

import (
	"sort"

	"github.com/dkowalski/logsentinel/pkg/models"
)

// Schema is an ordered sequence of field names, fixed for the lifetime
// of one trained model. Position i of every Vector produced against this
// schema corresponds to Names[i].
type Schema struct {
	Names []string
}

// Vector is a fixed-order numeric feature vector.
type Vector []float64

// Extract projects a parsed record onto schema: present numeric fields
// contribute their value, absent or non-numeric fields contribute 0.0.
// The result always has len(schema.Names) entries.
func Extract(rec models.ParsedRecord, schema Schema) Vector {
	vec := make(Vector, len(schema.Names))
	for i, name := range schema.Names {
		if v, ok := rec.NumericField(name); ok {
			vec[i] = v
		}
	}
	return vec
}

// DeriveSchema builds a deterministic schema from the union of numeric
// field names seen across a batch of parsed records, sorted for
// reproducibility across training runs.
func DeriveSchema(batch []models.ParsedRecord) Schema {
	seen := make(map[string]bool)
	for _, rec := range batch {
		for name, v := range rec.Fields {
			if v.IsNumeric() {
				seen[name] = true
			}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)

	return Schema{Names: names}
}

// ExtractBatch extracts a vector for every record in batch against
// schema, in input order.
func ExtractBatch(batch []models.ParsedRecord, schema Schema) []Vector {
	vectors := make([]Vector, len(batch))
	for i, rec := range batch {
		vectors[i] = Extract(rec, schema)
	}
	return vectors
}
