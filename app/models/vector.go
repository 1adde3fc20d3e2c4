package models

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"
)

// Vector maps onto a pgvector column. The image embedding column is declared
// with 1408 dimensions (Gemini multimodal embeddings) but stays NULL until an
// enrichment job populates it.
type Vector []float32

func (Vector) GormDataType() string {
	return "vector(1408)"
}

// Value renders the vector in pgvector text format, e.g. "[1,2,3]".
// An empty vector is stored as NULL.
func (v Vector) Value() (driver.Value, error) {
	if len(v) == 0 {
		return nil, nil
	}
	parts := make([]string, len(v))
	for i, f := range v {
		parts[i] = strconv.FormatFloat(float64(f), 'f', -1, 32)
	}
	return "[" + strings.Join(parts, ",") + "]", nil
}

func (v *Vector) Scan(src interface{}) error {
	if src == nil {
		*v = nil
		return nil
	}
	var raw string
	switch s := src.(type) {
	case string:
		raw = s
	case []byte:
		raw = string(s)
	default:
		return fmt.Errorf("cannot scan %T into Vector", src)
	}
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "[") || !strings.HasSuffix(raw, "]") {
		return fmt.Errorf("malformed vector literal %q", raw)
	}
	raw = strings.Trim(raw, "[]")
	if raw == "" {
		*v = Vector{}
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make(Vector, len(parts))
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return fmt.Errorf("malformed vector element %q: %w", p, err)
		}
		out[i] = float32(f)
	}
	*v = out
	return nil
}
