// Package records reshapes store documents into the flat field maps the
// presentation boundary consumes.
//
// Monetary fields recognized by name come out as exact decimals; secret
// elements (password hashes, CVVs) and store bookkeeping (_id) are dropped;
// one level of nesting (a User's Address) flattens into a nested map, and
// anything deeper is left as-is. A stored value that fails to parse as a
// decimal is logged and degrades to its raw string — a malformed field
// never fails the whole read.
package records

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/shopspring/decimal"
)

// decimalFields are the element names whose values are exact decimals.
var decimalFields = map[string]bool{
	"balance":           true,
	"amount":            true,
	"interest_rate":     true,
	"salary":            true,
	"loan_amount":       true,
	"total_balance":     true,
	"total_loan_amount": true,
	"total":             true,
	"average":           true,
	"max":               true,
	"min":               true,
}

// redacted elements never reach the presentation boundary.
var redacted = map[string]bool{
	"_id":           true,
	"password_hash": true,
	"cvv":           true,
}

// FromDocument converts one decoded store document into a flat field map.
func FromDocument(doc bson.M, log *zap.Logger) map[string]any {
	out := make(map[string]any, len(doc))
	for key, val := range doc {
		if redacted[key] {
			continue
		}
		out[key] = convert(key, val, true, log)
	}
	return out
}

// FromDocuments converts a list of store documents.
func FromDocuments(docs []bson.M, log *zap.Logger) []map[string]any {
	out := make([]map[string]any, 0, len(docs))
	for _, doc := range docs {
		out = append(out, FromDocument(doc, log))
	}
	return out
}

// FromEntity converts a typed model value through its bson form, so the
// presentation shape always matches what the store holds.
func FromEntity(entity any, log *zap.Logger) (map[string]any, error) {
	raw, err := bson.Marshal(entity)
	if err != nil {
		return nil, err
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return FromDocument(doc, log), nil
}

func convert(key string, val any, descend bool, log *zap.Logger) any {
	switch v := val.(type) {
	case primitive.Decimal128:
		d, err := decimal.NewFromString(v.String())
		if err != nil {
			if log != nil {
				log.Warn("stored decimal failed to parse, returning raw string",
					zap.String("field", key), zap.String("value", v.String()), zap.Error(err))
			}
			return v.String()
		}
		return d
	case string:
		if decimalFields[key] {
			d, err := decimal.NewFromString(v)
			if err != nil {
				if log != nil {
					log.Warn("stored decimal failed to parse, returning raw string",
						zap.String("field", key), zap.String("value", v), zap.Error(err))
				}
				return v
			}
			return d
		}
		return v
	case primitive.DateTime:
		return v.Time().UTC()
	case bson.M:
		if !descend {
			return v
		}
		nested := make(map[string]any, len(v))
		for k, nv := range v {
			if redacted[k] {
				continue
			}
			// one level only: deeper structures stay as decoded
			nested[k] = convert(k, nv, false, log)
		}
		return nested
	default:
		return val
	}
}
