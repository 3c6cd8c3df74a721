// Package schemadoc validates built entity documents against structural
// schemas before they are persisted.
//
// A schema names the collection root the entity lives under, the required
// elements of the entity document, and the shape of nested elements. The
// validator reports at most MaxIssues issues, each with the element path
// that failed — the document-store analog of the line/column a text schema
// validator would give. A structural failure always blocks persistence,
// even when per-field business validation passed.
package schemadoc

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// MaxIssues bounds how many structural problems one validation reports.
const MaxIssues = 5

// Field describes one element of an entity document. Children is non-nil
// for elements that must themselves be documents (e.g. a User's Address).
type Field struct {
	Name     string
	Children *Schema
}

// Schema is the structural shape of one entity type.
type Schema struct {
	Root     string   // collection root element, e.g. "Users"
	Element  string   // entity element, e.g. "User"
	Required []Field  // elements that must be present
	Optional []string // elements tolerated but not required
}

// Issue is one structural validation failure.
type Issue struct {
	Path    string // e.g. "Users.User.address.city"
	Message string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s (at %s)", i.Message, i.Path)
}

// Validate marshals doc into its bson form and checks it against s,
// returning nil when the document conforms. The document is addressed as
// if wrapped in its collection root, so paths read Root.Element.field.
func Validate(doc any, s Schema) []Issue {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return []Issue{{
			Path:    s.Root + "." + s.Element,
			Message: "document cannot be encoded: " + err.Error(),
		}}
	}
	issues := checkDocument(bson.Raw(raw), s, s.Root+"."+s.Element, nil)
	if len(issues) > MaxIssues {
		issues = issues[:MaxIssues]
	}
	return issues
}

func checkDocument(raw bson.Raw, s Schema, path string, issues []Issue) []Issue {
	elements, err := raw.Elements()
	if err != nil {
		return append(issues, Issue{Path: path, Message: "malformed document: " + err.Error()})
	}

	present := make(map[string]bson.RawValue, len(elements))
	for _, el := range elements {
		present[el.Key()] = el.Value()
	}

	allowed := make(map[string]bool, len(s.Required)+len(s.Optional))
	for _, f := range s.Required {
		allowed[f.Name] = true
	}
	for _, name := range s.Optional {
		allowed[name] = true
	}

	// Required elements first, in schema order, so the first reported
	// issue is deterministic.
	for _, f := range s.Required {
		if len(issues) >= MaxIssues {
			return issues
		}
		val, ok := present[f.Name]
		if !ok {
			issues = append(issues, Issue{
				Path:    path + "." + f.Name,
				Message: "missing required element " + f.Name,
			})
			continue
		}
		if f.Children != nil {
			if val.Type != bsontype.EmbeddedDocument {
				issues = append(issues, Issue{
					Path:    path + "." + f.Name,
					Message: f.Name + " must be a nested document",
				})
				continue
			}
			issues = checkDocument(val.Document(), *f.Children, path+"."+f.Name, issues)
		}
	}

	// Then unexpected elements, in document order.
	for _, el := range elements {
		if len(issues) >= MaxIssues {
			return issues
		}
		if !allowed[el.Key()] {
			issues = append(issues, Issue{
				Path:    path + "." + el.Key(),
				Message: "unexpected element " + el.Key(),
			})
		}
	}

	return issues
}
