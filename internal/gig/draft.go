package gig

import (
	"errors"
	"fmt"
)

// ErrUnknownField is returned when a field name does not match any draft field.
var ErrUnknownField = errors.New("unknown gig field")

// Field identifies one editable input of the gig form.
type Field int

const (
	FieldTitle Field = iota
	FieldDescription
	FieldCategory
	FieldPricing
	FieldDeliveryTime
	FieldRevisionCount
	FieldTags
	FieldRequirements
)

// Fields lists every draft field in form order.
var Fields = []Field{
	FieldTitle,
	FieldDescription,
	FieldCategory,
	FieldPricing,
	FieldDeliveryTime,
	FieldRevisionCount,
	FieldTags,
	FieldRequirements,
}

var fieldNames = map[Field]string{
	FieldTitle:         "title",
	FieldDescription:   "description",
	FieldCategory:      "category",
	FieldPricing:       "pricing",
	FieldDeliveryTime:  "deliveryTime",
	FieldRevisionCount: "revisionCount",
	FieldTags:          "tags",
	FieldRequirements:  "requirements",
}

// String returns the wire name of the field.
func (f Field) String() string {
	if name, ok := fieldNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Field(%d)", int(f))
}

// MarshalText encodes the field by its wire name.
func (f Field) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// ParseField maps a wire name such as "deliveryTime" to its Field.
func ParseField(name string) (Field, error) {
	for f, n := range fieldNames {
		if n == name {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownField, name)
}

// Draft is the unsaved gig being authored. Every value is kept as the raw
// text the user typed; coercion happens in BuildPayload.
type Draft struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	Category      string `json:"category"`
	Pricing       string `json:"pricing"`
	DeliveryTime  string `json:"deliveryTime"`
	RevisionCount string `json:"revisionCount"`
	Tags          string `json:"tags"`
	Requirements  string `json:"requirements"`
}

// EmptyDraft returns the draft a fresh form starts from.
func EmptyDraft() Draft {
	return Draft{}
}

// IsEmpty reports whether every field is blank.
func (d Draft) IsEmpty() bool {
	return d == Draft{}
}

// With returns a copy of d with one field replaced.
func (d Draft) With(field Field, value string) (Draft, error) {
	switch field {
	case FieldTitle:
		d.Title = value
	case FieldDescription:
		d.Description = value
	case FieldCategory:
		d.Category = value
	case FieldPricing:
		d.Pricing = value
	case FieldDeliveryTime:
		d.DeliveryTime = value
	case FieldRevisionCount:
		d.RevisionCount = value
	case FieldTags:
		d.Tags = value
	case FieldRequirements:
		d.Requirements = value
	default:
		return d, fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	return d, nil
}

// Get returns the raw value of one field.
func (d Draft) Get(field Field) string {
	switch field {
	case FieldTitle:
		return d.Title
	case FieldDescription:
		return d.Description
	case FieldCategory:
		return d.Category
	case FieldPricing:
		return d.Pricing
	case FieldDeliveryTime:
		return d.DeliveryTime
	case FieldRevisionCount:
		return d.RevisionCount
	case FieldTags:
		return d.Tags
	case FieldRequirements:
		return d.Requirements
	}
	return ""
}
