package gig

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Validation collects per-field problems found in a draft.
type Validation struct {
	Errors map[Field]string `json:"errors"`
}

func (v *Validation) add(f Field, format string, args ...any) {
	if v.Errors == nil {
		v.Errors = make(map[Field]string)
	}
	if _, exists := v.Errors[f]; exists {
		return
	}
	v.Errors[f] = fmt.Sprintf(format, args...)
}

func (v Validation) OK() bool { return len(v.Errors) == 0 }

// Error joins the messages in form order.
func (v Validation) Error() string {
	var msgs []string
	for _, f := range Fields {
		if msg, ok := v.Errors[f]; ok {
			msgs = append(msgs, msg)
		}
	}
	return strings.Join(msgs, "; ")
}

// Validate applies the input constraints of the form: required fields,
// numeric minimums and the category set. Category may be left unselected.
// Tags and free text are not checked.
func (d Draft) Validate() Validation {
	var res Validation

	if strings.TrimSpace(d.Title) == "" {
		res.add(FieldTitle, "title is required")
	}
	if d.Category != "" && !IsCategory(d.Category) {
		res.add(FieldCategory, "category %q is not one of the available categories", d.Category)
	}
	if msg := CheckPricing(d.Pricing); msg != "" {
		res.add(FieldPricing, "%s", msg)
	}
	if msg := CheckMinInt(d.DeliveryTime, 1, true); msg != "" {
		res.add(FieldDeliveryTime, "delivery time %s", msg)
	}
	if msg := CheckMinInt(d.RevisionCount, 0, false); msg != "" {
		res.add(FieldRevisionCount, "revision count %s", msg)
	}
	return res
}

// CheckPricing returns a message when raw is not a price of at least 1.
func CheckPricing(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "pricing is required"
	}
	p, err := strconv.ParseFloat(raw, 64)
	if err != nil || !isDecimal(raw) || math.IsNaN(p) || math.IsInf(p, 0) {
		return "pricing must be a number"
	}
	if p < 1 {
		return "pricing must be at least 1"
	}
	return ""
}

// CheckMinInt returns a message when raw is not a whole number >= min.
// Blank input is accepted unless required is set.
func CheckMinInt(raw string, min int, required bool) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		if required {
			return "is required"
		}
		return ""
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return "must be a whole number"
	}
	if n < min {
		return fmt.Sprintf("must be at least %d", min)
	}
	return ""
}

// isDecimal rejects the spellings ParseFloat takes that a number input does
// not: NaN, Inf, Infinity and hex floats.
func isDecimal(raw string) bool {
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9', r == '.', r == 'e', r == 'E', r == '+', r == '-':
		default:
			return false
		}
	}
	return true
}
