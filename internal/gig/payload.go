package gig

import (
	"strconv"
	"strings"
	"unicode"
)

// Payload is the request body accepted by POST /api/v1/gig/.
type Payload struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Category      string   `json:"category"`
	Pricing       string   `json:"pricing"`
	DeliveryTime  int      `json:"deliveryTime"`
	RevisionCount int      `json:"revisionCount"`
	Tags          []string `json:"tags"`
	Requirements  string   `json:"requirements"`
}

// BuildPayload coerces a draft into its wire shape. Text fields pass through
// unchanged; tags are split on commas and the integer fields are parsed
// leniently, falling back to 0.
func BuildPayload(d Draft) Payload {
	return Payload{
		Title:         d.Title,
		Description:   d.Description,
		Category:      d.Category,
		Pricing:       d.Pricing,
		DeliveryTime:  parseLeadingInt(d.DeliveryTime),
		RevisionCount: parseLeadingInt(d.RevisionCount),
		Tags:          SplitTags(d.Tags),
		Requirements:  d.Requirements,
	}
}

// SplitTags splits a comma separated list and trims every piece.
// Empty input yields an empty, non-nil slice so it encodes as [].
func SplitTags(raw string) []string {
	if raw == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// parseLeadingInt reads an optionally signed run of decimal digits after any
// leading whitespace and ignores whatever follows, so "5 days" is 5.
// Input without digits, or out of range, yields 0.
func parseLeadingInt(s string) int {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}
