// Package tui renders the gig draft as an interactive terminal form.
package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/sudo-init-do/crafthub/internal/gig"
	"github.com/sudo-init-do/crafthub/internal/gigform"
)

// Values is the working copy the terminal fields are bound to.
type Values struct {
	Draft   gig.Draft
	Confirm bool
}

// NewDraftForm builds the "Create a New Gig" form. Each field writes into v.
func NewDraftForm(v *Values) *huh.Form {
	category := huh.NewSelect[string]().
		Key(gig.FieldCategory.String()).
		Title("Category").
		Options(categoryOptions()...).
		Validate(checkCategory).
		Value(&v.Draft.Category)

	basics := huh.NewGroup(
		huh.NewInput().
			Key(gig.FieldTitle.String()).
			Title("Gig Title").
			Placeholder("I will design a modern logo for your business").
			Validate(required("title")).
			Value(&v.Draft.Title),
		huh.NewText().
			Key(gig.FieldDescription.String()).
			Title("Description").
			Placeholder("Describe your service in detail...").
			Lines(5).
			Value(&v.Draft.Description),
		category,
	).Title("Basic Information")

	pricing := huh.NewGroup(
		huh.NewInput().
			Key(gig.FieldPricing.String()).
			Title("Price ($)").
			Placeholder("0.00").
			Validate(ValidatePricing).
			Value(&v.Draft.Pricing),
		huh.NewInput().
			Key(gig.FieldDeliveryTime.String()).
			Title("Delivery Time (days)").
			Placeholder("e.g. 3").
			Validate(minInt("delivery time", 1, true)).
			Value(&v.Draft.DeliveryTime),
		huh.NewInput().
			Key(gig.FieldRevisionCount.String()).
			Title("Number of Revisions").
			Placeholder("e.g. 2").
			Validate(minInt("revision count", 0, false)).
			Value(&v.Draft.RevisionCount),
	).Title("Pricing & Delivery")

	extra := huh.NewGroup(
		huh.NewInput().
			Key(gig.FieldTags.String()).
			Title("Tags").
			Description("Separate tags with commas (e.g. logo, branding, design)").
			Value(&v.Draft.Tags),
		huh.NewText().
			Key(gig.FieldRequirements.String()).
			Title("Requirements from Buyers").
			Placeholder("What information do you need from buyers to get started?").
			Lines(4).
			Value(&v.Draft.Requirements),
		huh.NewConfirm().
			Key("confirm").
			Title("Create this gig?").
			Affirmative("Create Gig").
			Negative("Cancel").
			Value(&v.Confirm),
	).Title("Additional Details")

	return huh.NewForm(basics, pricing, extra)
}

// Apply pushes every field that differs from the form's draft through
// Update, one field per call.
func Apply(f *gigform.Form, d gig.Draft) error {
	current := f.Draft()
	for _, field := range gig.Fields {
		v := d.Get(field)
		if current.Get(field) == v {
			continue
		}
		if err := f.Update(field, v); err != nil {
			return err
		}
	}
	return nil
}

// RenderState is the banner shown above the form.
func RenderState(st gig.State) string {
	switch s := st.(type) {
	case gig.Submitting:
		return "Creating..."
	case gig.Failed:
		return "✗ " + s.Message
	case gig.Succeeded:
		return "✓ Gig created successfully!"
	}
	return ""
}

func required(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(name + " is required")
		}
		return nil
	}
}

// categoryOptions leads with an unselected entry; a gig may be posted
// without a category.
func categoryOptions() []huh.Option[string] {
	opts := []huh.Option[string]{huh.NewOption("Select a category", "")}
	return append(opts, huh.NewOptions(gig.Categories...)...)
}

func checkCategory(s string) error {
	if s != "" && !gig.IsCategory(s) {
		return errors.New("select a category from the list")
	}
	return nil
}

// ValidatePricing mirrors the min=1 constraint of the price input.
func ValidatePricing(s string) error {
	if msg := gig.CheckPricing(s); msg != "" {
		return errors.New(msg)
	}
	return nil
}

func minInt(name string, min int, req bool) func(string) error {
	return func(s string) error {
		if msg := gig.CheckMinInt(s, min, req); msg != "" {
			return errors.New(name + " " + msg)
		}
		return nil
	}
}
