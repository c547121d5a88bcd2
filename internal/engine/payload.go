package engine

import (
	"fmt"
	"strconv"
)

// Payload is the partial-update document for one item. Unset fields are
// omitted from the JSON so the marketplace PATCH only touches what changed.
type Payload struct {
	Title              string         `json:"title,omitempty"`
	ProductDescription *MobileBody    `json:"productDescription,omitempty"`
	SalesDescription   string         `json:"salesDescription,omitempty"`
	PointCampaign      *PointCampaign `json:"pointCampaign,omitempty"`
}

// MobileBody wraps the mobile description for the nested PATCH shape.
type MobileBody struct {
	SP string `json:"sp"`
}

// PointCampaign is the point multiplier block of an item update.
type PointCampaign struct {
	ApplicablePeriod Window   `json:"applicablePeriod"`
	Benefits         Benefits `json:"benefits"`
}

// Benefits holds the point multiplier.
type Benefits struct {
	PointRate int `json:"pointRate"`
}

// IsEmpty reports whether the payload would patch nothing.
func (p Payload) IsEmpty() bool {
	return p.Title == "" && p.ProductDescription == nil &&
		p.SalesDescription == "" && p.PointCampaign == nil
}

// PayloadGenerator builds the patch payload for one item under one set of
// active templates. A zero generator produces empty payloads.
type PayloadGenerator struct {
	TitleFormat   string
	HTMLFormat    string
	Window        *Window
	MaxTitleWidth int
}

// Generate computes the new field values for item. The title goes through the
// width-trimming composer; the two bodies get the HTML template applied
// independently since one may already carry the banner while the other does
// not. The point block is emitted only when a window is configured and fields
// carries a rate; a non-numeric rate is a configuration error.
func (g PayloadGenerator) Generate(item ProductSnapshot, fields Fields) (Payload, error) {
	var p Payload

	if g.TitleFormat != "" {
		composer := TitleComposer{Format: g.TitleFormat, MaxWidth: g.MaxTitleWidth}
		p.Title = applyTemplate(item.Title, g.TitleFormat, FieldOriginalTitle, fields, composer.Compose)
	}

	if g.HTMLFormat != "" {
		sp := applyTemplate(item.Description.SP, g.HTMLFormat, FieldOriginalHTML, fields, nil)
		p.ProductDescription = &MobileBody{SP: sp}
		p.SalesDescription = applyTemplate(item.SalesDescription, g.HTMLFormat, FieldOriginalHTML, fields, nil)
	}

	if g.Window != nil {
		if raw, ok := fields[FieldPointRate]; ok {
			rate, err := strconv.Atoi(raw)
			if err != nil {
				return Payload{}, fmt.Errorf("point rate %q is not numeric: %w", raw, err)
			}
			p.PointCampaign = &PointCampaign{
				ApplicablePeriod: *g.Window,
				Benefits:         Benefits{PointRate: rate},
			}
		}
	}

	return p, nil
}
