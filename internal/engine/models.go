package engine

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ProductSnapshot is the read-only view of one catalog item at generation
// time. The engine never mutates it.
type ProductSnapshot struct {
	ManageNumber     string      `json:"manageNumber"`
	Title            string      `json:"title"`
	Description      Description `json:"productDescription"`
	SalesDescription string      `json:"salesDescription"`
	IsHidden         bool        `json:"hideItem"`
}

// Description holds an item's two marketing bodies.
type Description struct {
	PC string `json:"pc"` // desktop item page body
	SP string `json:"sp"` // mobile body
}

// Window is a point campaign's applicability period, ISO-8601 with offset.
type Window struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// PointCampaignDef grants a point multiplier to a set of items.
type PointCampaignDef struct {
	PointRate int      `json:"point_rate" yaml:"point_rate"`
	Items     []string `json:"items" yaml:"items"`
}

// FeatureCampaignDef marks a set of items as part of the one active feature
// page. The code may be empty.
type FeatureCampaignDef struct {
	CampaignCode string   `json:"campaign_code" yaml:"campaign_code"`
	Items        []string `json:"items" yaml:"items"`
}

// CampaignConfig carries the template pairs for each category plus the point
// campaign window.
type CampaignConfig struct {
	PointTitleFormat   string `json:"point_title_format" yaml:"point_title_format"`
	PointHTMLFormat    string `json:"point_html_format" yaml:"point_html_format"`
	StartTime          string `json:"start_time" yaml:"start_time"`
	EndTime            string `json:"end_time" yaml:"end_time"`
	FeatureTitleFormat string `json:"feature_title_format" yaml:"feature_title_format"`
	FeatureHTMLFormat  string `json:"feature_html_format" yaml:"feature_html_format"`
	NoEventHTMLFormat  string `json:"no_event_html_format" yaml:"no_event_html_format"`
}

// Normalize guarantees every template carries its insertion slot. Body
// templates and the point title append it, the feature title prepends it:
// point and no-event banners trail existing content while a feature label
// leads the title.
func (c CampaignConfig) Normalize() CampaignConfig {
	titleSlot := slotMarker(FieldOriginalTitle)
	htmlSlot := slotMarker(FieldOriginalHTML)

	if !strings.Contains(c.PointTitleFormat, titleSlot) {
		c.PointTitleFormat += " " + titleSlot
	}
	if !strings.Contains(c.PointHTMLFormat, htmlSlot) {
		c.PointHTMLFormat += htmlSlot
	}
	if !strings.Contains(c.FeatureTitleFormat, titleSlot) {
		c.FeatureTitleFormat = titleSlot + c.FeatureTitleFormat
	}
	if !strings.Contains(c.FeatureHTMLFormat, htmlSlot) {
		c.FeatureHTMLFormat += htmlSlot
	}
	if c.NoEventHTMLFormat != "" && !strings.Contains(c.NoEventHTMLFormat, htmlSlot) {
		c.NoEventHTMLFormat += htmlSlot
	}
	return c
}

// Window returns the point campaign period, or nil when either bound is
// unset.
func (c CampaignConfig) Window() *Window {
	if c.StartTime == "" || c.EndTime == "" {
		return nil
	}
	return &Window{Start: c.StartTime, End: c.EndTime}
}

// Definitions is the campaign definitions document uploaded or downloaded by
// the back-office dashboard.
type Definitions struct {
	Config          CampaignConfig     `json:"config" yaml:"config"`
	PointCampaigns  []PointCampaignDef `json:"point_campaigns" yaml:"point_campaigns"`
	FeatureCampaign FeatureCampaignDef `json:"feature_campaign" yaml:"feature_campaign"`
}

// ParseDefinitions decodes a definitions document and normalizes its
// templates. Dashboard uploads are JSON; YAML is accepted for hand-written
// files.
func ParseDefinitions(data []byte) (Definitions, error) {
	var d Definitions
	if jerr := json.Unmarshal(data, &d); jerr != nil {
		if yerr := yaml.Unmarshal(data, &d); yerr != nil {
			return Definitions{}, fmt.Errorf("decode definitions: %w", jerr)
		}
	}
	d.Config = d.Config.Normalize()
	return d, nil
}
