package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// Stats summarizes one generation run.
type Stats struct {
	Total     int `json:"total"`
	Generated int `json:"generated"`
	Skipped   int `json:"skipped"`
}

// Flow runs one campaign payload generation pass: index the inputs, partition
// the visible catalog, pick templates per group and generate per item. All
// state is call-local, so one Flow value can serve concurrent runs.
type Flow struct {
	MaxTitleWidth int
}

// Execute returns the patch payload for every item touched by the
// definitions, keyed by manage number. Campaign ids missing from the catalog
// are skipped and counted, never fatal; the only error is a malformed point
// rate, which indicates broken campaign input.
func (f Flow) Execute(products []ProductSnapshot, defs Definitions) (map[string]Payload, Stats, error) {
	cfg := defs.Config

	// Index
	items := make(map[string]ProductSnapshot, len(products))
	for _, p := range products {
		if p.ManageNumber != "" {
			items[p.ManageNumber] = p
		}
	}

	rates := map[string]string{} // last write wins on malformed overlap
	pointIDs := IDSet{}
	for _, pc := range defs.PointCampaigns {
		for _, id := range pc.Items {
			rates[id] = strconv.Itoa(pc.PointRate)
			pointIDs.Add(id)
		}
	}
	codes := map[string]string{}
	featureIDs := IDSet{}
	for _, id := range defs.FeatureCampaign.Items {
		codes[id] = defs.FeatureCampaign.CampaignCode
		featureIDs.Add(id)
	}

	visible := IDSet{}
	for id, p := range items {
		if !p.IsHidden {
			visible.Add(id)
		}
	}

	// Partition
	cats := Categorize(visible, pointIDs, featureIDs)
	log.Debug().
		Int("both", len(cats.Both)).
		Int("point_only", len(cats.PointOnly)).
		Int("feature_only", len(cats.FeatureOnly)).
		Int("no_event", len(cats.NoEvent)).
		Msg("catalog partitioned")

	// Campaign ids with no catalog entry never reach a group; report them as
	// the skipped diagnostic count.
	var stats Stats
	for _, id := range pointIDs.Union(featureIDs).List() {
		if _, ok := items[id]; !ok {
			stats.Skipped++
		}
	}

	// Template selection per group
	window := cfg.Window()
	groups := []struct {
		ids    IDSet
		gen    PayloadGenerator
		fields func(id string) Fields
	}{
		{
			ids: cats.Both,
			gen: PayloadGenerator{
				TitleFormat:   mergeTitleFormats(cfg.PointTitleFormat, cfg.FeatureTitleFormat),
				HTMLFormat:    cfg.PointHTMLFormat, // feature body is discarded for both-group items
				Window:        window,
				MaxTitleWidth: f.MaxTitleWidth,
			},
			fields: func(id string) Fields {
				return Fields{FieldPointRate: rates[id], FieldCampaignCode: codes[id]}
			},
		},
		{
			ids: cats.PointOnly,
			gen: PayloadGenerator{
				TitleFormat:   cfg.PointTitleFormat,
				HTMLFormat:    cfg.PointHTMLFormat,
				Window:        window,
				MaxTitleWidth: f.MaxTitleWidth,
			},
			fields: func(id string) Fields { return Fields{FieldPointRate: rates[id]} },
		},
		{
			ids: cats.FeatureOnly,
			gen: PayloadGenerator{
				TitleFormat:   cfg.FeatureTitleFormat,
				HTMLFormat:    cfg.FeatureHTMLFormat,
				MaxTitleWidth: f.MaxTitleWidth,
			},
			fields: func(id string) Fields { return Fields{FieldCampaignCode: codes[id]} },
		},
		{
			// no-event items keep their title; only the banner body changes
			ids:    cats.NoEvent,
			gen:    PayloadGenerator{HTMLFormat: cfg.NoEventHTMLFormat},
			fields: func(string) Fields { return Fields{} },
		},
	}

	// Generate
	payloads := map[string]Payload{}
	for _, g := range groups {
		for _, id := range g.ids.List() {
			stats.Total++
			item, ok := items[id]
			if !ok {
				stats.Skipped++
				continue
			}
			p, err := g.gen.Generate(item, g.fields(id))
			if err != nil {
				return nil, stats, fmt.Errorf("generate %s: %w", id, err)
			}
			if p.IsEmpty() {
				continue
			}
			payloads[id] = p
			stats.Generated++
		}
	}

	return payloads, stats, nil
}

// mergeTitleFormats combines the point title's prefix with the feature
// title's suffix around a single slot, for items in both campaign kinds.
func mergeTitleFormats(pointFormat, featureFormat string) string {
	slot := slotMarker(FieldOriginalTitle)
	pointPrefix, _, _ := strings.Cut(pointFormat, slot)
	_, featureSuffix, _ := strings.Cut(featureFormat, slot)
	return pointPrefix + slot + featureSuffix
}
