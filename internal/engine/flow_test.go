package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDefinitions() Definitions {
	return Definitions{
		Config: CampaignConfig{
			PointTitleFormat:   "SS{point_rate}倍",
			PointHTMLFormat:    "<p>",
			StartTime:          "2025-10-24T20:00:00+09:00",
			EndTime:            "2025-10-27T09:59:59+09:00",
			FeatureTitleFormat: "【{campaign_code}】",
			FeatureHTMLFormat:  "<f>",
		}.Normalize(),
		PointCampaigns: []PointCampaignDef{
			{PointRate: 5, Items: []string{"p1", "p2", "p5"}},
		},
		FeatureCampaign: FeatureCampaignDef{
			CampaignCode: "mr24",
			Items:        []string{"p2", "p3", "p6"},
		},
	}
}

func testCatalog() []ProductSnapshot {
	return []ProductSnapshot{
		{ManageNumber: "p1", Title: "商品A", Description: Description{SP: "SPA"}, SalesDescription: "SALESA"},
		{ManageNumber: "p2", Title: "商品B", Description: Description{SP: "SPB"}, SalesDescription: "SALESB"},
		{ManageNumber: "p3", Title: "商品C", Description: Description{SP: "SPC"}, SalesDescription: "SALESC"},
		{ManageNumber: "p4", Title: "商品D", Description: Description{SP: "SPD"}, SalesDescription: "SALESD"},
		{ManageNumber: "p5", Title: "隠し商品", IsHidden: true},
	}
}

func TestFlow_Execute(t *testing.T) {
	payloads, stats, err := Flow{}.Execute(testCatalog(), testDefinitions())
	require.NoError(t, err)

	// p4 has no event and no no-event template; p5 is hidden; p6 is not in
	// the catalog
	require.Len(t, payloads, 3)

	p1 := payloads["p1"]
	assert.Equal(t, "SS5倍 商品A", p1.Title)
	require.NotNil(t, p1.ProductDescription)
	assert.Equal(t, "<p>SPA", p1.ProductDescription.SP)
	assert.Equal(t, "<p>SALESA", p1.SalesDescription)
	require.NotNil(t, p1.PointCampaign)
	assert.Equal(t, 5, p1.PointCampaign.Benefits.PointRate)
	assert.Equal(t, "2025-10-24T20:00:00+09:00", p1.PointCampaign.ApplicablePeriod.Start)

	// both-group: merged title, point body, point block
	p2 := payloads["p2"]
	assert.Equal(t, "SS5倍 商品B【mr24】", p2.Title)
	assert.Equal(t, "<p>SPB", p2.ProductDescription.SP)
	require.NotNil(t, p2.PointCampaign)

	// feature-only: feature templates, no point block
	p3 := payloads["p3"]
	assert.Equal(t, "商品C【mr24】", p3.Title)
	assert.Equal(t, "<f>SPC", p3.ProductDescription.SP)
	assert.Nil(t, p3.PointCampaign)

	assert.Equal(t, Stats{Total: 4, Generated: 3, Skipped: 1}, stats)
}

func TestFlow_RerunIsIdempotent(t *testing.T) {
	defs := testDefinitions()
	first, _, err := Flow{}.Execute(testCatalog(), defs)
	require.NoError(t, err)

	// pretend the marketplace was updated and mirrored back
	updated := testCatalog()
	for i, item := range updated {
		p, ok := first[item.ManageNumber]
		if !ok {
			continue
		}
		if p.Title != "" {
			updated[i].Title = p.Title
		}
		if p.ProductDescription != nil {
			updated[i].Description.SP = p.ProductDescription.SP
		}
		if p.SalesDescription != "" {
			updated[i].SalesDescription = p.SalesDescription
		}
	}

	second, _, err := Flow{}.Execute(updated, defs)
	require.NoError(t, err)

	for id, want := range first {
		assert.Equal(t, want, second[id], "payload for %s changed on rerun", id)
	}
}

func TestFlow_NoEventTemplate(t *testing.T) {
	defs := testDefinitions()
	defs.Config.NoEventHTMLFormat = "<n>{original_html}"

	payloads, stats, err := Flow{}.Execute(testCatalog(), defs)
	require.NoError(t, err)

	// p4 now gets a body-only payload, title untouched
	p4, ok := payloads["p4"]
	require.True(t, ok)
	assert.Empty(t, p4.Title)
	assert.Equal(t, "<n>SPD", p4.ProductDescription.SP)
	assert.Equal(t, "<n>SALESD", p4.SalesDescription)
	assert.Nil(t, p4.PointCampaign)
	assert.Equal(t, 4, stats.Generated)
}

func TestFlow_DuplicatePointIDLastWriteWins(t *testing.T) {
	defs := testDefinitions()
	defs.PointCampaigns = []PointCampaignDef{
		{PointRate: 3, Items: []string{"p1"}},
		{PointRate: 7, Items: []string{"p1"}},
	}
	defs.FeatureCampaign = FeatureCampaignDef{}

	payloads, _, err := Flow{}.Execute(testCatalog(), defs)
	require.NoError(t, err)

	require.NotNil(t, payloads["p1"].PointCampaign)
	assert.Equal(t, 7, payloads["p1"].PointCampaign.Benefits.PointRate)
}

func TestFlow_EmptyInputs(t *testing.T) {
	payloads, stats, err := Flow{}.Execute(nil, Definitions{Config: CampaignConfig{}.Normalize()})
	require.NoError(t, err)
	assert.Empty(t, payloads)
	assert.Equal(t, Stats{}, stats)
}
