package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testItem() ProductSnapshot {
	return ProductSnapshot{
		ManageNumber:     "shop-001",
		Title:            "商品A",
		Description:      Description{SP: "SP本文", PC: "PC本文"},
		SalesDescription: "販売説明文",
	}
}

func TestPayloadGenerator_Generate(t *testing.T) {
	window := &Window{Start: "2025-10-24T20:00:00+09:00", End: "2025-10-27T09:59:59+09:00"}

	g := PayloadGenerator{
		TitleFormat: "{point_rate}倍 {original_title}",
		HTMLFormat:  "<img src=x/>{original_html}",
		Window:      window,
	}

	p, err := g.Generate(testItem(), Fields{FieldPointRate: "10"})
	require.NoError(t, err)

	assert.Equal(t, "10倍 商品A", p.Title)
	require.NotNil(t, p.ProductDescription)
	assert.Equal(t, "<img src=x/>SP本文", p.ProductDescription.SP)
	assert.Equal(t, "<img src=x/>販売説明文", p.SalesDescription)
	require.NotNil(t, p.PointCampaign)
	assert.Equal(t, *window, p.PointCampaign.ApplicablePeriod)
	assert.Equal(t, 10, p.PointCampaign.Benefits.PointRate)
}

func TestPayloadGenerator_BodiesDiverge(t *testing.T) {
	// the mobile body already carries the banner, the desktop one does not
	item := testItem()
	item.Description.SP = "<img src=x/>OLD"
	item.SalesDescription = "OLD"

	g := PayloadGenerator{HTMLFormat: "<img src=x/>{original_html}"}
	p, err := g.Generate(item, nil)
	require.NoError(t, err)

	assert.Equal(t, "<img src=x/>OLD", p.ProductDescription.SP)
	assert.Equal(t, "<img src=x/>OLD", p.SalesDescription)
	assert.Empty(t, p.Title)
	assert.Nil(t, p.PointCampaign)
}

func TestPayloadGenerator_NoTemplates(t *testing.T) {
	p, err := PayloadGenerator{}.Generate(testItem(), nil)
	require.NoError(t, err)
	assert.True(t, p.IsEmpty())
}

func TestPayloadGenerator_PointBlock(t *testing.T) {
	window := &Window{Start: "s", End: "e"}

	t.Run("window without rate emits no block", func(t *testing.T) {
		p, err := PayloadGenerator{Window: window}.Generate(testItem(), Fields{FieldCampaignCode: "SALE"})
		require.NoError(t, err)
		assert.Nil(t, p.PointCampaign)
	})

	t.Run("rate without window emits no block", func(t *testing.T) {
		p, err := PayloadGenerator{}.Generate(testItem(), Fields{FieldPointRate: "5"})
		require.NoError(t, err)
		assert.Nil(t, p.PointCampaign)
	})

	t.Run("non-numeric rate is a configuration error", func(t *testing.T) {
		_, err := PayloadGenerator{Window: window}.Generate(testItem(), Fields{FieldPointRate: "ten"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not numeric")
	})
}

func TestPayloadGenerator_TitleWidthLimit(t *testing.T) {
	g := PayloadGenerator{
		TitleFormat:   "{point_rate}倍 {original_title}",
		MaxTitleWidth: 6,
	}
	p, err := g.Generate(testItem(), Fields{FieldPointRate: "10"})
	require.NoError(t, err)
	assert.Equal(t, "10倍 ", p.Title)
}
