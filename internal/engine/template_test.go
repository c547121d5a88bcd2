package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyTemplate(t *testing.T) {
	tests := []struct {
		name    string
		current string
		format  string
		slot    string
		fields  Fields
		want    string
	}{
		{
			name:    "empty format is a passthrough",
			current: "OLD",
			format:  "",
			slot:    FieldOriginalHTML,
			want:    "OLD",
		},
		{
			name:    "plain substitution",
			current: "OLD",
			format:  "<img src=x/>{original_html}",
			slot:    FieldOriginalHTML,
			want:    "<img src=x/>OLD",
		},
		{
			name:    "already wrapped value is untouched",
			current: "<img src=x/>OLD",
			format:  "<img src=x/>{original_html}",
			slot:    FieldOriginalHTML,
			want:    "<img src=x/>OLD",
		},
		{
			name:    "prefix renders fields before the check",
			current: "10倍 商品A",
			format:  "{point_rate}倍 {original_title}",
			slot:    FieldOriginalTitle,
			fields:  Fields{FieldPointRate: "10"},
			want:    "10倍 商品A",
		},
		{
			name:    "suffix-only template applies once",
			current: "商品A",
			format:  "{original_title}【SALE】",
			slot:    FieldOriginalTitle,
			want:    "商品A【SALE】",
		},
		{
			name:    "suffix-only template detects prior application",
			current: "商品A【SALE】",
			format:  "{original_title}【SALE】",
			slot:    FieldOriginalTitle,
			want:    "商品A【SALE】",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := applyTemplate(tt.current, tt.format, tt.slot, tt.fields, nil)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApplyTemplate_Idempotence(t *testing.T) {
	format := "<a href=y>banner</a>{original_html}"
	once := applyTemplate("content", format, FieldOriginalHTML, nil, nil)
	twice := applyTemplate(once, format, FieldOriginalHTML, nil, nil)
	assert.Equal(t, once, twice)
}

func TestApplyTemplate_MarkerInContentKeptVerbatim(t *testing.T) {
	// a field marker typed into the product body must not be substituted
	got := applyTemplate(
		"<p>today: {campaign_code}!</p>",
		"<img src=b/>{original_html}",
		FieldOriginalHTML,
		Fields{FieldCampaignCode: "mr24"},
		nil,
	)
	assert.Equal(t, "<img src=b/><p>today: {campaign_code}!</p>", got)
}

func TestApplyTemplate_TransformUsedWhenNotApplied(t *testing.T) {
	transform := func(current string, _ Fields) string { return "T:" + current }

	got := applyTemplate("title", "prefix {original_title}", FieldOriginalTitle, nil, transform)
	assert.Equal(t, "T:title", got)

	// an already-applied value must bypass the transform
	got = applyTemplate("prefix something", "prefix {original_title}", FieldOriginalTitle, nil, transform)
	assert.Equal(t, "prefix something", got)
}
