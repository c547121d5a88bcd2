package textwidth

import "testing"

func TestWidth(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{"empty", "", 0},
		{"ascii", "abc", 3},
		{"cjk", "商品", 4},
		{"mixed", "商品A", 5},
		{"fullwidth latin", "Ａ", 2},
		{"halfwidth katakana", "ｱ", 1},
		{"ambiguous", "×", 2},
		{"rate frame", "10倍 ", 5},
		{"brackets", "【送料無料】", 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Width(tt.in); got != tt.want {
				t.Fatalf("Width(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}
