package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"GlowMart/internal/catalog"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name  string
		lines []Line
		want  Summary
	}{
		{
			name:  "empty cart has no fee",
			lines: nil,
			want:  Summary{},
		},
		{
			name:  "below threshold pays delivery",
			lines: []Line{{Product: serum, Quantity: 1}},
			want: Summary{
				ItemCount: 1, Subtotal: 599, OriginalTotal: 699, Savings: 100,
				DeliveryFee: 99, Total: 698, FreeDeliveryGap: 401,
			},
		},
		{
			name:  "exactly at threshold still pays",
			lines: []Line{{Product: catalog.Product{ID: "x", Price: 999}, Quantity: 1}},
			want: Summary{
				ItemCount: 1, Subtotal: 999, OriginalTotal: 999,
				DeliveryFee: 99, Total: 1098, FreeDeliveryGap: 1,
			},
		},
		{
			name:  "above threshold ships free",
			lines: []Line{{Product: serum, Quantity: 2}},
			want: Summary{
				ItemCount: 2, Subtotal: 1198, OriginalTotal: 1398, Savings: 200,
				Total: 1198,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, summarize(tt.lines))
		})
	}
}
