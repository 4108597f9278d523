package domain_test

import (
	"testing"

	"github.com/happyshop/happyshop/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckShortages(t *testing.T) {
	stock := map[string]domain.Product{
		"0001": {ID: "0001", Description: "TV", StockQuantity: 2},
		"0002": {ID: "0002", Description: "Radio", StockQuantity: 10},
		"0003": {ID: "0003", Description: "Toaster", StockQuantity: 0},
	}

	tests := []struct {
		name string
		req  domain.GroupedRequest
		want []domain.Shortage
	}{
		{
			name: "all sufficient",
			req: domain.NewGroupedRequest(
				domain.RequestItem{ProductID: "0001", Quantity: 2},
				domain.RequestItem{ProductID: "0002", Quantity: 10},
			),
			want: nil,
		},
		{
			name: "one short",
			req:  domain.NewGroupedRequest(domain.RequestItem{ProductID: "0001", Quantity: 5}),
			want: []domain.Shortage{{ProductID: "0001", Description: "TV", Available: 2, Requested: 5}},
		},
		{
			name: "several short in request order",
			req: domain.NewGroupedRequest(
				domain.RequestItem{ProductID: "0003", Quantity: 1},
				domain.RequestItem{ProductID: "0002", Quantity: 1},
				domain.RequestItem{ProductID: "0001", Quantity: 3},
			),
			want: []domain.Shortage{
				{ProductID: "0001", Description: "TV", Available: 2, Requested: 3},
				{ProductID: "0003", Description: "Toaster", Available: 0, Requested: 1},
			},
		},
		{
			name: "unknown product counts as zero stock",
			req:  domain.NewGroupedRequest(domain.RequestItem{ProductID: "9999", Quantity: 1}),
			want: []domain.Shortage{{ProductID: "9999", Available: 0, Requested: 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.CheckShortages(tt.req, stock))
		})
	}
}

func TestShortage_String(t *testing.T) {
	s := domain.Shortage{ProductID: "0001", Description: "TV", Available: 2, Requested: 5}
	assert.Equal(t, "• 0001, TV (Only 2 available, 5 requested)", s.String())
}

func TestShortageMessage(t *testing.T) {
	msg := domain.ShortageMessage([]domain.Shortage{
		{ProductID: "0001", Description: "TV", Available: 2, Requested: 5},
		{ProductID: "0004", Description: "Camera", Available: 0, Requested: 1},
	})
	require.Contains(t, msg, "Checkout failed due to insufficient stock")
	assert.Contains(t, msg, "• 0001, TV (Only 2 available, 5 requested)\n")
	assert.Contains(t, msg, "• 0004, Camera (Only 0 available, 1 requested)\n")
}
