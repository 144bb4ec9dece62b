package backend

import (
	"context"

	"github.com/feastly/opsboard/internal/analytics"
)

const monthlyAggregatesPath = "/get_orders_and_revenue_per_month"

type monthlyAggregatesRequest struct {
	RestaurantIDParam string `json:"restaurant_id_param"`
}

type monthlyAggregatesResponse struct {
	Data []analytics.Row `json:"data"`
}

// MonthlyOrdersAndRevenue fetches per-month order counts and revenue for one
// restaurant. An empty data array is a valid response, not an error.
func (c *Client) MonthlyOrdersAndRevenue(ctx context.Context, restaurantID string) ([]analytics.Row, error) {
	var response monthlyAggregatesResponse
	if err := c.postJSON(ctx, monthlyAggregatesPath, monthlyAggregatesRequest{RestaurantIDParam: restaurantID}, &response); err != nil {
		return nil, err
	}
	return response.Data, nil
}
