package backend

import (
	"context"
	"time"

	"github.com/feastly/opsboard/internal/board/domain"
)

const (
	listOrdersPath   = "/orders_restaurant"
	updateStatusPath = "/update_order_status"
)

type listOrdersRequest struct {
	RestaurantID string `json:"restaurant_id"`
}

type listOrdersResponse struct {
	Orders []orderPayload `json:"orders"`
}

type orderPayload struct {
	ID         int64              `json:"id"`
	CreatedAt  time.Time          `json:"created_at"`
	TotalPrice float64            `json:"total_price"`
	Status     int                `json:"status"`
	Users      customerPayload    `json:"users"`
	Restaurant restaurantPayload  `json:"restaurant"`
	OrderItems []orderItemPayload `json:"order_items"`
}

type customerPayload struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

type restaurantPayload struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	PhoneNumber int64  `json:"phone_number"`
}

type orderItemPayload struct {
	ID              int64          `json:"id"`
	Price           float64        `json:"price"`
	Quantity        int            `json:"quantity"`
	RestaurantItems productPayload `json:"restaurant_items"`
}

type productPayload struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
}

type updateStatusRequest struct {
	OrderID int64 `json:"order_id"`
	Status  int   `json:"status"`
}

// ListOrders fetches the full order collection for one restaurant.
func (c *Client) ListOrders(ctx context.Context, restaurantID string) ([]domain.Order, error) {
	var response listOrdersResponse
	if err := c.postJSON(ctx, listOrdersPath, listOrdersRequest{RestaurantID: restaurantID}, &response); err != nil {
		return nil, err
	}

	orders := make([]domain.Order, 0, len(response.Orders))
	for _, payload := range response.Orders {
		orders = append(orders, payload.toDomain())
	}
	return orders, nil
}

// UpdateOrderStatus patches a single order's status. The response body is
// irrelevant; any 2xx counts as success.
func (c *Client) UpdateOrderStatus(ctx context.Context, orderID int64, status domain.Status) error {
	return c.postJSON(ctx, updateStatusPath, updateStatusRequest{OrderID: orderID, Status: int(status)}, nil)
}

func (p orderPayload) toDomain() domain.Order {
	items := make([]domain.OrderItem, 0, len(p.OrderItems))
	for _, item := range p.OrderItems {
		items = append(items, domain.OrderItem{
			ID:       item.ID,
			Price:    item.Price,
			Quantity: item.Quantity,
			Product: domain.Product{
				ID:          item.RestaurantItems.ID,
				Name:        item.RestaurantItems.Name,
				Price:       item.RestaurantItems.Price,
				Description: item.RestaurantItems.Description,
			},
		})
	}

	return domain.Order{
		ID:         p.ID,
		CreatedAt:  p.CreatedAt,
		TotalPrice: p.TotalPrice,
		Status:     domain.Status(p.Status),
		Customer: domain.Customer{
			ID:       p.Users.ID,
			Email:    p.Users.Email,
			FullName: p.Users.FullName,
		},
		Restaurant: domain.Restaurant{
			ID:          p.Restaurant.ID,
			Name:        p.Restaurant.Name,
			Address:     p.Restaurant.Address,
			PhoneNumber: p.Restaurant.PhoneNumber,
		},
		Items: items,
	}
}
