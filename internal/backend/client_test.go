package backend_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/feastly/opsboard/internal/auth"
	"github.com/feastly/opsboard/internal/backend"
	"github.com/feastly/opsboard/internal/board/domain"
)

func TestListOrders(t *testing.T) {
	t.Run("decodes the backend order shape", func(t *testing.T) {
		var gotBody map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/orders_restaurant" {
				t.Errorf("path = %s, want /orders_restaurant", r.URL.Path)
			}
			if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
				t.Errorf("decode request: %v", err)
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"orders": [
					{
						"id": 11,
						"created_at": "2025-05-02T12:34:56Z",
						"total_price": 42.5,
						"status": 0,
						"users": {"id": 7, "email": "diner@example.com", "full_name": "Dana Diner"},
						"restaurant": {"id": "rest-1", "name": "The Culinary Spot", "address": "123 Foodie Lane", "phone_number": 1234567890},
						"order_items": [
							{"id": 1, "price": 21.25, "quantity": 2, "restaurant_items": {"id": 3, "name": "Margherita", "price": 21.25, "description": "Classic"}}
						]
					}
				]
			}`))
		}))
		defer server.Close()

		client := backend.NewClient(server.URL, time.Second)
		orders, err := client.ListOrders(context.Background(), "rest-1")
		if err != nil {
			t.Fatalf("ListOrders() error = %v", err)
		}

		if gotBody["restaurant_id"] != "rest-1" {
			t.Errorf("request restaurant_id = %v, want rest-1", gotBody["restaurant_id"])
		}
		if len(orders) != 1 {
			t.Fatalf("got %d orders, want 1", len(orders))
		}

		order := orders[0]
		if order.ID != 11 || order.Status != domain.StatusPending || order.TotalPrice != 42.5 {
			t.Errorf("unexpected order: %+v", order)
		}
		if order.Customer.FullName != "Dana Diner" {
			t.Errorf("customer = %+v", order.Customer)
		}
		if order.Restaurant.Name != "The Culinary Spot" || order.Restaurant.Address != "123 Foodie Lane" {
			t.Errorf("restaurant = %+v", order.Restaurant)
		}
		if len(order.Items) != 1 || order.Items[0].Product.Name != "Margherita" || order.Items[0].Quantity != 2 {
			t.Errorf("items = %+v", order.Items)
		}
		if order.CreatedAt.IsZero() {
			t.Error("created_at not parsed")
		}
	})

	t.Run("empty order array", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"orders": []}`))
		}))
		defer server.Close()

		client := backend.NewClient(server.URL, time.Second)
		orders, err := client.ListOrders(context.Background(), "rest-1")
		if err != nil {
			t.Fatalf("ListOrders() error = %v", err)
		}
		if len(orders) != 0 {
			t.Errorf("got %d orders, want 0", len(orders))
		}
	})

	t.Run("non-2xx is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := backend.NewClient(server.URL, time.Second)
		if _, err := client.ListOrders(context.Background(), "rest-1"); err == nil {
			t.Fatal("expected error for 500 response, got nil")
		}
	})

	t.Run("unparseable body is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		}))
		defer server.Close()

		client := backend.NewClient(server.URL, time.Second)
		if _, err := client.ListOrders(context.Background(), "rest-1"); err == nil {
			t.Fatal("expected error for invalid JSON, got nil")
		}
	})
}

func TestUpdateOrderStatus(t *testing.T) {
	t.Run("sends order id and numeric status", func(t *testing.T) {
		var gotBody map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/update_order_status" {
				t.Errorf("path = %s, want /update_order_status", r.URL.Path)
			}
			if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
				t.Errorf("decode request: %v", err)
			}
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := backend.NewClient(server.URL, time.Second)
		if err := client.UpdateOrderStatus(context.Background(), 11, domain.StatusCancelled); err != nil {
			t.Fatalf("UpdateOrderStatus() error = %v", err)
		}

		if gotBody["order_id"] != float64(11) {
			t.Errorf("order_id = %v, want 11", gotBody["order_id"])
		}
		if gotBody["status"] != float64(1) {
			t.Errorf("status = %v, want 1", gotBody["status"])
		}
	})

	t.Run("non-2xx is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		}))
		defer server.Close()

		client := backend.NewClient(server.URL, time.Second)
		err := client.UpdateOrderStatus(context.Background(), 11, domain.StatusCompleted)
		var statusErr *backend.StatusError
		if !errors.As(err, &statusErr) || statusErr.Code != http.StatusBadRequest {
			t.Fatalf("UpdateOrderStatus() error = %v, want StatusError 400", err)
		}
	})
}

func TestLogin(t *testing.T) {
	t.Run("returns the profile", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/login_restaurant" {
				t.Errorf("path = %s, want /login_restaurant", r.URL.Path)
			}
			_, _ = w.Write([]byte(`{"profile": {"id": 42, "email": "owner@example.com", "full_name": "Olive Owner", "rating": 4.5}}`))
		}))
		defer server.Close()

		client := backend.NewClient(server.URL, time.Second)
		profile, err := client.Login(context.Background(), "owner@example.com", "secret")
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		if profile.ID != "42" || profile.Rating != "4.5" || profile.FullName != "Olive Owner" {
			t.Errorf("profile = %+v", profile)
		}
	})

	t.Run("4xx maps to invalid credentials", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		client := backend.NewClient(server.URL, time.Second)
		if _, err := client.Login(context.Background(), "owner@example.com", "wrong"); !errors.Is(err, auth.ErrInvalidCredentials) {
			t.Fatalf("Login() error = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("5xx is not an auth failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		client := backend.NewClient(server.URL, time.Second)
		_, err := client.Login(context.Background(), "owner@example.com", "secret")
		if err == nil || errors.Is(err, auth.ErrInvalidCredentials) {
			t.Fatalf("Login() error = %v, want transport error", err)
		}
	})
}

func TestMonthlyOrdersAndRevenue(t *testing.T) {
	t.Run("decodes aggregate rows", func(t *testing.T) {
		var gotBody map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/get_orders_and_revenue_per_month" {
				t.Errorf("path = %s, want /get_orders_and_revenue_per_month", r.URL.Path)
			}
			if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
				t.Errorf("decode request: %v", err)
			}
			_, _ = w.Write([]byte(`{"data": [{"month": "2025-06", "order_count": 12, "total_revenue": 512.75}]}`))
		}))
		defer server.Close()

		client := backend.NewClient(server.URL, time.Second)
		rows, err := client.MonthlyOrdersAndRevenue(context.Background(), "rest-1")
		if err != nil {
			t.Fatalf("MonthlyOrdersAndRevenue() error = %v", err)
		}

		if gotBody["restaurant_id_param"] != "rest-1" {
			t.Errorf("restaurant_id_param = %v, want rest-1", gotBody["restaurant_id_param"])
		}
		if len(rows) != 1 || rows[0].Month != "2025-06" || rows[0].OrderCount != 12 || rows[0].TotalRevenue != 512.75 {
			t.Errorf("rows = %+v", rows)
		}
	})

	t.Run("empty data array is valid", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"data": []}`))
		}))
		defer server.Close()

		client := backend.NewClient(server.URL, time.Second)
		rows, err := client.MonthlyOrdersAndRevenue(context.Background(), "rest-1")
		if err != nil {
			t.Fatalf("MonthlyOrdersAndRevenue() error = %v", err)
		}
		if len(rows) != 0 {
			t.Errorf("rows = %+v, want empty", rows)
		}
	})
}
