package controllers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"storefront/cart"
	"storefront/middleware"
	"storefront/models"
	"storefront/repository"
	"storefront/session"
	"storefront/utils"
)

// OrderController turns the session cart into a placed order
type OrderController struct {
	Sessions *session.Manager
	Orders   repository.OrderRepository
	Mailer   utils.Mailer
}

// NewOrderController creates a new OrderController
func NewOrderController(sessions *session.Manager, orders repository.OrderRepository, mailer utils.Mailer) *OrderController {
	return &OrderController{
		Sessions: sessions,
		Orders:   orders,
		Mailer:   mailer,
	}
}

// Checkout places an order for everything in the cart and empties it
func (oc *OrderController) Checkout(w http.ResponseWriter, r *http.Request) {
	var req models.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if claims, ok := middleware.ClaimsFrom(r); ok && req.Email == "" {
		req.Email = claims.Email
	}
	if field := missingField(req); field != "" {
		http.Error(w, "Missing required field: "+field, http.StatusBadRequest)
		return
	}

	sessionID := middleware.SessionID(r)
	store := oc.Sessions.Cart(sessionID)
	st, version := store.Snapshot()
	if len(st.Entries) == 0 {
		http.Error(w, "Cart is empty", http.StatusBadRequest)
		return
	}

	if _, _, err := store.DispatchAt(version, cart.Clear{}); err != nil {
		http.Error(w, "Cart changed during checkout, please review it", http.StatusConflict)
		return
	}

	order := newOrder(sessionID, req, st)
	if err := oc.Orders.Create(r.Context(), &order); err != nil {
		zap.L().Error("create order failed", zap.String("order", order.OrderNumber), zap.Error(err))
		restore(store, st)
		http.Error(w, "Failed to create order", http.StatusInternalServerError)
		return
	}

	// Send confirmation email to the customer
	go func(order models.Order) {
		if err := oc.Mailer.SendOrderConfirmation(order); err != nil {
			zap.L().Error("failed to send order email", zap.String("to", order.Customer.Email), zap.Error(err))
		}
	}(order)

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"orderNumber": order.OrderNumber,
		"totalAmount": order.TotalAmount,
		"message":     "Order placed successfully! Thank you for your purchase.",
	})
}

// GetOrders lists the authenticated user's orders
func (oc *OrderController) GetOrders(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	orders, err := oc.Orders.ListByEmail(r.Context(), claims.Email)
	if err != nil {
		zap.L().Error("list orders failed", zap.Error(err))
		http.Error(w, "Failed to retrieve orders", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func missingField(req models.CheckoutRequest) string {
	required := []struct{ name, value string }{
		{"fullName", req.FullName},
		{"email", req.Email},
		{"address", req.Address},
		{"city", req.City},
		{"state", req.State},
		{"pincode", req.Pincode},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return f.name
		}
	}
	return ""
}

func newOrder(sessionID string, customer models.CheckoutRequest, st cart.State) models.Order {
	items := make([]models.OrderItem, 0, len(st.Entries))
	for _, e := range st.Entries {
		items = append(items, models.OrderItem{
			DocumentID: e.Product.Key,
			Name:       e.Product.Name,
			UnitPrice:  e.Product.Price.StringFixed(2),
			Quantity:   e.Quantity,
			Subtotal:   e.Subtotal().StringFixed(2),
		})
	}
	return models.Order{
		OrderNumber: "SF-" + strings.ToUpper(uuid.NewString()[:8]),
		SessionID:   sessionID,
		Customer:    customer,
		Items:       items,
		TotalAmount: st.Total.StringFixed(2),
		Status:      "placed",
		CreatedAt:   time.Now().UTC(),
	}
}

// restore puts back entries cleared for an order that could not be saved.
func restore(store *cart.Store, st cart.State) {
	for _, e := range st.Entries {
		store.Dispatch(cart.AddItem{Product: e.Product, Quantity: e.Quantity})
	}
}
