package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"storefront/cart"
	"storefront/middleware"
	"storefront/models"
	"storefront/repository"
	"storefront/session"
)

// CartController handles cart-related requests
type CartController struct {
	Sessions        *session.Manager
	Products        repository.ProductRepository
	MaxStockDefault int
}

// NewCartController creates a new CartController
func NewCartController(sessions *session.Manager, products repository.ProductRepository, maxStockDefault int) *CartController {
	return &CartController{
		Sessions:        sessions,
		Products:        products,
		MaxStockDefault: maxStockDefault,
	}
}

// GetCart returns the session's cart
func (cc *CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	st, version := cc.Sessions.Cart(middleware.SessionID(r)).Snapshot()
	writeCart(w, st, version)
}

// AddToCart adds a catalog product to the cart
func (cc *CartController) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req models.CartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if req.DocumentID == "" {
		http.Error(w, "documentId is required", http.StatusBadRequest)
		return
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	if quantity <= 0 {
		http.Error(w, "Quantity must be positive", http.StatusBadRequest)
		return
	}

	product, ok := cc.lookup(w, r, req.DocumentID)
	if !ok {
		return
	}
	cc.mutate(w, r, func(st cart.State) (cart.Command, error) {
		if err := checkStock(product, st.Quantity(product.DocumentID), quantity, cc.MaxStockDefault); err != nil {
			return nil, err
		}
		return cart.AddItem{Product: product.CartProduct(), Quantity: quantity}, nil
	})
}

// UpdateQuantity sets the quantity of a cart entry; zero removes it
func (cc *CartController) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	documentID := mux.Vars(r)["documentId"]
	var req models.CartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Quantity == nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	quantity := *req.Quantity
	if quantity < 0 {
		http.Error(w, "Quantity cannot be negative", http.StatusBadRequest)
		return
	}

	var product *models.Product
	cc.mutate(w, r, func(st cart.State) (cart.Command, error) {
		if quantity > st.Quantity(documentID) && st.Quantity(documentID) > 0 {
			if product == nil {
				p, err := cc.Products.Get(r.Context(), documentID)
				if err != nil {
					return nil, err
				}
				product = &p
			}
			if err := checkStock(*product, 0, quantity, cc.MaxStockDefault); err != nil {
				return nil, err
			}
		}
		return cart.SetQuantity{Key: documentID, Quantity: quantity}, nil
	})
}

// RemoveFromCart removes a product from the cart
func (cc *CartController) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	documentID := mux.Vars(r)["documentId"]
	cc.mutate(w, r, func(cart.State) (cart.Command, error) {
		return cart.RemoveItem{Key: documentID}, nil
	})
}

// ClearCart empties the cart
func (cc *CartController) ClearCart(w http.ResponseWriter, r *http.Request) {
	cc.mutate(w, r, func(cart.State) (cart.Command, error) {
		return cart.Clear{}, nil
	})
}

// Logout ends the caller's session and discards its cart
func (cc *CartController) Logout(w http.ResponseWriter, r *http.Request) {
	cc.Sessions.End(middleware.SessionID(r))
	w.WriteHeader(http.StatusNoContent)
}

func (cc *CartController) lookup(w http.ResponseWriter, r *http.Request, documentID string) (models.Product, bool) {
	product, err := cc.Products.Get(r.Context(), documentID)
	if errors.Is(err, repository.ErrNotFound) {
		http.Error(w, "Product not found", http.StatusNotFound)
		return product, false
	}
	if err != nil {
		zap.L().Error("product lookup failed", zap.String("documentId", documentID), zap.Error(err))
		http.Error(w, "Error fetching product", http.StatusInternalServerError)
		return product, false
	}
	return product, true
}

// mutate builds a command from the current cart and applies it only if the
// cart has not moved in between. With an If-Match header a moved cart is a
// conflict; without one the build is retried against the newer state.
func (cc *CartController) mutate(w http.ResponseWriter, r *http.Request, build func(cart.State) (cart.Command, error)) {
	expected, pinned, err := ifMatch(r)
	if err != nil {
		http.Error(w, "Invalid If-Match header", http.StatusBadRequest)
		return
	}

	store := cc.Sessions.Cart(middleware.SessionID(r))
	for {
		st, version := store.Snapshot()
		if pinned && version != expected {
			http.Error(w, cart.ErrStaleVersion.Error(), http.StatusConflict)
			return
		}

		cmd, err := build(st)
		if err != nil {
			writeBuildError(w, err)
			return
		}

		st, version, err = store.DispatchAt(version, cmd)
		if errors.Is(err, cart.ErrStaleVersion) {
			if pinned {
				http.Error(w, err.Error(), http.StatusConflict)
				return
			}
			continue
		}
		writeCart(w, st, version)
		return
	}
}

func writeBuildError(w http.ResponseWriter, err error) {
	var stockErr *StockError
	switch {
	case errors.As(err, &stockErr):
		http.Error(w, stockErr.Error(), http.StatusConflict)
	case errors.Is(err, repository.ErrNotFound):
		http.Error(w, "Product not found", http.StatusNotFound)
	default:
		zap.L().Error("cart update failed", zap.Error(err))
		http.Error(w, "Error updating cart", http.StatusInternalServerError)
	}
}

func writeCart(w http.ResponseWriter, st cart.State, version uint64) {
	w.Header().Set("ETag", strconv.Quote(strconv.FormatUint(version, 10)))
	writeJSON(w, http.StatusOK, models.NewCartView(st, version))
}

func ifMatch(r *http.Request) (uint64, bool, error) {
	v := strings.Trim(r.Header.Get("If-Match"), `" `)
	if v == "" {
		return 0, false, nil
	}
	n, err := strconv.ParseUint(v, 10, 64)
	return n, true, err
}
