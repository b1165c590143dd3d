package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"storefront/controllers"
	"storefront/middleware"
)

// Controllers groups the handlers the router dispatches to
type Controllers struct {
	Users    *controllers.UserController
	Products *controllers.ProductController
	Cart     *controllers.CartController
	Orders   *controllers.OrderController
}

// RegisterRoutes sets up all the routes for the application
func RegisterRoutes(router *mux.Router, c Controllers, sessions *middleware.Sessions) {
	router.Use(middleware.Authenticate)

	// Public routes
	router.HandleFunc("/register", c.Users.Register).Methods(http.MethodPost)
	router.HandleFunc("/login", c.Users.Login).Methods(http.MethodPost)
	router.HandleFunc("/products", c.Products.GetProducts).Methods(http.MethodGet)
	router.HandleFunc("/products/{documentId}", c.Products.GetProductByID).Methods(http.MethodGet)

	// Protected routes
	protected := router.PathPrefix("/").Subrouter()
	protected.Use(middleware.RequireAuth)
	protected.HandleFunc("/profile", c.Users.GetProfile).Methods(http.MethodGet)
	protected.HandleFunc("/orders", c.Orders.GetOrders).Methods(http.MethodGet)

	// Admin routes
	admin := router.PathPrefix("/products").Subrouter()
	admin.Use(middleware.AdminMiddleware)
	admin.HandleFunc("", c.Products.CreateProduct).Methods(http.MethodPost)
	admin.HandleFunc("/{documentId}", c.Products.UpdateProduct).Methods(http.MethodPut)
	admin.HandleFunc("/{documentId}", c.Products.DeleteProduct).Methods(http.MethodDelete)

	// Cart routes, owned by the caller's session
	shop := router.PathPrefix("/").Subrouter()
	shop.Use(sessions.Middleware)
	shop.HandleFunc("/cart", c.Cart.GetCart).Methods(http.MethodGet)
	shop.HandleFunc("/cart", c.Cart.ClearCart).Methods(http.MethodDelete)
	shop.HandleFunc("/cart/items", c.Cart.AddToCart).Methods(http.MethodPost)
	shop.HandleFunc("/cart/items/{documentId}", c.Cart.UpdateQuantity).Methods(http.MethodPut)
	shop.HandleFunc("/cart/items/{documentId}", c.Cart.RemoveFromCart).Methods(http.MethodDelete)
	shop.HandleFunc("/checkout", c.Orders.Checkout).Methods(http.MethodPost)
	shop.HandleFunc("/logout", c.Cart.Logout).Methods(http.MethodPost)
}
