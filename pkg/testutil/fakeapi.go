package testutil

import (
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"backoffice/internal/domain"
)

// Account is a seeded login on the fake backend.
type Account struct {
	ID       int
	Email    string
	Password string
	Name     string
	Role     string
}

// Backend is an in-process stand-in for the remote e-commerce API. It keeps
// real server-side semantics where the client behavior under test depends on
// them: cart totals are computed here and nowhere else, listings paginate,
// and an unknown or revoked bearer token gets a 401.
type Backend struct {
	t      *testing.T
	Server *httptest.Server

	mu       sync.Mutex
	accounts map[string]Account        // by email
	tokens   map[string]Account        // by token
	products map[int]domain.Product    // by id
	carts    map[string]*domain.Cart   // by user identifier
	orders   map[string][]domain.Order // by user identifier
	avatars  map[int]domain.Image      // by user id

	nextID int

	cartFetches  int
	orderFetches int

	failCartMutation []domain.Notification // one-shot
	failCartFetch    bool                  // one-shot
	uploads          []string
}

// NewBackend starts the fake API. It is shut down with the test.
func NewBackend(t *testing.T) *Backend {
	t.Helper()
	b := &Backend{
		t:        t,
		accounts: make(map[string]Account),
		tokens:   make(map[string]Account),
		products: make(map[int]domain.Product),
		carts:    make(map[string]*domain.Cart),
		orders:   make(map[string][]domain.Order),
		avatars:  make(map[int]domain.Image),
		nextID:   1000,
	}

	router := chi.NewRouter()
	router.Post("/Login/login", b.handleLogin)
	router.Group(func(r chi.Router) {
		r.Use(b.requireToken)
		r.Get("/Cart/list_cart_items_by_user", b.handleCartList)
		r.Post("/Cart/add_product_to_cart", b.handleCartAdd)
		r.Put("/Cart/update_product_from_user_cart", b.handleCartUpdate)
		r.Delete("/Cart/remove_product_from_user_cart", b.handleCartRemove)
		r.Delete("/Cart/clear_user_cart", b.handleCartClear)
		r.Get("/Order/my-orders", b.handleOrderList)
		r.Put("/Order/cancel/{orderID}", b.handleOrderCancel)
		r.Post("/Order/checkout", b.handleCheckout)
		r.Get("/Product/list_products_paginated", b.handleProductList)
		r.Get("/Image/get_main_image/{entityType}/{entityID}/main", b.handleMainImage)
		r.Post("/Image/upload_image", b.handleImageUpload)
	})

	b.Server = httptest.NewServer(router)
	t.Cleanup(b.Server.Close)
	return b
}

// URL is the base URL to hand to the gateway.
func (b *Backend) URL() string { return b.Server.URL }

// AddAccount seeds a login. The issued token is deterministic:
// "token-<email>".
func (b *Backend) AddAccount(acc Account) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.accounts[acc.Email] = acc
}

// AddProduct seeds a catalog entry used by cart math and listings.
func (b *Backend) AddProduct(p domain.Product) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.products[p.ID] = p
}

// SeedOrders installs a user's order history.
func (b *Backend) SeedOrders(userIdentifier string, orders []domain.Order) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.orders[userIdentifier] = orders
}

// SetAvatar installs a main image for a user id.
func (b *Backend) SetAvatar(userID int, image domain.Image) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.avatars[userID] = image
}

// RevokeToken makes a previously issued token invalid, so the next request
// carrying it draws a 401.
func (b *Backend) RevokeToken(token string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.tokens, token)
}

// FailNextCartMutation makes the next cart write fail with the given
// validation notifications (HTTP 422).
func (b *Backend) FailNextCartMutation(notes []domain.Notification) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failCartMutation = notes
}

// FailNextCartFetch makes the next cart read fail with a 500.
func (b *Backend) FailNextCartFetch() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failCartFetch = true
}

// CartFetches reports how many times the cart listing endpoint was hit.
func (b *Backend) CartFetches() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cartFetches
}

// OrderFetches reports how many times the order listing endpoint was hit.
func (b *Backend) OrderFetches() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.orderFetches
}

// Uploads lists the file names received by the upload endpoint.
func (b *Backend) Uploads() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.uploads...)
}

func TokenFor(email string) string { return "token-" + email }

func (b *Backend) handleLogin(w http.ResponseWriter, r *http.Request) {
	req := DecodeBody[domain.LoginRequest](b.t, r)

	b.mu.Lock()
	acc, ok := b.accounts[req.Email]
	if !ok || acc.Password != req.Password {
		b.mu.Unlock()
		WriteJSON(w, http.StatusUnauthorized, []domain.Notification{{Key: "login", Value: "invalid credentials"}})
		return
	}
	token := TokenFor(acc.Email)
	b.tokens[token] = acc
	b.mu.Unlock()

	WriteJSON(w, http.StatusOK, domain.LoginResult{
		UserIdentifier: strconv.Itoa(acc.ID),
		Name:           acc.Name,
		Role:           acc.Role,
		Token:          token,
		ExpireIn:       3600,
	})
}

func (b *Backend) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok {
			WriteJSON(w, http.StatusUnauthorized, []domain.Notification{{Key: "auth", Value: "missing token"}})
			return
		}
		b.mu.Lock()
		acc, valid := b.tokens[token]
		b.mu.Unlock()
		if !valid {
			WriteJSON(w, http.StatusUnauthorized, []domain.Notification{{Key: "auth", Value: "invalid token"}})
			return
		}
		r.Header.Set("X-Test-User", strconv.Itoa(acc.ID))
		next.ServeHTTP(w, r)
	})
}

func (b *Backend) caller(r *http.Request) string { return r.Header.Get("X-Test-User") }

// cartFor returns the caller's cart, creating an empty active one on first
// touch. Caller must hold b.mu.
func (b *Backend) cartFor(user string) *domain.Cart {
	cart, ok := b.carts[user]
	if !ok {
		b.nextID++
		cart = &domain.Cart{ID: b.nextID, UserID: user, Status: domain.CartActive}
		b.carts[user] = cart
	}
	return cart
}

// recompute is the server-side arithmetic the client must never duplicate.
func recompute(cart *domain.Cart) {
	cart.Subtotal = 0
	cart.TotalItems = 0
	for i := range cart.Items {
		item := &cart.Items[i]
		item.LineTotal = float64(item.Quantity) * item.UnitPrice
		cart.Subtotal += item.LineTotal
		cart.TotalItems += item.Quantity
	}
}

func (b *Backend) handleCartList(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	b.cartFetches++
	if b.failCartFetch {
		b.failCartFetch = false
		b.mu.Unlock()
		WriteJSON(w, http.StatusInternalServerError, []domain.Notification{{Key: "cart", Value: "temporary failure"}})
		return
	}
	cart, ok := b.carts[b.caller(r)]
	if !ok {
		b.mu.Unlock()
		WriteJSON(w, http.StatusOK, nil)
		return
	}
	snapshot := *cart
	snapshot.Items = append([]domain.CartItem(nil), cart.Items...)
	b.mu.Unlock()
	WriteJSON(w, http.StatusOK, snapshot)
}

// cartMutationBlocked reports and consumes the one-shot failure. Caller must
// hold b.mu.
func (b *Backend) cartMutationBlocked(w http.ResponseWriter) bool {
	if b.failCartMutation == nil {
		return false
	}
	notes := b.failCartMutation
	b.failCartMutation = nil
	WriteJSON(w, http.StatusUnprocessableEntity, notes)
	return true
}

func (b *Backend) handleCartAdd(w http.ResponseWriter, r *http.Request) {
	req := DecodeBody[domain.AddToCartRequest](b.t, r)

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.cartMutationBlocked(w) {
		return
	}
	product, ok := b.products[req.ProductID]
	if !ok {
		WriteJSON(w, http.StatusNotFound, []domain.Notification{{Key: "product", Value: "not found"}})
		return
	}
	cart := b.cartFor(b.caller(r))
	b.nextID++
	cart.Items = append(cart.Items, domain.CartItem{
		ID:          b.nextID,
		ProductID:   product.ID,
		ProductName: product.Name,
		ProductCode: product.Code,
		Quantity:    req.Quantity,
		UnitPrice:   product.Price,
	})
	recompute(cart)
	WriteJSON(w, http.StatusOK, cart.Items[len(cart.Items)-1])
}

func (b *Backend) handleCartUpdate(w http.ResponseWriter, r *http.Request) {
	req := DecodeBody[domain.UpdateCartItemRequest](b.t, r)

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.cartMutationBlocked(w) {
		return
	}
	cart := b.cartFor(b.caller(r))
	for i := range cart.Items {
		if cart.Items[i].ID == req.CartItemID {
			cart.Items[i].Quantity = req.Quantity
			recompute(cart)
			WriteJSON(w, http.StatusOK, true)
			return
		}
	}
	WriteJSON(w, http.StatusNotFound, []domain.Notification{{Key: "cartItem", Value: "not found"}})
}

func (b *Backend) handleCartRemove(w http.ResponseWriter, r *http.Request) {
	req := DecodeBody[domain.RemoveFromCartRequest](b.t, r)

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.cartMutationBlocked(w) {
		return
	}
	cart := b.cartFor(b.caller(r))
	for i := range cart.Items {
		if cart.Items[i].ID == req.CartItemID {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			recompute(cart)
			WriteJSON(w, http.StatusOK, true)
			return
		}
	}
	WriteJSON(w, http.StatusNotFound, []domain.Notification{{Key: "cartItem", Value: "not found"}})
}

func (b *Backend) handleCartClear(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.cartMutationBlocked(w) {
		return
	}
	cart := b.cartFor(b.caller(r))
	cart.Items = nil
	recompute(cart)
	WriteJSON(w, http.StatusOK, true)
}

func (b *Backend) handleOrderList(w http.ResponseWriter, r *http.Request) {
	pageNumber, _ := strconv.Atoi(r.URL.Query().Get("pageNumber"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))
	if pageNumber < 1 {
		pageNumber = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	b.mu.Lock()
	b.orderFetches++
	all := append([]domain.Order(nil), b.orders[b.caller(r)]...)
	b.mu.Unlock()

	totalPages := (len(all) + pageSize - 1) / pageSize
	start := (pageNumber - 1) * pageSize
	items := []domain.Order{}
	if start < len(all) {
		end := min(start+pageSize, len(all))
		items = all[start:end]
	}
	WriteJSON(w, http.StatusOK, domain.Page[domain.Order]{
		Items:      items,
		TotalCount: len(all),
		PageNumber: pageNumber,
		PageSize:   pageSize,
		TotalPages: totalPages,
	})
}

func (b *Backend) handleOrderCancel(w http.ResponseWriter, r *http.Request) {
	orderID, _ := strconv.Atoi(chi.URLParam(r, "orderID"))

	b.mu.Lock()
	defer b.mu.Unlock()
	orders := b.orders[b.caller(r)]
	for i := range orders {
		if orders[i].ID == orderID {
			orders[i].Status = domain.OrderCancelled
			WriteJSON(w, http.StatusOK, true)
			return
		}
	}
	WriteJSON(w, http.StatusNotFound, []domain.Notification{{Key: "order", Value: "not found"}})
}

func (b *Backend) handleCheckout(w http.ResponseWriter, r *http.Request) {
	req := DecodeBody[domain.CheckoutRequest](b.t, r)

	b.mu.Lock()
	defer b.mu.Unlock()
	user := b.caller(r)
	cart := b.cartFor(user)
	if len(cart.Items) == 0 {
		WriteJSON(w, http.StatusUnprocessableEntity, []domain.Notification{{Key: "cart", Value: "cart is empty"}})
		return
	}

	b.nextID++
	order := domain.Order{
		ID:            b.nextID,
		OrderNumber:   "ORD-" + strconv.Itoa(b.nextID),
		UserID:        user,
		Status:        domain.OrderPending,
		PaymentMethod: req.PaymentMethod,
		PaymentStatus: domain.PaymentPending,
		Subtotal:      cart.Subtotal,
		Discount:      req.Discount,
		ShippingCost:  req.ShippingCost,
		Total:         cart.Subtotal - req.Discount + req.ShippingCost,
		Notes:         req.Notes,
	}
	for _, item := range cart.Items {
		order.Items = append(order.Items, domain.OrderItem{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			LineTotal: item.LineTotal,
		})
	}
	b.orders[user] = append([]domain.Order{order}, b.orders[user]...)
	cart.Items = nil
	cart.Status = domain.CartCheckedOut
	recompute(cart)

	WriteJSON(w, http.StatusOK, order)
}

func (b *Backend) handleProductList(w http.ResponseWriter, r *http.Request) {
	pageNumber, _ := strconv.Atoi(r.URL.Query().Get("pageNumber"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))
	if pageNumber < 1 {
		pageNumber = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	prefix := r.URL.Query().Get("namePrefix")

	b.mu.Lock()
	all := make([]domain.Product, 0, len(b.products))
	for _, p := range b.products {
		if prefix == "" || strings.HasPrefix(p.Name, prefix) {
			all = append(all, p)
		}
	}
	b.mu.Unlock()
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	totalPages := (len(all) + pageSize - 1) / pageSize
	start := (pageNumber - 1) * pageSize
	items := []domain.Product{}
	if start < len(all) {
		end := min(start+pageSize, len(all))
		items = all[start:end]
	}
	WriteJSON(w, http.StatusOK, domain.Page[domain.Product]{
		Items:      items,
		TotalCount: len(all),
		PageNumber: pageNumber,
		PageSize:   pageSize,
		TotalPages: totalPages,
	})
}

func (b *Backend) handleMainImage(w http.ResponseWriter, r *http.Request) {
	entityID, _ := strconv.Atoi(chi.URLParam(r, "entityID"))

	b.mu.Lock()
	image, ok := b.avatars[entityID]
	b.mu.Unlock()
	if !ok {
		WriteJSON(w, http.StatusOK, nil)
		return
	}
	WriteJSON(w, http.StatusOK, image)
}

func (b *Backend) handleImageUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		WriteJSON(w, http.StatusBadRequest, []domain.Notification{{Key: "upload", Value: "bad multipart payload"}})
		return
	}
	file, header, err := r.FormFile("File")
	if err != nil {
		WriteJSON(w, http.StatusBadRequest, []domain.Notification{{Key: "upload", Value: "missing file"}})
		return
	}
	file.Close()

	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.uploads = append(b.uploads, header.Filename)
	b.mu.Unlock()

	WriteJSON(w, http.StatusOK, domain.Image{
		ID:          id,
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		SizeInBytes: header.Size,
		IsMain:      r.FormValue("SetAsMain") == "true",
	})
}
