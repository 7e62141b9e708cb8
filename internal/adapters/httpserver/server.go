package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/phenrril/monochrome/internal/domain"
	"github.com/phenrril/monochrome/internal/usecase"
)

type Server struct {
	mux      *http.ServeMux
	catalog  *usecase.CatalogUC
	cart     *usecase.CartUC
	history  *usecase.HistoryUC
	checkout *usecase.CheckoutUC
	store    domain.KVStore

	flightDuration time.Duration
}

func New(catalog *usecase.CatalogUC, cart *usecase.CartUC, history *usecase.HistoryUC, checkout *usecase.CheckoutUC, store domain.KVStore, flightDuration time.Duration) http.Handler {
	s := &Server{
		mux:            http.NewServeMux(),
		catalog:        catalog,
		cart:           cart,
		history:        history,
		checkout:       checkout,
		store:          store,
		flightDuration: flightDuration,
	}
	s.routes()
	return s.mux
}

func (s *Server) routes() {
	s.mux.HandleFunc("/health", s.handleHealth)

	s.mux.HandleFunc("/api/products", s.apiProducts)
	s.mux.HandleFunc("/api/products/", s.apiProductByHandle)
	s.mux.HandleFunc("/api/search", s.apiSearch)
	s.mux.HandleFunc("/api/collections", s.apiCollections)
	s.mux.HandleFunc("/api/recently-viewed", s.apiRecentlyViewed)

	s.mux.HandleFunc("/api/cart", s.apiCart)
	s.mux.HandleFunc("/api/cart/items", s.apiCartAdd)
	s.mux.HandleFunc("/api/cart/flight/", s.apiCartFlightComplete)
	s.mux.HandleFunc("/api/cart/update", s.apiCartUpdate)
	s.mux.HandleFunc("/api/cart/remove", s.apiCartRemove)
	s.mux.HandleFunc("/api/cart/open", s.apiCartOpen)

	s.mux.HandleFunc("/api/checkout", s.apiCheckout)
	s.mux.HandleFunc("/api/newsletter", s.apiNewsletter)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, 200, map[string]string{"status": "ok"})
}

func (s *Server) apiProducts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", 405)
		return
	}
	f := domain.ProductFilter{
		Category: r.URL.Query().Get("category"),
		Sort:     r.URL.Query().Get("sort"),
	}
	if v := r.URL.Query().Get("min_price"); v != "" {
		if p, err := strconv.ParseFloat(v, 64); err == nil {
			f.MinPrice = &p
		}
	}
	if v := r.URL.Query().Get("max_price"); v != "" {
		if p, err := strconv.ParseFloat(v, 64); err == nil {
			f.MaxPrice = &p
		}
	}
	items := s.catalog.GetProducts(r.Context(), f)
	writeJSON(w, 200, map[string]any{"items": items, "total": len(items)})
}

func (s *Server) apiProductByHandle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", 405)
		return
	}
	handle := strings.TrimPrefix(r.URL.Path, "/api/products/")
	if handle == "" || strings.Contains(handle, "/") {
		http.Error(w, "handle", 400)
		return
	}
	p, err := s.catalog.GetProductByHandle(r.Context(), handle)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Error(w, "not found", 404)
			return
		}
		http.Error(w, "err", 500)
		return
	}
	s.history.Touch(r.Context(), p.Handle)
	related := s.catalog.Related(r.Context(), *p, 4)
	writeJSON(w, 200, map[string]any{"product": p, "related": related})
}

func (s *Server) apiSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", 405)
		return
	}
	q := r.URL.Query().Get("q")
	items := s.catalog.SearchProducts(r.Context(), q)
	writeJSON(w, 200, map[string]any{"query": strings.TrimSpace(q), "items": items})
}

func (s *Server) apiCollections(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", 405)
		return
	}
	writeJSON(w, 200, map[string]any{"items": s.catalog.Collections()})
}

func (s *Server) apiRecentlyViewed(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		limit := 10
		if v := r.URL.Query().Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				limit = n
			}
		}
		exclude := r.URL.Query().Get("exclude")
		writeJSON(w, 200, map[string]any{"items": s.history.Products(r.Context(), exclude, limit)})
	case http.MethodPost:
		var req struct {
			Handle string `json:"handle"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Handle == "" {
			http.Error(w, "json", 400)
			return
		}
		s.history.Touch(r.Context(), req.Handle)
		writeJSON(w, 200, map[string]any{"handles": s.history.Handles(r.Context())})
	default:
		http.Error(w, "method", 405)
	}
}

func (s *Server) apiCart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", 405)
		return
	}
	writeJSON(w, 200, s.cartSnapshot())
}

func (s *Server) apiCartAdd(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	var req struct {
		Product domain.Product `json:"product"`
		Size    string         `json:"size"`
		Origin  *domain.Rect   `json:"origin"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "json", 400)
		return
	}
	if req.Product.ID == "" {
		http.Error(w, "product", 400)
		return
	}

	flight := s.cart.AddItem(r.Context(), req.Product, req.Size, req.Origin)
	if flight == nil {
		writeJSON(w, 200, s.cartSnapshot())
		return
	}
	writeJSON(w, 202, map[string]any{
		"flight":     flight,
		"durationMs": s.flightDuration.Milliseconds(),
	})
}

func (s *Server) apiCartFlightComplete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	rest := strings.TrimPrefix(r.URL.Path, "/api/cart/flight/")
	rawID, ok := strings.CutSuffix(rest, "/complete")
	if !ok {
		http.Error(w, "path", 404)
		return
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		http.Error(w, "flight id", 400)
		return
	}
	committed := s.cart.CompleteFlight(r.Context(), id)
	snap := s.cartSnapshot()
	snap["committed"] = committed
	writeJSON(w, 200, snap)
}

func (s *Server) apiCartUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	var req struct {
		ID       string `json:"id"`
		Quantity int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		http.Error(w, "json", 400)
		return
	}
	s.cart.UpdateQuantity(r.Context(), req.ID, req.Quantity)
	writeJSON(w, 200, s.cartSnapshot())
}

func (s *Server) apiCartRemove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	var req struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		http.Error(w, "json", 400)
		return
	}
	s.cart.RemoveItem(r.Context(), req.ID)
	writeJSON(w, 200, s.cartSnapshot())
}

func (s *Server) apiCartOpen(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	var req struct {
		Open bool `json:"open"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "json", 400)
		return
	}
	s.cart.SetIsOpen(req.Open)
	writeJSON(w, 200, s.cartSnapshot())
}

func (s *Server) apiCheckout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	var req struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "json", 400)
		return
	}
	order, err := s.checkout.PlaceOrder(r.Context(), req.Email, req.Name)
	if err != nil {
		if errors.Is(err, usecase.ErrEmptyCart) {
			http.Error(w, "cart empty", 409)
			return
		}
		log.Error().Err(err).Msg("checkout")
		http.Error(w, "err", 500)
		return
	}
	writeJSON(w, 201, map[string]any{"order": order})
}

func (s *Server) apiNewsletter(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		_, shown, err := s.store.Load(r.Context(), domain.KeyNewsletterShown)
		if err != nil {
			log.Warn().Err(err).Msg("newsletter flag load")
		}
		writeJSON(w, 200, map[string]bool{"shown": shown})
	case http.MethodPost:
		if err := s.store.Save(r.Context(), domain.KeyNewsletterShown, "true"); err != nil {
			log.Warn().Err(err).Msg("newsletter flag save")
		}
		writeJSON(w, 200, map[string]bool{"shown": true})
	default:
		http.Error(w, "method", 405)
	}
}

func (s *Server) cartSnapshot() map[string]any {
	return map[string]any{
		"items":      s.cart.Items(),
		"totalItems": s.cart.TotalItems(),
		"subtotal":   s.cart.Subtotal(),
		"isOpen":     s.cart.IsOpen(),
		"flight":     s.cart.Flight(),
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
