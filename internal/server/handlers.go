package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/b4ubuy/pantry/internal/models"
	"github.com/b4ubuy/pantry/internal/products"
	"github.com/b4ubuy/pantry/pkg/utils"
)

type suggestRequest struct {
	DishName string `json:"dish_name"`
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	var req suggestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.DishName) == "" {
		s.respondError(w, http.StatusBadRequest, "dish_name is required")
		return
	}
	s.logger.Debug("suggest request", zap.String("dish", utils.Truncate(req.DishName, 80)))
	result := s.suggest.Suggest(r.Context(), req.DishName)
	s.respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleAutocomplete(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	titles := s.suggest.Titles(r.Context(), q)
	if titles == nil {
		titles = []models.TitleSuggestion{}
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"suggestions": titles})
}

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := products.Filter{
		Category: q.Get("category"),
		NutriMax: q.Get("nutrimax") == "true",
	}
	if diets := q.Get("diets"); diets != "" {
		filter.Diets = strings.Split(diets, ",")
	}
	if allergens := q.Get("allergens"); allergens != "" {
		filter.Allergens = strings.Split(allergens, ",")
	}
	list, err := s.products.List(r.Context())
	if err != nil {
		s.logger.Error("product list failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	filtered := filter.Apply(list)
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"products": filtered,
		"count":    len(filtered),
	})
}

func (s *Server) handleSearchProducts(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		s.respondError(w, http.StatusBadRequest, "q is required")
		return
	}
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			s.respondError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}
	ids, err := s.index.Search(r.Context(), q, limit)
	if err != nil {
		s.logger.Error("product search failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	list := make([]*models.Product, 0, len(ids))
	for _, id := range ids {
		p, err := s.products.Get(r.Context(), id)
		if err != nil {
			s.logger.Error("product lookup failed", zap.String("id", id), zap.Error(err))
			continue
		}
		if p != nil {
			list = append(list, p)
		}
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"products": list,
		"count":    len(list),
	})
}

func (s *Server) handleCartItems(w http.ResponseWriter, r *http.Request) {
	items, err := s.cart.Items(r.Context())
	if err != nil {
		s.logger.Error("cart items failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	count, err := s.cart.Count(r.Context())
	if err != nil {
		s.logger.Error("cart count failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if items == nil {
		items = []models.CartItem{}
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"items": items,
		"count": count,
	})
}

func (s *Server) handleCartIncrement(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.cart.Increment(r.Context(), id); err != nil {
		s.logger.Error("cart increment failed", zap.String("id", id), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	qty, err := s.cart.Quantity(r.Context(), id)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"product_id": id, "quantity": qty})
}

func (s *Server) handleCartDecrement(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.cart.Decrement(r.Context(), id); err != nil {
		s.logger.Error("cart decrement failed", zap.String("id", id), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	qty, err := s.cart.Quantity(r.Context(), id)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"product_id": id, "quantity": qty})
}

func (s *Server) handleCartAddIngredients(w http.ResponseWriter, r *http.Request) {
	var req suggestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.DishName) == "" {
		s.respondError(w, http.StatusBadRequest, "dish_name is required")
		return
	}
	result := s.suggest.Suggest(r.Context(), req.DishName)
	if !result.Success {
		s.respondError(w, http.StatusNotFound, result.Message)
		return
	}
	added, err := s.cart.AddIngredients(r.Context(), result.Ingredients)
	if err != nil {
		s.logger.Error("add ingredients failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	count, err := s.cart.Count(r.Context())
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"recipe_name": result.RecipeName,
		"added":       added,
		"cart_count":  count,
	})
}

func (s *Server) handleCartLock(w http.ResponseWriter, r *http.Request) {
	list, err := s.cart.Lock(r.Context())
	if err != nil {
		s.logger.Error("cart lock failed", zap.Error(err))
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.respondJSON(w, http.StatusCreated, list)
}

func (s *Server) handleLists(w http.ResponseWriter, r *http.Request) {
	lists, err := s.cart.Lists(r.Context())
	if err != nil {
		s.logger.Error("lists lookup failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if lists == nil {
		lists = []models.ShoppingList{}
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"lists": lists,
		"count": len(lists),
	})
}

func (s *Server) handleGetList(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	list, err := s.cart.GetList(r.Context(), id)
	if err != nil {
		s.logger.Error("list lookup failed", zap.String("id", id), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if list == nil {
		s.respondError(w, http.StatusNotFound, "shopping list not found")
		return
	}
	s.respondJSON(w, http.StatusOK, list)
}

type checkRequest struct {
	Checked bool `json:"checked"`
}

func (s *Server) handleCheckListItem(w http.ResponseWriter, r *http.Request) {
	listID := chi.URLParam(r, "id")
	productID := chi.URLParam(r, "productID")
	req := checkRequest{Checked: true}
	if r.Body != nil && r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}
	if err := s.cart.CheckItem(r.Context(), listID, productID, req.Checked); err != nil {
		s.respondError(w, http.StatusNotFound, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"product_id": productID,
		"checked":    req.Checked,
	})
}

type analyzeRequest struct {
	Persona string `json:"persona"`
}

func (s *Server) handleAnalyzeCart(w http.ResponseWriter, r *http.Request) {
	if s.insights == nil {
		s.respondError(w, http.StatusNotImplemented, "cart analysis not configured")
		return
	}
	var req analyzeRequest
	if r.Body != nil && r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}
	persona := req.Persona
	if persona == "" {
		persona = s.persona
	}
	items, err := s.cart.Items(r.Context())
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if len(items) == 0 {
		s.respondError(w, http.StatusBadRequest, "cart is empty")
		return
	}
	names := make([]string, 0, len(items))
	for _, item := range items {
		p, err := s.products.Get(r.Context(), item.ProductID)
		if err != nil || p == nil {
			names = append(names, item.ProductID)
			continue
		}
		names = append(names, p.Name)
	}
	analysis, err := s.insights.AnalyzeCart(r.Context(), names, persona)
	if err != nil {
		s.logger.Error("cart analysis failed", zap.Error(err))
		s.respondError(w, http.StatusBadGateway, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, analysis)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
