package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/b4ubuy/pantry/internal/cart"
	"github.com/b4ubuy/pantry/internal/config"
	"github.com/b4ubuy/pantry/internal/insights"
	"github.com/b4ubuy/pantry/internal/models"
	"github.com/b4ubuy/pantry/internal/products"
	"github.com/b4ubuy/pantry/internal/recipes"
	"github.com/b4ubuy/pantry/internal/suggest"
)

const testRecipesCSV = `name,cuisine,ingredients_name,ingredients_quantity,prep_time (in mins),cook_time (in mins),description
Paneer Do Pyaza,North Indian,"paneer, onions, green chillies",200 g  2 large  3,15,25,A rich paneer curry
Masala Dosa,South Indian,"rice, urad dal",2 cups  1 cup,480,30,Crispy fermented crepe
Veg Biryani,Hyderabadi,"rice, vegetables, garam masala powder",2 cups  1 cup  1 tsp,30,45,Festive rice dish
`

func newTestServer(t *testing.T, analysisURL string) *Server {
	t.Helper()
	dir := t.TempDir()

	recipesPath := filepath.Join(dir, "recipes.csv")
	if err := os.WriteFile(recipesPath, []byte(testRecipesCSV), 0644); err != nil {
		t.Fatal(err)
	}
	svc := suggest.NewService(recipes.NewCatalog(recipes.NewFileSource(recipesPath), nil), nil)

	ps, err := products.NewStore(filepath.Join(dir, "pantry.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { ps.Close() })

	index, err := products.NewIndex("")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { index.Close() })

	cs := cart.NewStore(ps, nil)

	var ic *insights.Client
	if analysisURL != "" {
		ic = insights.NewClient(analysisURL, 5*time.Second, nil)
	}

	return NewServer(svc, ps, index, cs, ic, "standard", &config.ServerConfig{Host: "localhost", Port: 0}, zap.NewNop())
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestHandleSuggest(t *testing.T) {
	srv := newTestServer(t, "")
	router := srv.Router()

	w := doJSON(t, router, http.MethodPost, "/api/v1/suggest", map[string]string{"dish_name": "paneer do pyaza"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var result models.SuggestionResult
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatal(err)
	}
	if !result.Success {
		t.Fatalf("expected success, got message %q", result.Message)
	}
	if result.RecipeName != "Paneer Do Pyaza" {
		t.Errorf("recipe_name = %q", result.RecipeName)
	}
	if len(result.Ingredients) != 3 {
		t.Errorf("got %d ingredients, want 3", len(result.Ingredients))
	}
}

func TestHandleSuggest_badRequests(t *testing.T) {
	srv := newTestServer(t, "")
	router := srv.Router()

	w := doJSON(t, router, http.MethodPost, "/api/v1/suggest", map[string]string{"dish_name": "  "})
	if w.Code != http.StatusBadRequest {
		t.Errorf("blank dish: status = %d, want 400", w.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/suggest", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("malformed body: status = %d, want 400", rec.Code)
	}
}

func TestHandleSuggest_noMatchStillOK(t *testing.T) {
	srv := newTestServer(t, "")
	router := srv.Router()

	w := doJSON(t, router, http.MethodPost, "/api/v1/suggest", map[string]string{"dish_name": "sushi platter"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var result models.SuggestionResult
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatal(err)
	}
	if result.Success {
		t.Error("expected success=false for unknown dish")
	}
	if result.Message == "" {
		t.Error("expected a user-facing message")
	}
}

func TestHandleAutocomplete(t *testing.T) {
	srv := newTestServer(t, "")
	router := srv.Router()

	// Before any suggest call the catalog is cold and suggestions are empty.
	w := doJSON(t, router, http.MethodGet, "/api/v1/autocomplete?q=pa", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var out struct {
		Suggestions []models.TitleSuggestion `json:"suggestions"`
	}
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if len(out.Suggestions) != 0 {
		t.Errorf("cold catalog: got %d suggestions, want 0", len(out.Suggestions))
	}

	doJSON(t, router, http.MethodPost, "/api/v1/suggest", map[string]string{"dish_name": "masala dosa"})

	w = doJSON(t, router, http.MethodGet, "/api/v1/autocomplete?q=pa", nil)
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if len(out.Suggestions) != 1 || out.Suggestions[0].Name != "Paneer Do Pyaza" {
		t.Errorf("unexpected suggestions: %+v", out.Suggestions)
	}
}

func TestCartLifecycle(t *testing.T) {
	srv := newTestServer(t, "")
	router := srv.Router()

	// Seed cart from a recipe's ingredients.
	w := doJSON(t, router, http.MethodPost, "/api/v1/cart/ingredients", map[string]string{"dish_name": "masala dosa"})
	if w.Code != http.StatusOK {
		t.Fatalf("add ingredients: status = %d, body %s", w.Code, w.Body.String())
	}
	var addOut struct {
		RecipeName string `json:"recipe_name"`
		Added      int    `json:"added"`
		CartCount  int    `json:"cart_count"`
	}
	if err := json.NewDecoder(w.Body).Decode(&addOut); err != nil {
		t.Fatal(err)
	}
	if addOut.RecipeName != "Masala Dosa" || addOut.Added != 2 || addOut.CartCount != 2 {
		t.Fatalf("unexpected add response: %+v", addOut)
	}

	w = doJSON(t, router, http.MethodGet, "/api/v1/cart", nil)
	var cartOut struct {
		Items []models.CartItem `json:"items"`
		Count int               `json:"count"`
	}
	if err := json.NewDecoder(w.Body).Decode(&cartOut); err != nil {
		t.Fatal(err)
	}
	if len(cartOut.Items) != 2 || cartOut.Count != 2 {
		t.Fatalf("unexpected cart: %+v", cartOut)
	}

	id := cartOut.Items[0].ProductID

	w = doJSON(t, router, http.MethodPost, "/api/v1/cart/items/"+id, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("increment: status = %d", w.Code)
	}
	var qtyOut struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(w.Body).Decode(&qtyOut); err != nil {
		t.Fatal(err)
	}
	if qtyOut.Quantity != 2 {
		t.Errorf("after increment quantity = %d, want 2", qtyOut.Quantity)
	}

	w = doJSON(t, router, http.MethodDelete, "/api/v1/cart/items/"+id, nil)
	if err := json.NewDecoder(w.Body).Decode(&qtyOut); err != nil {
		t.Fatal(err)
	}
	if qtyOut.Quantity != 1 {
		t.Errorf("after decrement quantity = %d, want 1", qtyOut.Quantity)
	}
}

func TestCartLockAndCheckOff(t *testing.T) {
	srv := newTestServer(t, "")
	router := srv.Router()

	// Locking an empty cart fails.
	w := doJSON(t, router, http.MethodPost, "/api/v1/cart/lock", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("empty lock: status = %d, want 400", w.Code)
	}

	doJSON(t, router, http.MethodPost, "/api/v1/cart/ingredients", map[string]string{"dish_name": "veg biryani"})

	w = doJSON(t, router, http.MethodPost, "/api/v1/cart/lock", nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("lock: status = %d, body %s", w.Code, w.Body.String())
	}
	var list models.ShoppingList
	if err := json.NewDecoder(w.Body).Decode(&list); err != nil {
		t.Fatal(err)
	}
	if list.ID == "" || len(list.Items) != 3 {
		t.Fatalf("unexpected list: %+v", list)
	}

	checkPath := fmt.Sprintf("/api/v1/lists/%s/items/%s/check", list.ID, list.Items[0].ProductID)
	w = doJSON(t, router, http.MethodPost, checkPath, map[string]bool{"checked": true})
	if w.Code != http.StatusOK {
		t.Fatalf("check item: status = %d, body %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodGet, "/api/v1/lists/"+list.ID, nil)
	if err := json.NewDecoder(w.Body).Decode(&list); err != nil {
		t.Fatal(err)
	}
	checked := 0
	for _, item := range list.Items {
		if item.Checked {
			checked++
		}
	}
	if checked != 1 {
		t.Errorf("checked items = %d, want 1", checked)
	}

	w = doJSON(t, router, http.MethodGet, "/api/v1/lists", nil)
	var allLists struct {
		Lists []models.ShoppingList `json:"lists"`
		Count int                   `json:"count"`
	}
	if err := json.NewDecoder(w.Body).Decode(&allLists); err != nil {
		t.Fatal(err)
	}
	if allLists.Count != 1 || allLists.Lists[0].ID != list.ID {
		t.Errorf("unexpected lists: %+v", allLists)
	}

	w = doJSON(t, router, http.MethodGet, "/api/v1/lists/does-not-exist", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("missing list: status = %d, want 404", w.Code)
	}
}

func TestHandleListProducts_filtered(t *testing.T) {
	srv := newTestServer(t, "")
	router := srv.Router()

	seed := []*models.Product{
		{Name: "Toned Milk", Brand: "Amul", Category: "Dairy", NutritionGrade: "b", Labels: "vegetarian"},
		{Name: "Potato Chips", Brand: "Lays", Category: "Snacks", NutritionGrade: "e", Labels: "vegetarian"},
		{Name: "Spinach", Brand: "Fresh", Category: "Produce", NutritionGrade: "a", Labels: "vegan, vegetarian"},
	}
	for _, p := range seed {
		if _, err := srv.products.Merge(context.Background(), p); err != nil {
			t.Fatal(err)
		}
	}

	w := doJSON(t, router, http.MethodGet, "/api/v1/products?nutrimax=true", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var out struct {
		Products []*models.Product `json:"products"`
		Count    int               `json:"count"`
	}
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.Count != 2 {
		t.Fatalf("nutrimax count = %d, want 2", out.Count)
	}
	if out.Products[0].Name != "Spinach" {
		t.Errorf("grade-a product should sort first, got %q", out.Products[0].Name)
	}

	w = doJSON(t, router, http.MethodGet, "/api/v1/products?category=Snacks", nil)
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.Count != 1 || out.Products[0].Name != "Potato Chips" {
		t.Errorf("category filter: %+v", out)
	}
}

func TestHandleSearchProducts(t *testing.T) {
	srv := newTestServer(t, "")
	router := srv.Router()

	seed := []*models.Product{
		{Name: "Basmati Rice", Brand: "India Gate", Category: "Grains"},
		{Name: "Brown Rice", Brand: "Daawat", Category: "Grains"},
		{Name: "Toned Milk", Brand: "Amul", Category: "Dairy"},
	}
	for _, p := range seed {
		if _, err := srv.products.Merge(context.Background(), p); err != nil {
			t.Fatal(err)
		}
	}
	if err := srv.index.IndexProducts(context.Background(), seed); err != nil {
		t.Fatal(err)
	}

	w := doJSON(t, router, http.MethodGet, "/api/v1/products/search?q=rice", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var out struct {
		Products []*models.Product `json:"products"`
		Count    int               `json:"count"`
	}
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.Count != 2 {
		t.Errorf("rice search count = %d, want 2", out.Count)
	}

	w = doJSON(t, router, http.MethodGet, "/api/v1/products/search", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing q: status = %d, want 400", w.Code)
	}

	w = doJSON(t, router, http.MethodGet, "/api/v1/products/search?q=rice&limit=zero", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad limit: status = %d, want 400", w.Code)
	}
}

func TestHandleAnalyzeCart(t *testing.T) {
	analysis := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req models.AnalyzeCartRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		resp := models.CartAnalysis{
			Items:     []models.AnalyzedItem{{Name: req.Items[0], Label: "green"}},
			Narrative: "Looks balanced.",
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer analysis.Close()

	srv := newTestServer(t, analysis.URL)
	router := srv.Router()

	// Empty cart is rejected before the upstream call.
	w := doJSON(t, router, http.MethodPost, "/api/v1/cart/analyze", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("empty cart: status = %d, want 400", w.Code)
	}

	doJSON(t, router, http.MethodPost, "/api/v1/cart/ingredients", map[string]string{"dish_name": "masala dosa"})

	w = doJSON(t, router, http.MethodPost, "/api/v1/cart/analyze", map[string]string{"persona": "fitness"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var out models.CartAnalysis
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.Narrative != "Looks balanced." {
		t.Errorf("unexpected analysis: %+v", out)
	}
}

func TestHandleAnalyzeCart_notConfigured(t *testing.T) {
	srv := newTestServer(t, "")
	router := srv.Router()
	w := doJSON(t, router, http.MethodPost, "/api/v1/cart/analyze", nil)
	if w.Code != http.StatusNotImplemented {
		t.Errorf("status = %d, want 501", w.Code)
	}
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(t, "")
	w := doJSON(t, srv.Router(), http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d", w.Code)
	}
}
