package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"

	"fakestore/storefront/internal/cart"
	"fakestore/storefront/internal/catalog"
	"fakestore/storefront/internal/config"
	"fakestore/storefront/internal/domain"
	"fakestore/storefront/internal/ledger"
	"fakestore/storefront/internal/listing"
	"fakestore/storefront/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type mockSource struct {
	mu       sync.Mutex
	products []catalog.Product
}

func newMockSource() *mockSource {
	return &mockSource{
		products: []catalog.Product{
			{ID: 1, Title: "Backpack", Price: 109.95, Description: "Fits laptops", Category: "men's clothing", Image: "https://img/1.jpg", Rating: domain.Rating{Rate: 3.9, Count: 120}},
			{ID: 2, Title: "Slim Fit T-Shirt", Price: 22.3, Description: "Casual", Category: "men's clothing", Image: "https://img/2.jpg", Rating: domain.Rating{Rate: 4.1, Count: 259}},
			{ID: 3, Title: "Gold Ring", Price: 168, Description: "Inspired ring", Category: "jewelery", Image: "https://img/3.jpg", Rating: domain.Rating{Rate: 4.6, Count: 70}},
		},
	}
}

func (m *mockSource) ListAllProducts(ctx context.Context) ([]catalog.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]catalog.Product, len(m.products))
	copy(out, m.products)
	return out, nil
}

func (m *mockSource) GetProduct(ctx context.Context, id int) (*catalog.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.products {
		if p.ID == id {
			product := p
			return &product, nil
		}
	}
	return nil, fmt.Errorf("%w: no product %d", domain.ErrCatalogUnavailable, id)
}

func (m *mockSource) ListCategories(ctx context.Context) ([]string, error) {
	return []string{"men's clothing", "jewelery"}, nil
}

func (m *mockSource) ListProductsByCategory(ctx context.Context, name string) ([]catalog.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]catalog.Product, 0)
	for _, p := range m.products {
		if p.Category == name {
			out = append(out, p)
		}
	}
	return out, nil
}

func newTestServer(t *testing.T, env string) *Server {
	t.Helper()

	src := newMockSource()
	brands := store.NewBrandStore()
	categories := store.NewCategoryStore()
	store.NewInitializer(src, brands, categories)

	return New(
		config.ServerConfig{Env: env},
		brands,
		categories,
		listing.NewEngine(src),
		ledger.New(src, 0),
		cart.NewStore(context.Background(), cart.NewMemoryPersister()),
	)
}

type envelope struct {
	Res   json.RawMessage `json:"res"`
	Error string          `json:"error"`
}

func do(t *testing.T, s *Server, method, path string, body any) (int, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec.Code, env
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t, "development")

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestBrandEndpoints(t *testing.T) {
	s := newTestServer(t, "development")

	t.Run("list derives from the catalog", func(t *testing.T) {
		code, env := do(t, s, http.MethodGet, "/v1/brands", nil)
		require.Equal(t, http.StatusOK, code)

		var brands []domain.Brand
		require.NoError(t, json.Unmarshal(env.Res, &brands))
		require.Len(t, brands, 2)
		assert.Equal(t, domain.Brand{ID: "brand-1", Name: "Men's clothing"}, brands[0])
		assert.Equal(t, domain.Brand{ID: "brand-2", Name: "Jewelery"}, brands[1])
	})

	t.Run("add", func(t *testing.T) {
		code, env := do(t, s, http.MethodPost, "/v1/brands", gin.H{"name": "Outdoors"})
		require.Equal(t, http.StatusOK, code)

		var brand domain.Brand
		require.NoError(t, json.Unmarshal(env.Res, &brand))
		assert.Equal(t, "brand-3", brand.ID)
	})

	t.Run("add without a name", func(t *testing.T) {
		code, env := do(t, s, http.MethodPost, "/v1/brands", gin.H{})
		assert.Equal(t, http.StatusBadRequest, code)
		assert.NotEmpty(t, env.Error)
		assert.Nil(t, env.Res)
	})

	t.Run("get unknown id", func(t *testing.T) {
		code, env := do(t, s, http.MethodGet, "/v1/brands/brand-99", nil)
		assert.Equal(t, http.StatusNotFound, code)
		assert.NotEmpty(t, env.Error)
	})

	t.Run("search", func(t *testing.T) {
		code, env := do(t, s, http.MethodGet, "/v1/brands/search?q=jewel", nil)
		require.Equal(t, http.StatusOK, code)

		var brands []domain.Brand
		require.NoError(t, json.Unmarshal(env.Res, &brands))
		require.Len(t, brands, 1)
		assert.Equal(t, "brand-2", brands[0].ID)
	})
}

func TestCategoryEndpoints(t *testing.T) {
	s := newTestServer(t, "development")

	t.Run("tree", func(t *testing.T) {
		code, env := do(t, s, http.MethodGet, "/v1/categories/tree", nil)
		require.Equal(t, http.StatusOK, code)

		var tree []domain.Group
		require.NoError(t, json.Unmarshal(env.Res, &tree))
		require.Len(t, tree, 2)
		assert.Equal(t, "Men's clothing", tree[0].Group.Name)
		require.Len(t, tree[0].Children, 3)
		assert.Equal(t, "Men's clothing Popular", tree[0].Children[0].Category.Name)
		assert.Empty(t, tree[0].Children[0].Grandchildren)
	})

	t.Run("delete root with children conflicts", func(t *testing.T) {
		code, env := do(t, s, http.MethodDelete, "/v1/categories/cat-1", nil)
		assert.Equal(t, http.StatusConflict, code)
		assert.NotEmpty(t, env.Error)
	})

	t.Run("path", func(t *testing.T) {
		code, env := do(t, s, http.MethodGet, "/v1/categories/path/subcat-0-0", nil)
		require.Equal(t, http.StatusOK, code)

		var path []domain.Category
		require.NoError(t, json.Unmarshal(env.Res, &path))
		require.Len(t, path, 2)
		assert.Equal(t, "cat-1", path[0].ID)
	})

	t.Run("slug", func(t *testing.T) {
		code, env := do(t, s, http.MethodGet, "/v1/categories/slug/jewelery", nil)
		require.Equal(t, http.StatusOK, code)

		var category domain.Category
		require.NoError(t, json.Unmarshal(env.Res, &category))
		assert.Equal(t, "cat-2", category.ID)
	})
}

func TestQueryProductsEndpoint(t *testing.T) {
	s := newTestServer(t, "development")

	code, env := do(t, s, http.MethodGet, "/v1/products?sort=price&order=asc&price_min=20&price_max=120", nil)
	require.Equal(t, http.StatusOK, code)

	var page listing.Page
	require.NoError(t, json.Unmarshal(env.Res, &page))
	require.Len(t, page.Products, 2)
	assert.Equal(t, 2, page.Products[0].ID)
	assert.Equal(t, 1, page.Products[1].ID)
	assert.Equal(t, 2, page.Total)
	assert.Equal(t, 1, page.TotalPages)
}

func TestProductDetailEndpoint(t *testing.T) {
	s := newTestServer(t, "development")

	code, env := do(t, s, http.MethodGet, "/v1/products/detail/3", nil)
	require.Equal(t, http.StatusOK, code)

	var info domain.ProductPageInfo
	require.NoError(t, json.Unmarshal(env.Res, &info))
	assert.Equal(t, "Gold Ring", info.Name)

	code, _ = do(t, s, http.MethodGet, "/v1/products/detail/oops", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = do(t, s, http.MethodGet, "/v1/products/detail/404", nil)
	assert.Equal(t, http.StatusBadGateway, code)
}

func TestCartProductsEndpoint(t *testing.T) {
	s := newTestServer(t, "development")

	code, env := do(t, s, http.MethodPost, "/v1/products/cart", gin.H{"productIDs": []string{"1", "3"}})
	require.Equal(t, http.StatusOK, code)

	var items []domain.CartListItem
	require.NoError(t, json.Unmarshal(env.Res, &items))
	require.Len(t, items, 2)
	assert.Equal(t, "Backpack", items[0].Name)
	assert.Equal(t, "Gold Ring", items[1].Name)

	code, _ = do(t, s, http.MethodPost, "/v1/products/cart", gin.H{"productIDs": []string{}})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestVisitEndpoints(t *testing.T) {
	t.Run("non-production requests are acknowledged and dropped", func(t *testing.T) {
		s := newTestServer(t, "development")

		code, env := do(t, s, http.MethodPost, "/v1/visits", gin.H{"pageType": "MAIN", "pagePath": "/"})
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, "null", string(env.Res))

		code, env = do(t, s, http.MethodGet, "/v1/visits", nil)
		require.Equal(t, http.StatusOK, code)
		var records []domain.VisitRecord
		require.NoError(t, json.Unmarshal(env.Res, &records))
		assert.Empty(t, records)
	})

	t.Run("production requests are recorded", func(t *testing.T) {
		s := newTestServer(t, "production")

		code, env := do(t, s, http.MethodPost, "/v1/visits", gin.H{"pageType": "PRODUCT", "pagePath": "/product/1", "productID": "1"})
		require.Equal(t, http.StatusOK, code)

		var record domain.VisitRecord
		require.NoError(t, json.Unmarshal(env.Res, &record))
		assert.Contains(t, record.ID, "visit_")
		require.NotNil(t, record.Product)
		assert.Equal(t, "Backpack", record.Product.Name)

		code, env = do(t, s, http.MethodGet, "/v1/analytics", nil)
		require.Equal(t, http.StatusOK, code)

		var analytics domain.Analytics
		require.NoError(t, json.Unmarshal(env.Res, &analytics))
		assert.Equal(t, 1, analytics.TotalVisits)
		assert.Equal(t, 1, analytics.ByPageType[domain.PageTypeProduct])
	})

	t.Run("invalid page type", func(t *testing.T) {
		s := newTestServer(t, "production")

		code, env := do(t, s, http.MethodPost, "/v1/visits", gin.H{"pageType": "CHECKOUT"})
		assert.Equal(t, http.StatusBadRequest, code)
		assert.NotEmpty(t, env.Error)
	})

	t.Run("delete", func(t *testing.T) {
		s := newTestServer(t, "production")

		_, env := do(t, s, http.MethodPost, "/v1/visits", gin.H{"pageType": "MAIN", "pagePath": "/"})
		var record domain.VisitRecord
		require.NoError(t, json.Unmarshal(env.Res, &record))

		code, _ := do(t, s, http.MethodDelete, "/v1/visits/"+record.ID, nil)
		assert.Equal(t, http.StatusOK, code)

		code, _ = do(t, s, http.MethodDelete, "/v1/visits/"+record.ID, nil)
		assert.Equal(t, http.StatusNotFound, code)
	})
}

func TestAnalyticsEmptyBuckets(t *testing.T) {
	s := newTestServer(t, "development")

	code, env := do(t, s, http.MethodGet, "/v1/analytics", nil)
	require.Equal(t, http.StatusOK, code)

	var analytics domain.Analytics
	require.NoError(t, json.Unmarshal(env.Res, &analytics))
	assert.Zero(t, analytics.TotalVisits)
	assert.Equal(t, map[domain.PageType]int{
		domain.PageTypeMain:    0,
		domain.PageTypeList:    0,
		domain.PageTypeProduct: 0,
	}, analytics.ByPageType)
}

func TestCartEndpoints(t *testing.T) {
	s := newTestServer(t, "development")

	cartState := func(env envelope) domain.CartState {
		var state domain.CartState
		require.NoError(t, json.Unmarshal(env.Res, &state))
		return state
	}

	code, env := do(t, s, http.MethodGet, "/v1/cart", nil)
	require.Equal(t, http.StatusOK, code)
	state := cartState(env)
	assert.Empty(t, state.Items)
	assert.False(t, state.IsVisible)

	code, env = do(t, s, http.MethodPost, "/v1/cart/items", gin.H{
		"productId": 1, "productName": "Backpack", "imgUrl": "https://img/1.jpg", "price": 109.95, "quantity": 2,
	})
	require.Equal(t, http.StatusOK, code)
	state = cartState(env)
	require.Len(t, state.Items, 1)
	assert.True(t, state.IsVisible)

	// A second add of the same product merges by id.
	code, env = do(t, s, http.MethodPost, "/v1/cart/items", gin.H{
		"productId": 1, "productName": "Backpack", "imgUrl": "https://img/1.jpg", "price": 109.95, "quantity": 3,
	})
	require.Equal(t, http.StatusOK, code)
	state = cartState(env)
	require.Len(t, state.Items, 1)
	assert.Equal(t, 5, state.Items[0].Quantity)

	code, env = do(t, s, http.MethodPatch, "/v1/cart/items/1", gin.H{"amount": -5})
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, cartState(env).Items)

	code, _ = do(t, s, http.MethodPatch, "/v1/cart/items/oops", gin.H{"amount": 1})
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = do(t, s, http.MethodPut, "/v1/cart/visibility", gin.H{"visible": false})
	require.Equal(t, http.StatusOK, code)
	assert.False(t, cartState(env).IsVisible)
}

func TestCartRemoveEndpoint(t *testing.T) {
	s := newTestServer(t, "development")

	_, _ = do(t, s, http.MethodPost, "/v1/cart/items", gin.H{
		"productId": 2, "productName": "Shirt", "imgUrl": "https://img/2.jpg", "price": 22.3, "quantity": 1,
	})

	code, env := do(t, s, http.MethodDelete, "/v1/cart/items/2", nil)
	require.Equal(t, http.StatusOK, code)

	var state domain.CartState
	require.NoError(t, json.Unmarshal(env.Res, &state))
	assert.Empty(t, state.Items)
}

func TestResponseEnvelopeIsDiscriminated(t *testing.T) {
	s := newTestServer(t, "development")

	// Success carries res and no error key.
	req := httptest.NewRequest(http.MethodGet, "/v1/brands", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	var success map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &success))
	assert.Contains(t, success, "res")
	assert.NotContains(t, success, "error")

	// Failure carries error and no res key.
	req = httptest.NewRequest(http.MethodGet, "/v1/brands/brand-99", nil)
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	var failure map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &failure))
	assert.Contains(t, failure, "error")
	assert.NotContains(t, failure, "res")
}
