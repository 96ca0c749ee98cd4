package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"fakestore/storefront/internal/catalog"
	"fakestore/storefront/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSource struct {
	mu                 sync.Mutex
	listProductCalls   int
	listCategoryCalls  int
	getProductCalls    int
	products           []catalog.Product
	categories         []string
	failListProducts   error
	failListCategories error
}

func (m *mockSource) ListAllProducts(ctx context.Context) ([]catalog.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listProductCalls++
	if m.failListProducts != nil {
		return nil, m.failListProducts
	}
	return m.products, nil
}

func (m *mockSource) GetProduct(ctx context.Context, id int) (*catalog.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getProductCalls++
	for _, p := range m.products {
		if p.ID == id {
			product := p
			return &product, nil
		}
	}
	return nil, fmt.Errorf("%w: no product %d", domain.ErrCatalogUnavailable, id)
}

func (m *mockSource) ListCategories(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCategoryCalls++
	if m.failListCategories != nil {
		return nil, m.failListCategories
	}
	return m.categories, nil
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

func newMockSource() *mockSource {
	return &mockSource{
		products: []catalog.Product{
			{ID: 1, Title: "Gold Ring", Price: 120, Category: "jewelery", Rating: domain.Rating{Rate: 4.1, Count: 20}},
			{ID: 2, Title: "USB Cable", Price: 10, Category: "electronics", Rating: domain.Rating{Rate: 3.9, Count: 120}},
			{ID: 3, Title: "Silver Chain", Price: 60, Category: "jewelery", Rating: domain.Rating{Rate: 4.7, Count: 55}},
		},
		categories: []string{"electronics", "jewelery"},
	}
}

func newTestStores(t *testing.T) (*mockSource, *BrandStore, *CategoryStore, *Initializer) {
	t.Helper()
	src := newMockSource()
	brands := NewBrandStore()
	categories := NewCategoryStore()
	init := NewInitializer(src, brands, categories)
	return src, brands, categories, init
}

func TestInitializerEnsure(t *testing.T) {
	t.Run("sequential calls fetch the catalog exactly once", func(t *testing.T) {
		src, _, _, init := newTestStores(t)

		require.NoError(t, init.Ensure(context.Background()))
		require.NoError(t, init.Ensure(context.Background()))

		assert.Equal(t, 1, src.listProductCalls)
		assert.Equal(t, 1, src.listCategoryCalls)
		assert.True(t, init.Ready())
	})

	t.Run("concurrent first callers share a single flight", func(t *testing.T) {
		src, _, _, init := newTestStores(t)

		var wg sync.WaitGroup
		errs := make([]error, 16)
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				errs[i] = init.Ensure(context.Background())
			}(i)
		}
		wg.Wait()

		for _, err := range errs {
			require.NoError(t, err)
		}
		assert.Equal(t, 1, src.listProductCalls)
		assert.Equal(t, 1, src.listCategoryCalls)
	})

	t.Run("catalog failure leaves stores empty and retryable", func(t *testing.T) {
		src, brands, categories, init := newTestStores(t)
		src.failListProducts = fmt.Errorf("%w: connection refused", domain.ErrCatalogUnavailable)

		err := init.Ensure(context.Background())
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrCatalogUnavailable))
		assert.False(t, init.Ready())

		brands.mu.Lock()
		assert.Empty(t, brands.brands)
		brands.mu.Unlock()
		categories.mu.Lock()
		assert.Empty(t, categories.categories)
		categories.mu.Unlock()

		// A later call retries and succeeds.
		src.mu.Lock()
		src.failListProducts = nil
		src.mu.Unlock()

		require.NoError(t, init.Ensure(context.Background()))
		assert.True(t, init.Ready())
		assert.Equal(t, 2, src.listProductCalls)
	})

	t.Run("second catalog call failing retains nothing", func(t *testing.T) {
		src, brands, _, init := newTestStores(t)
		src.failListCategories = fmt.Errorf("%w: timeout", domain.ErrCatalogUnavailable)

		require.Error(t, init.Ensure(context.Background()))
		assert.False(t, init.Ready())

		brands.mu.Lock()
		assert.Empty(t, brands.brands)
		brands.mu.Unlock()
	})
}

func TestDeriveBrands(t *testing.T) {
	src := newMockSource()

	brands := deriveBrands(src.products)

	// One brand per distinct category name, first-seen order, ordinal ids.
	require.Len(t, brands, 2)
	assert.Equal(t, domain.Brand{ID: "brand-1", Name: "Jewelery"}, brands[0])
	assert.Equal(t, domain.Brand{ID: "brand-2", Name: "Electronics"}, brands[1])
}

func TestDeriveCategories(t *testing.T) {
	categories := deriveCategories([]string{"electronics", "men's clothing"})

	// Two roots plus three synthetic subcategories each, roots first.
	require.Len(t, categories, 8)

	root := categories[0]
	assert.Equal(t, "cat-1", root.ID)
	assert.Equal(t, "Electronics", root.Name)
	assert.Equal(t, "/electronics", root.URL)
	assert.Nil(t, root.ParentID)
	assert.Equal(t, []int{18, 18}, root.IconSize)

	second := categories[1]
	assert.Equal(t, "cat-2", second.ID)
	assert.Equal(t, "Men's clothing", second.Name)
	assert.Equal(t, "/men's-clothing", second.URL)

	sub := categories[2]
	assert.Equal(t, "subcat-0-0", sub.ID)
	assert.Equal(t, "Electronics Popular", sub.Name)
	assert.Equal(t, "/electronics/electronics-popular", sub.URL)
	require.NotNil(t, sub.ParentID)
	assert.Equal(t, "cat-1", *sub.ParentID)
	assert.Equal(t, []int{16, 16}, sub.IconSize)

	labels := []string{"Popular", "New", "Sale"}
	for j, label := range labels {
		assert.Equal(t, "Electronics "+label, categories[2+j].Name)
	}
}
