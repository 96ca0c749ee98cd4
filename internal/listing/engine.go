package listing

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"fakestore/storefront/internal/catalog"
	"fakestore/storefront/internal/domain"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type SortKey string

const (
	SortByID    SortKey = "id"
	SortByPrice SortKey = "price"
	SortByTitle SortKey = "title"
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

type Sort struct {
	Key       SortKey   `json:"key"`
	Direction Direction `json:"direction"`
}

type StockStatus string

const (
	StockAll StockStatus = "all"
	StockIn  StockStatus = "inStock"
	StockOut StockStatus = "outStock"
)

type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Filters is a conjunction of independent predicates. Each one is vacuously
// true while its constraint is absent.
type Filters struct {
	PriceRange  *PriceRange `json:"priceRange"`
	Categories  []string    `json:"categories"`
	Rating      *float64    `json:"rating"`
	StockStatus StockStatus `json:"stockStatus"`
}

type QuerySpec struct {
	Sort    Sort    `json:"sort"`
	Filters Filters `json:"filters"`
}

// Page is one pagination window over the full product list.
type Page struct {
	Products    []domain.ListItem `json:"products"`
	Total       int               `json:"total"`
	CurrentPage int               `json:"currentPage"`
	TotalPages  int               `json:"totalPages"`
}

// Engine serves every product read path: the sort/filter pipeline,
// pagination, search, and the page-info read-through cache.
type Engine struct {
	catalog  catalog.Source
	collator *collate.Collator

	mu       sync.Mutex
	pageInfo map[string]*domain.ProductPageInfo
}

func NewEngine(src catalog.Source) *Engine {
	return &Engine{
		catalog:  src,
		collator: collate.New(language.English),
		pageInfo: make(map[string]*domain.ProductPageInfo),
	}
}

// Query sorts a copy of the input with a stable single-key comparator and
// then applies the filters. The filter step deliberately runs after sorting;
// the order is observable through index-based tie breaks. The input slice is
// never mutated.
func (e *Engine) Query(items []domain.ListItem, spec QuerySpec) []domain.ListItem {
	sorted := make([]domain.ListItem, len(items))
	copy(sorted, items)

	sort.SliceStable(sorted, func(i, j int) bool {
		return e.less(sorted[i], sorted[j], spec.Sort)
	})

	filtered := make([]domain.ListItem, 0, len(sorted))
	for _, item := range sorted {
		if matches(item, spec.Filters) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

func (e *Engine) less(a, b domain.ListItem, s Sort) bool {
	switch s.Key {
	case SortByPrice:
		if s.Direction == Desc {
			return a.Price > b.Price
		}
		return a.Price < b.Price
	case SortByTitle:
		cmp := e.collator.CompareString(a.Name, b.Name)
		if s.Direction == Desc {
			return cmp > 0
		}
		return cmp < 0
	default: // SortByID
		if s.Direction == Desc {
			return a.ID > b.ID
		}
		return a.ID < b.ID
	}
}

func matches(item domain.ListItem, f Filters) bool {
	if f.PriceRange != nil {
		if item.Price < f.PriceRange.Min || item.Price > f.PriceRange.Max {
			return false
		}
	}

	if len(f.Categories) > 0 {
		found := false
		for _, c := range f.Categories {
			if c == item.Category {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if f.Rating != nil && item.Rating.Rate < *f.Rating {
		return false
	}

	if f.StockStatus != "" && f.StockStatus != StockAll {
		if f.StockStatus == StockIn && !item.IsAvailable {
			return false
		}
		if f.StockStatus == StockOut && item.IsAvailable {
			return false
		}
	}

	return true
}

// Paginate slices one page out of items. Page numbers start at 1.
func Paginate(items []domain.ListItem, page, limit int) Page {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	start := (page - 1) * limit
	end := start + limit
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}

	return Page{
		Products:    items[start:end],
		Total:       len(items),
		CurrentPage: page,
		TotalPages:  (len(items) + limit - 1) / limit,
	}
}

// ListItems fetches the full catalog in listing projection.
func (e *Engine) ListItems(ctx context.Context) ([]domain.ListItem, error) {
	products, err := e.catalog.ListAllProducts(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]domain.ListItem, 0, len(products))
	for _, p := range products {
		items = append(items, toListItem(p))
	}
	return items, nil
}

// ProductList fetches the normalized table-view projection.
func (e *Engine) ProductList(ctx context.Context) ([]domain.ProductListItem, error) {
	products, err := e.catalog.ListAllProducts(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]domain.ProductListItem, 0, len(products))
	for _, p := range products {
		items = append(items, domain.ProductListItem{
			ID:   strconv.Itoa(p.ID),
			Name: p.Title,
			Category: domain.CategoryRef{
				ID:   domain.Slug(p.Category),
				Name: p.Category,
			},
		})
	}
	return items, nil
}

// PageInfo resolves the detail projection through an unbounded read-through
// cache keyed by product id. Entries are never evicted.
func (e *Engine) PageInfo(ctx context.Context, productID string) (*domain.ProductPageInfo, error) {
	if productID == "" {
		return nil, domain.Invalidf("product id is required")
	}

	e.mu.Lock()
	if cached, ok := e.pageInfo[productID]; ok {
		e.mu.Unlock()
		return cached, nil
	}
	e.mu.Unlock()

	id, err := strconv.Atoi(productID)
	if err != nil {
		return nil, domain.Invalidf("invalid product id %q", productID)
	}

	product, err := e.catalog.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	info := toPageInfo(*product)

	e.mu.Lock()
	e.pageInfo[productID] = info
	e.mu.Unlock()

	return info, nil
}

// ByCategory fetches every product of one catalog category in detail form.
func (e *Engine) ByCategory(ctx context.Context, category string) ([]domain.ProductPageInfo, error) {
	products, err := e.catalog.ListProductsByCategory(ctx, category)
	if err != nil {
		return nil, err
	}

	infos := make([]domain.ProductPageInfo, 0, len(products))
	for _, p := range products {
		infos = append(infos, *toPageInfo(p))
	}
	return infos, nil
}

// Search matches the query case-insensitively against title, description and
// category.
func (e *Engine) Search(ctx context.Context, query string) ([]domain.ProductPageInfo, error) {
	products, err := e.catalog.ListAllProducts(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	infos := make([]domain.ProductPageInfo, 0)
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Title), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle) ||
			strings.Contains(strings.ToLower(p.Category), needle) {
			infos = append(infos, *toPageInfo(p))
		}
	}
	return infos, nil
}

// CartItems resolves cart lines in parallel, one catalog lookup per id.
func (e *Engine) CartItems(ctx context.Context, productIDs []string) ([]domain.CartListItem, error) {
	if len(productIDs) == 0 {
		return nil, domain.Invalidf("product id list is empty")
	}

	items := make([]domain.CartListItem, len(productIDs))
	g, ctx := errgroup.WithContext(ctx)

	for i, productID := range productIDs {
		id, err := strconv.Atoi(productID)
		if err != nil {
			return nil, domain.Invalidf("invalid product id %q", productID)
		}

		g.Go(func() error {
			product, err := e.catalog.GetProduct(ctx, id)
			if err != nil {
				return err
			}
			items[i] = domain.CartListItem{
				ID:        strconv.Itoa(product.ID),
				Name:      product.Title,
				Images:    []string{product.Image},
				Price:     product.Price,
				SalePrice: nil,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return items, nil
}

func toListItem(p catalog.Product) domain.ListItem {
	return domain.ListItem{
		ID:          p.ID,
		Name:        p.Title,
		IsAvailable: true,
		Image:       p.Image,
		Price:       p.Price,
		Rating:      p.Rating,
		Category:    p.Category,
	}
}

func toPageInfo(p catalog.Product) *domain.ProductPageInfo {
	desc := p.Description
	return &domain.ProductPageInfo{
		ID:              strconv.Itoa(p.ID),
		Name:            p.Title,
		IsAvailable:     true,
		Desc:            &desc,
		Images:          []string{p.Image},
		OptionSets:      []string{},
		SpecialFeatures: []string{},
		Price:           p.Price,
		SalePrice:       nil,
		Specifications: []domain.Specification{
			{
				GroupName: "General",
				Specs: []domain.SpecEntry{
					{Name: "Category", Value: p.Category},
					{Name: "Rating", Value: fmt.Sprintf("%g/5 (%d reviews)", p.Rating.Rate, p.Rating.Count)},
				},
			},
		},
		Path: categoryPath(p.Category),
	}
}

func categoryPath(category string) []domain.Path {
	rootID := "root"
	return []domain.Path{
		{ID: rootID, ParentID: nil, Name: "Home", URL: "/"},
		{
			ID:       domain.Slug(category),
			ParentID: &rootID,
			Name:     category,
			URL:      "/category/" + domain.Slug(category),
		},
	}
}
