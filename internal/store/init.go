package store

import (
	"context"
	"fmt"
	"sync/atomic"

	"fakestore/storefront/internal/catalog"
	"fakestore/storefront/internal/domain"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// Initializer lazily derives the brand and category stores from the catalog.
// One successful pass runs for the process lifetime; concurrent first callers
// share a single flight and a failed pass leaves both stores empty so the
// next caller retries.
type Initializer struct {
	catalog    catalog.Source
	brands     *BrandStore
	categories *CategoryStore

	sf    singleflight.Group
	ready atomic.Bool
}

func NewInitializer(src catalog.Source, brands *BrandStore, categories *CategoryStore) *Initializer {
	i := &Initializer{
		catalog:    src,
		brands:     brands,
		categories: categories,
	}
	brands.ensure = i.Ensure
	categories.ensure = i.Ensure
	return i
}

// Ensure populates the derived stores exactly once. Safe for concurrent use.
func (i *Initializer) Ensure(ctx context.Context) error {
	if i.ready.Load() {
		return nil
	}

	_, err, _ := i.sf.Do("init", func() (any, error) {
		if i.ready.Load() {
			return nil, nil
		}

		products, err := i.catalog.ListAllProducts(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to derive brands: %w", err)
		}

		names, err := i.catalog.ListCategories(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to derive categories: %w", err)
		}

		brands := deriveBrands(products)
		categories := deriveCategories(names)

		// Both stores are swapped in only after every catalog call succeeded,
		// so a failed pass never leaves partial state behind.
		i.brands.replaceAll(brands)
		i.categories.replaceAll(categories)
		i.ready.Store(true)

		log.Infof("✅ Derived stores initialized: %d brands, %d categories", len(brands), len(categories))
		return nil, nil
	})

	return err
}

// Ready reports whether a population pass has completed.
func (i *Initializer) Ready() bool {
	return i.ready.Load()
}

// deriveBrands builds one brand per distinct product category name in
// first-seen order.
func deriveBrands(products []catalog.Product) []domain.Brand {
	seen := make(map[string]bool)
	brands := make([]domain.Brand, 0)

	for _, p := range products {
		if seen[p.Category] {
			continue
		}
		seen[p.Category] = true

		brands = append(brands, domain.Brand{
			ID:   fmt.Sprintf("brand-%d", len(brands)+1),
			Name: domain.Capitalize(p.Category),
		})
	}

	return brands
}

var syntheticLabels = []string{"Popular", "New", "Sale"}

// deriveCategories builds one root per catalog category plus three synthetic
// subcategories per root. Roots come first, then all subcategories.
func deriveCategories(names []string) []domain.Category {
	roots := make([]domain.Category, 0, len(names))
	subs := make([]domain.Category, 0, len(names)*len(syntheticLabels))

	for i, name := range names {
		root := domain.Category{
			ID:       fmt.Sprintf("cat-%d", i+1),
			Name:     domain.Capitalize(name),
			URL:      "/" + domain.Slug(name),
			ParentID: nil,
			IconURL:  nil,
			IconSize: []int{18, 18},
		}
		roots = append(roots, root)

		for j, label := range syntheticLabels {
			parentID := root.ID
			subName := root.Name + " " + label
			subs = append(subs, domain.Category{
				ID:       fmt.Sprintf("subcat-%d-%d", i, j),
				Name:     subName,
				URL:      root.URL + "/" + domain.Slug(subName),
				ParentID: &parentID,
				IconURL:  nil,
				IconSize: []int{16, 16},
			})
		}
	}

	return append(roots, subs...)
}
