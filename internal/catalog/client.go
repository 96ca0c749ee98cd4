package catalog

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"fakestore/storefront/internal/config"
	"fakestore/storefront/internal/domain"

	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
	"resty.dev/v3"
)

// Product is the raw upstream catalog record before any projection.
type Product struct {
	ID          int           `json:"id"`
	Title       string        `json:"title"`
	Price       float64       `json:"price"`
	Description string        `json:"description"`
	Category    string        `json:"category"`
	Image       string        `json:"image"`
	Rating      domain.Rating `json:"rating"`
}

// Source is the upstream catalog capability contract. Every method fails
// with domain.ErrCatalogUnavailable on transport or decode errors.
type Source interface {
	ListAllProducts(ctx context.Context) ([]Product, error)
	GetProduct(ctx context.Context, id int) (*Product, error)
	ListCategories(ctx context.Context) ([]string, error)
	ListProductsByCategory(ctx context.Context, name string) ([]Product, error)
}

type fakeStoreClient struct {
	rl         ratelimit.Limiter
	baseURL    string
	httpClient *resty.Client
}

// NewFakeStoreClient builds a Source over the Fake Store JSON API.
func NewFakeStoreClient(cfg config.CatalogConfig) Source {
	client := resty.New().
		SetTimeout(time.Duration(cfg.Timeout)*time.Second).
		SetRetryCount(cfg.MaxRetries).
		SetRetryWaitTime(2*time.Second).
		SetRetryMaxWaitTime(10*time.Second).
		SetHeader("Accept", "application/json")

	return &fakeStoreClient{
		rl:         ratelimit.New(cfg.MaxRequestsPerSecond),
		baseURL:    cfg.BaseURL,
		httpClient: client,
	}
}

func (c *fakeStoreClient) ListAllProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := c.getJSON(ctx, "/products", &products); err != nil {
		return nil, err
	}

	log.Debugf("Fetched %d products from catalog", len(products))
	return products, nil
}

func (c *fakeStoreClient) GetProduct(ctx context.Context, id int) (*Product, error) {
	var product Product
	if err := c.getJSON(ctx, fmt.Sprintf("/products/%d", id), &product); err != nil {
		return nil, err
	}

	// The upstream answers missing ids with an empty 200 body.
	if product.ID == 0 {
		return nil, fmt.Errorf("%w: empty payload for product %d", domain.ErrCatalogUnavailable, id)
	}

	return &product, nil
}

func (c *fakeStoreClient) ListCategories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := c.getJSON(ctx, "/products/categories", &categories); err != nil {
		return nil, err
	}

	log.Debugf("Fetched %d categories from catalog", len(categories))
	return categories, nil
}

func (c *fakeStoreClient) ListProductsByCategory(ctx context.Context, name string) ([]Product, error) {
	var products []Product
	if err := c.getJSON(ctx, "/products/category/"+url.PathEscape(name), &products); err != nil {
		return nil, err
	}

	return products, nil
}

func (c *fakeStoreClient) getJSON(ctx context.Context, path string, out any) error {
	c.rl.Take()

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(out).
		Get(c.baseURL + path)

	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%w: request cancelled: %v", domain.ErrCatalogUnavailable, ctx.Err())
		}
		return fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}

	if resp.IsError() {
		return fmt.Errorf("%w: HTTP %d %s", domain.ErrCatalogUnavailable, resp.StatusCode(), resp.Status())
	}

	return nil
}
