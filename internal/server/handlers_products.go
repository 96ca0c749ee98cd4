package server

import (
	"math"
	"strconv"
	"strings"

	"fakestore/storefront/internal/domain"
	"fakestore/storefront/internal/listing"

	"github.com/gin-gonic/gin"
)

// handleQueryProducts runs the full pipeline: fetch, stable sort, filter,
// paginate. Query parameters:
//
//	sort=id|price|title, order=asc|desc
//	price_min, price_max, categories=a,b, rating, stock=all|inStock|outStock
//	page, limit
func (s *Server) handleQueryProducts(c *gin.Context) {
	items, err := s.listing.ListItems(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}

	spec := querySpecFrom(c)
	result := s.listing.Query(items, spec)

	page := intQuery(c, "page", 1)
	limit := intQuery(c, "limit", 10)
	respondOK(c, listing.Paginate(result, page, limit))
}

func querySpecFrom(c *gin.Context) listing.QuerySpec {
	spec := listing.QuerySpec{
		Sort: listing.Sort{
			Key:       listing.SortKey(c.DefaultQuery("sort", string(listing.SortByID))),
			Direction: listing.Direction(c.DefaultQuery("order", string(listing.Asc))),
		},
		Filters: listing.Filters{
			StockStatus: listing.StockStatus(c.DefaultQuery("stock", string(listing.StockAll))),
		},
	}

	minStr, maxStr := c.Query("price_min"), c.Query("price_max")
	if minStr != "" || maxStr != "" {
		pr := listing.PriceRange{Min: 0, Max: math.MaxFloat64}
		if v, err := strconv.ParseFloat(minStr, 64); err == nil {
			pr.Min = v
		}
		if v, err := strconv.ParseFloat(maxStr, 64); err == nil {
			pr.Max = v
		}
		spec.Filters.PriceRange = &pr
	}

	if raw := c.Query("categories"); raw != "" {
		spec.Filters.Categories = strings.Split(raw, ",")
	}

	if raw := c.Query("rating"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			spec.Filters.Rating = &v
		}
	}

	return spec
}

func intQuery(c *gin.Context, key string, fallback int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return fallback
	}
	return v
}

func (s *Server) handleProductList(c *gin.Context) {
	products, err := s.listing.ProductList(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, products)
}

func (s *Server) handleSearchProducts(c *gin.Context) {
	products, err := s.listing.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, products)
}

func (s *Server) handleProductDetail(c *gin.Context) {
	info, err := s.listing.PageInfo(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, info)
}

func (s *Server) handleProductsByCategory(c *gin.Context) {
	products, err := s.listing.ByCategory(c.Request.Context(), c.Param("name"))
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, products)
}

type cartProductsRequest struct {
	ProductIDs []string `json:"productIDs"`
}

func (s *Server) handleCartProducts(c *gin.Context) {
	var req cartProductsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, domain.Invalidf("malformed product id list"))
		return
	}

	items, err := s.listing.CartItems(c.Request.Context(), req.ProductIDs)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, items)
}
