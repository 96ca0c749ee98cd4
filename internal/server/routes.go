package server

import "github.com/gin-gonic/gin"

// registerRoutes wires every core operation under /v1.
//
// Brand ops:
//
//	GET    /v1/brands          - list all brands
//	POST   /v1/brands          - add a brand
//	GET    /v1/brands/search   - search brands by name substring
//	GET    /v1/brands/:id      - get one brand
//	PUT    /v1/brands/:id      - rename a brand
//	DELETE /v1/brands/:id      - delete a brand
//
// Category ops:
//
//	GET    /v1/categories           - list all categories
//	GET    /v1/categories/tree      - two-level navigation tree
//	GET    /v1/categories/slug/:slug - find by url slug
//	GET    /v1/categories/path/:id  - root-first ancestor chain
//	POST   /v1/categories           - add a category
//	PUT    /v1/categories/:id       - partial update
//	DELETE /v1/categories/:id       - delete (blocked while referenced)
//
// Listing ops:
//
//	GET  /v1/products                - sort+filter+paginate pipeline
//	GET  /v1/products/list           - normalized table projection
//	GET  /v1/products/search         - search title/description/category
//	GET  /v1/products/detail/:id     - cached page-info projection
//	GET  /v1/products/category/:name - detail projections for one category
//	POST /v1/products/cart           - resolve cart lines by id
//
// Visit ops:
//
//	POST   /v1/visits     - record a visit (no-op outside production)
//	GET    /v1/visits     - full ordered ledger
//	DELETE /v1/visits/:id - delete one record
//	GET    /v1/analytics  - derived frequency report
//
// Cart ops:
//
//	GET    /v1/cart                     - current cart state
//	POST   /v1/cart/items               - add/merge a line
//	PATCH  /v1/cart/items/:productId    - signed quantity change
//	DELETE /v1/cart/items/:productId    - remove a line
//	PUT    /v1/cart/visibility          - toggle the visibility flag
func (s *Server) registerRoutes() {
	s.router.GET("/healthz", s.handleHealth)

	v1 := s.router.Group("/v1")

	brands := v1.Group("/brands")
	brands.GET("", s.handleListBrands)
	brands.POST("", s.handleAddBrand)
	brands.GET("/search", s.handleSearchBrands)
	brands.GET("/:id", s.handleGetBrand)
	brands.PUT("/:id", s.handleUpdateBrand)
	brands.DELETE("/:id", s.handleDeleteBrand)

	categories := v1.Group("/categories")
	categories.GET("", s.handleListCategories)
	categories.GET("/tree", s.handleCategoryTree)
	categories.GET("/slug/:slug", s.handleCategoryBySlug)
	categories.GET("/path/:id", s.handleCategoryPath)
	categories.POST("", s.handleAddCategory)
	categories.PUT("/:id", s.handleUpdateCategory)
	categories.DELETE("/:id", s.handleDeleteCategory)

	products := v1.Group("/products")
	products.GET("", s.handleQueryProducts)
	products.GET("/list", s.handleProductList)
	products.GET("/search", s.handleSearchProducts)
	products.GET("/detail/:id", s.handleProductDetail)
	products.GET("/category/:name", s.handleProductsByCategory)
	products.POST("/cart", s.handleCartProducts)

	visits := v1.Group("/visits")
	visits.POST("", s.handleRecordVisit)
	visits.GET("", s.handleListVisits)
	visits.DELETE("/:id", s.handleDeleteVisit)
	v1.GET("/analytics", s.handleAnalytics)

	cartGroup := v1.Group("/cart")
	cartGroup.GET("", s.handleCartState)
	cartGroup.POST("/items", s.handleCartAdd)
	cartGroup.PATCH("/items/:productId", s.handleCartModifyQuantity)
	cartGroup.DELETE("/items/:productId", s.handleCartRemove)
	cartGroup.PUT("/visibility", s.handleCartVisibility)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok"})
}
