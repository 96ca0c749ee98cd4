package server

import (
	"errors"
	"net/http"

	"fakestore/storefront/internal/domain"

	"github.com/gin-gonic/gin"
)

func respondOK(c *gin.Context, res any) {
	c.JSON(http.StatusOK, gin.H{"res": res})
}

func respondErr(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrHasChildren):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrCatalogUnavailable):
		status = http.StatusBadGateway
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// Brand handlers

type addBrandRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleListBrands(c *gin.Context) {
	brands, err := s.brands.List(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, brands)
}

func (s *Server) handleAddBrand(c *gin.Context) {
	var req addBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, domain.Invalidf("malformed brand payload"))
		return
	}

	brand, err := s.brands.Add(c.Request.Context(), req.Name)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, brand)
}

func (s *Server) handleSearchBrands(c *gin.Context) {
	brands, err := s.brands.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, brands)
}

func (s *Server) handleGetBrand(c *gin.Context) {
	brand, err := s.brands.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, brand)
}

func (s *Server) handleUpdateBrand(c *gin.Context) {
	var req addBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, domain.Invalidf("malformed brand payload"))
		return
	}

	brand, err := s.brands.Update(c.Request.Context(), domain.UpdateBrandInput{
		ID:   c.Param("id"),
		Name: req.Name,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, brand)
}

func (s *Server) handleDeleteBrand(c *gin.Context) {
	brand, err := s.brands.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, brand)
}

// Category handlers

func (s *Server) handleListCategories(c *gin.Context) {
	categories, err := s.categories.List(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, categories)
}

func (s *Server) handleCategoryTree(c *gin.Context) {
	tree, err := s.categories.Tree(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, tree)
}

func (s *Server) handleCategoryBySlug(c *gin.Context) {
	category, err := s.categories.BySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, category)
}

func (s *Server) handleCategoryPath(c *gin.Context) {
	path, err := s.categories.Path(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, path)
}

func (s *Server) handleAddCategory(c *gin.Context) {
	var input domain.AddCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondErr(c, domain.Invalidf("malformed category payload"))
		return
	}

	category, err := s.categories.Add(c.Request.Context(), input)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, category)
}

func (s *Server) handleUpdateCategory(c *gin.Context) {
	var input domain.UpdateCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondErr(c, domain.Invalidf("malformed category payload"))
		return
	}
	input.ID = c.Param("id")

	category, err := s.categories.Update(c.Request.Context(), input)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, category)
}

func (s *Server) handleDeleteCategory(c *gin.Context) {
	category, err := s.categories.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, category)
}
