package server

import (
	"strconv"

	"fakestore/storefront/internal/domain"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleCartState(c *gin.Context) {
	respondOK(c, s.cart.State())
}

func (s *Server) handleCartAdd(c *gin.Context) {
	var line domain.CartLine
	if err := c.ShouldBindJSON(&line); err != nil {
		respondErr(c, domain.Invalidf("malformed cart line payload"))
		return
	}

	state, err := s.cart.Add(c.Request.Context(), line)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, state)
}

type modifyQuantityRequest struct {
	Amount int `json:"amount"`
}

func (s *Server) handleCartModifyQuantity(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		respondErr(c, domain.Invalidf("invalid product id %q", c.Param("productId")))
		return
	}

	var req modifyQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, domain.Invalidf("malformed quantity payload"))
		return
	}

	respondOK(c, s.cart.ModifyQuantity(c.Request.Context(), productID, req.Amount))
}

func (s *Server) handleCartRemove(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		respondErr(c, domain.Invalidf("invalid product id %q", c.Param("productId")))
		return
	}

	respondOK(c, s.cart.Remove(c.Request.Context(), productID))
}

type visibilityRequest struct {
	Visible bool `json:"visible"`
}

func (s *Server) handleCartVisibility(c *gin.Context) {
	var req visibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, domain.Invalidf("malformed visibility payload"))
		return
	}

	respondOK(c, s.cart.ToggleVisibility(c.Request.Context(), req.Visible))
}
