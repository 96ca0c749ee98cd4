package server

import (
	"fakestore/storefront/internal/domain"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// handleRecordVisit appends a visit record. Outside production the tracking
// is skipped entirely but still reports success, so non-production traffic
// never pollutes the ledger.
func (s *Server) handleRecordVisit(c *gin.Context) {
	if !s.cfg.IsProduction() {
		log.Debug("Non-production mode, skipping visit tracking")
		respondOK(c, nil)
		return
	}

	var event domain.VisitEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		respondErr(c, domain.Invalidf("malformed visit payload"))
		return
	}

	record, err := s.ledger.Append(c.Request.Context(), event)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, record)
}

func (s *Server) handleListVisits(c *gin.Context) {
	respondOK(c, s.ledger.All())
}

func (s *Server) handleDeleteVisit(c *gin.Context) {
	record, err := s.ledger.Delete(c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, record)
}

func (s *Server) handleAnalytics(c *gin.Context) {
	respondOK(c, s.ledger.Analytics())
}
