package ledger

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"fakestore/storefront/internal/catalog"
	"fakestore/storefront/internal/domain"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const defaultCapacity = 1000

// Ledger is the capacity-bounded page-visit log. Records are kept most
// recent first and the oldest entries are truncated away after every append.
type Ledger struct {
	catalog  catalog.Source
	capacity int

	mu      sync.Mutex
	records []domain.VisitRecord
}

func New(src catalog.Source, capacity int) *Ledger {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &Ledger{
		catalog:  src,
		capacity: capacity,
	}
}

// Append validates the event, enriches it with a best-effort product lookup
// and prepends the resulting record. Enrichment failures never fail the
// append; they only leave the product summary nil.
func (l *Ledger) Append(ctx context.Context, event domain.VisitEvent) (*domain.VisitRecord, error) {
	if err := domain.Validate(event); err != nil {
		return nil, err
	}

	var product *domain.VisitProduct
	if event.ProductID != nil && *event.ProductID != "" {
		if id, err := strconv.Atoi(*event.ProductID); err == nil {
			p, err := l.catalog.GetProduct(ctx, id)
			if err != nil {
				log.Warnf("Visit enrichment failed for product %s: %v", *event.ProductID, err)
			} else {
				product = &domain.VisitProduct{
					Name:     p.Title,
					Category: domain.VisitProductCategory{Name: p.Category},
				}
			}
		}
	}

	now := time.Now()
	record := domain.VisitRecord{
		ID:               fmt.Sprintf("visit_%d_%s", now.UnixMilli(), uuid.NewString()),
		Time:             now,
		PageType:         event.PageType,
		PagePath:         event.PagePath,
		ProductID:        event.ProductID,
		DeviceResolution: event.DeviceResolution,
		Product:          product,
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.records = append([]domain.VisitRecord{record}, l.records...)
	if len(l.records) > l.capacity {
		l.records = l.records[:l.capacity]
	}

	return &record, nil
}

// Delete removes a single record by id and returns it.
func (l *Ledger) Delete(id string) (*domain.VisitRecord, error) {
	if id == "" {
		return nil, domain.Invalidf("visit id is required")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for i, r := range l.records {
		if r.ID == id {
			deleted := r
			l.records = append(l.records[:i], l.records[i+1:]...)
			return &deleted, nil
		}
	}
	return nil, fmt.Errorf("visit %s: %w", id, domain.ErrNotFound)
}

// All returns a copy of the live ordered records, most recent first.
func (l *Ledger) All() []domain.VisitRecord {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]domain.VisitRecord, len(l.records))
	copy(out, l.records)
	return out
}

// Analytics counts frequencies over the live ledger. Nothing is cached; the
// report reflects the ledger at call time.
func (l *Ledger) Analytics() domain.Analytics {
	l.mu.Lock()
	defer l.mu.Unlock()

	analytics := domain.Analytics{
		TotalVisits:   len(l.records),
		ByPageType:    make(map[domain.PageType]int, len(domain.PageTypes)),
		ByDevice:      make(map[string]int),
		TopProducts:   make(map[string]int),
		TopCategories: make(map[string]int),
	}

	// All three page type buckets are always present, even at zero.
	for _, pt := range domain.PageTypes {
		analytics.ByPageType[pt] = 0
	}

	for _, r := range l.records {
		analytics.ByPageType[r.PageType]++

		if r.DeviceResolution != nil && *r.DeviceResolution != "" {
			analytics.ByDevice[*r.DeviceResolution]++
		}

		if r.Product != nil {
			analytics.TopProducts[r.Product.Name]++
			if r.Product.Category.Name != "" {
				analytics.TopCategories[r.Product.Category.Name]++
			}
		}
	}

	return analytics
}
