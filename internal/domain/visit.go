package domain

import (
	"strings"
	"time"
)

type PageType string

const (
	PageTypeMain    PageType = "MAIN"
	PageTypeList    PageType = "LIST"
	PageTypeProduct PageType = "PRODUCT"
)

var PageTypes = []PageType{PageTypeMain, PageTypeList, PageTypeProduct}

func (p PageType) String() string {
	return string(p)
}

// PageTypeFromPath classifies a URL path into a page type.
func PageTypeFromPath(path string) PageType {
	if path == "/" || path == "/home" {
		return PageTypeMain
	}
	if strings.HasPrefix(path, "/product/") {
		return PageTypeProduct
	}
	return PageTypeList
}

// VisitEvent is the tracked payload submitted for every page view.
type VisitEvent struct {
	PageType         PageType `json:"pageType" validate:"required,oneof=MAIN LIST PRODUCT"`
	PagePath         *string  `json:"pagePath"`
	ProductID        *string  `json:"productID"`
	DeviceResolution *string  `json:"deviceResolution"`
}

type VisitProductCategory struct {
	Name string `json:"name"`
}

type VisitProduct struct {
	Name     string               `json:"name"`
	Category VisitProductCategory `json:"category"`
}

// VisitRecord is a ledger entry. Product is nil when the id lookup against
// the catalog failed or no product id was submitted.
type VisitRecord struct {
	ID               string        `json:"id"`
	Time             time.Time     `json:"time"`
	PageType         PageType      `json:"pageType"`
	PagePath         *string       `json:"pagePath"`
	ProductID        *string       `json:"productID"`
	DeviceResolution *string       `json:"deviceResolution"`
	Product          *VisitProduct `json:"product"`
}

// Analytics is a frequency report over the live ledger.
type Analytics struct {
	TotalVisits   int              `json:"totalVisits"`
	ByPageType    map[PageType]int `json:"byPageType"`
	ByDevice      map[string]int   `json:"byDevice"`
	TopProducts   map[string]int   `json:"topProducts"`
	TopCategories map[string]int   `json:"topCategories"`
}
