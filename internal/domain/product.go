package domain

type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// ListItem is the listing projection used by the filter/sort pipeline.
type ListItem struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	IsAvailable bool    `json:"isAvailable"`
	Image       string  `json:"image"`
	Price       float64 `json:"price"`
	Rating      Rating  `json:"rating"`
	Category    string  `json:"category"`
}

type CategoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ProductListItem is the normalized list form served to table views.
type ProductListItem struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Category CategoryRef `json:"category"`
}

type SpecEntry struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type Specification struct {
	GroupName string      `json:"groupName"`
	Specs     []SpecEntry `json:"specs"`
}

// Path is one hop of the root-to-product breadcrumb.
type Path struct {
	ID       string  `json:"id"`
	ParentID *string `json:"parentID"`
	Name     string  `json:"name"`
	URL      string  `json:"url"`
}

// ProductPageInfo is the rich detail-view projection of a catalog product.
type ProductPageInfo struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	IsAvailable     bool            `json:"isAvailable"`
	Desc            *string         `json:"desc"`
	Images          []string        `json:"images"`
	OptionSets      []string        `json:"optionSets"`
	SpecialFeatures []string        `json:"specialFeatures"`
	Price           float64         `json:"price"`
	SalePrice       *float64        `json:"salePrice"`
	Specifications  []Specification `json:"specifications"`
	Path            []Path          `json:"path"`
}

// CartListItem is the slim projection resolved for lines in the cart.
type CartListItem struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Images    []string `json:"images"`
	Price     float64  `json:"price"`
	SalePrice *float64 `json:"salePrice"`
}
