package domain

// CartLine is one product entry in the cart. At most one line exists per
// ProductID and Quantity is always positive for a retained line.
type CartLine struct {
	ProductID   int      `json:"productId"`
	ProductName string   `json:"productName"`
	ImgURL      string   `json:"imgUrl"`
	Price       float64  `json:"price"`
	DealPrice   *float64 `json:"dealPrice,omitempty"`
	Quantity    int      `json:"quantity"`
	Rating      *Rating  `json:"rating,omitempty"`
}

type CartState struct {
	Items     []CartLine `json:"items"`
	IsVisible bool       `json:"isVisible"`
}
