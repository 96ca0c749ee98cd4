package domain

type Brand struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// UpdateBrandInput renames an existing brand.
type UpdateBrandInput struct {
	ID   string `json:"id" validate:"required,min=1"`
	Name string `json:"name" validate:"required,min=3"`
}
