package domain

type Category struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	URL      string  `json:"url"`
	ParentID *string `json:"parentID"`
	IconURL  *string `json:"iconUrl"`
	IconSize []int   `json:"iconSize"`
}

// AddCategoryInput creates a new category. ParentID stays nil for roots.
type AddCategoryInput struct {
	ParentID *string `json:"parentID"`
	Name     string  `json:"name" validate:"required,min=3"`
	URL      string  `json:"url" validate:"required,min=3"`
	IconURL  *string `json:"iconUrl"`
	IconSize []int   `json:"iconSize" validate:"required"`
}

// UpdateCategoryInput is a partial update: nil pointer fields are left
// untouched, IconSize is always applied.
type UpdateCategoryInput struct {
	ID       string  `json:"id" validate:"required"`
	Name     *string `json:"name" validate:"omitempty,min=3"`
	URL      *string `json:"url" validate:"omitempty,min=3"`
	IconURL  *string `json:"iconUrl"`
	IconSize []int   `json:"iconSize" validate:"required"`
}

// Group is one root category with its two resolved levels of descendants.
type Group struct {
	Group    Category `json:"group"`
	Children []Child  `json:"categories"`
}

// Child pairs a category with its immediate children.
type Child struct {
	Category      Category   `json:"category"`
	Grandchildren []Category `json:"subCategories"`
}
