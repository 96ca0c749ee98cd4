package store

import "fakestore/storefront/internal/domain"

// BuildTree groups a flat category list into the two-level navigation tree:
// roots, their immediate children, and those children's children. The
// grouping is exactly two levels deep; categories nested further never
// appear. Input order is preserved at every level and the input is never
// mutated.
func BuildTree(categories []domain.Category) []domain.Group {
	groups := make([]domain.Group, 0)
	for _, c := range categories {
		if c.ParentID == nil {
			groups = append(groups, domain.Group{Group: c, Children: []domain.Child{}})
		}
	}

	for gi := range groups {
		for _, child := range childrenOf(categories, groups[gi].Group.ID) {
			groups[gi].Children = append(groups[gi].Children, domain.Child{
				Category:      child,
				Grandchildren: childrenOf(categories, child.ID),
			})
		}
	}

	return groups
}

func childrenOf(categories []domain.Category, parentID string) []domain.Category {
	children := make([]domain.Category, 0)
	for _, c := range categories {
		if c.ParentID != nil && *c.ParentID == parentID {
			children = append(children, c)
		}
	}
	return children
}
