package catalog

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/snehagupta9582883065/recent-api/internal/domain/shared"
)

// MaxCategoryNameLength is the longest accepted category name, in characters
const MaxCategoryNameLength = 100

// Category represents a product category in the catalog.
// Level and Path are derived from the parent chain and are only written
// through NewCategory, Rename and PlaceUnder.
type Category struct {
	shared.Aggregate
	Name          string
	Slug          string
	Description   string
	Image         string
	ImagePublicID string
	ParentID      *uuid.UUID
	Level         int
	Path          string
	IsActive      bool
	DisplayOrder  int
	ProductCount  int
}

// NewCategory creates a category placed under parent, or a root when parent is nil
func NewCategory(name string, parent *Category) (*Category, error) {
	name, slug, err := normalizeName(name)
	if err != nil {
		return nil, err
	}

	category := &Category{
		Aggregate: shared.NewAggregate(),
		Name:      name,
		Slug:      slug,
		IsActive:  true,
	}
	category.place(parent)

	category.Record(NewCategoryCreatedEvent(category))

	return category, nil
}

// Rename changes the display name and re-derives the slug.
// It reports whether the slug changed, in which case every descendant's
// path is stale until re-materialized.
func (c *Category) Rename(name string) (bool, error) {
	name, slug, err := normalizeName(name)
	if err != nil {
		return false, err
	}

	slugChanged := slug != c.Slug
	c.Name = name
	c.Slug = slug
	c.Touch()
	c.BumpVersion()

	c.Record(NewCategoryUpdatedEvent(c))

	return slugChanged, nil
}

// PlaceUnder re-materializes the category against a new parent.
// Callers are responsible for the cycle check.
func (c *Category) PlaceUnder(parent *Category) {
	oldParentID := c.ParentID
	oldLevel := c.Level

	c.place(parent)
	c.Touch()
	c.BumpVersion()

	c.Record(NewCategoryMovedEvent(c, oldParentID, oldLevel))
}

// Rematerialize refreshes level and path from an already-updated parent.
// Used while propagating a rename or move down the subtree.
func (c *Category) Rematerialize(parent *Category) {
	c.place(parent)
	c.Touch()
}

func (c *Category) place(parent *Category) {
	placement := Materialize(parent)
	if parent != nil {
		parentID := parent.ID
		c.ParentID = &parentID
	} else {
		c.ParentID = nil
	}
	c.Level = placement.Level
	c.Path = placement.Path
}

// UpdateDescription sets the free-form description
func (c *Category) UpdateDescription(description string) {
	c.Description = description
	c.Touch()
}

// SetDisplayOrder sets the advisory ordering among siblings
func (c *Category) SetDisplayOrder(order int) {
	c.DisplayOrder = order
	c.Touch()
}

// SetImage replaces the image and returns the public id of the previous one,
// if any, so the caller can release it from object storage.
func (c *Category) SetImage(url, publicID string) string {
	previous := c.ImagePublicID
	c.Image = url
	c.ImagePublicID = publicID
	c.Touch()
	if previous == publicID {
		return ""
	}
	return previous
}

// Activate marks the category active
func (c *Category) Activate() {
	if c.IsActive {
		return
	}
	c.IsActive = true
	c.Touch()
	c.BumpVersion()
	c.Record(NewCategoryStatusChangedEvent(c))
}

// Deactivate retires the category without deleting it
func (c *Category) Deactivate() {
	if !c.IsActive {
		return
	}
	c.IsActive = false
	c.Touch()
	c.BumpVersion()
	c.Record(NewCategoryStatusChangedEvent(c))
}

// IsRoot returns true if this is a root category
func (c *Category) IsRoot() bool {
	return c.ParentID == nil
}

// HasParent reports whether the category currently sits under parentID
func (c *Category) HasParent(parentID *uuid.UUID) bool {
	if c.ParentID == nil || parentID == nil {
		return c.ParentID == nil && parentID == nil
	}
	return *c.ParentID == *parentID
}

func normalizeName(name string) (string, string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", "", shared.NewDomainError(CodeInvalidName, "Category name cannot be empty")
	}
	if utf8.RuneCountInString(name) > MaxCategoryNameLength {
		return "", "", shared.NewDomainError(CodeInvalidName, "Category name cannot exceed 100 characters")
	}
	slug := DeriveSlug(name)
	if slug == "" {
		return "", "", shared.NewDomainError(CodeInvalidSlug, "Category name must contain at least one letter or digit")
	}
	return name, slug, nil
}
