package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/snehagupta9582883065/recent-api/internal/domain/shared"
)

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	// FindByID finds a category by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)

	// FindByIDForUpdate finds a category and locks its row for the rest of
	// the transaction where the backing store supports it
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Category, error)

	// FindBySlug finds the shallowest category with the given slug
	FindBySlug(ctx context.Context, slug string) (*Category, error)

	// FindByName finds a category by exact name
	FindByName(ctx context.Context, name string) (*Category, error)

	// FindAll finds all categories matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Category, error)

	// FindAllOrdered returns every category ordered by level then display order
	FindAllOrdered(ctx context.Context) ([]Category, error)

	// FindChildren finds all direct children of a category, or the roots when parentID is nil
	FindChildren(ctx context.Context, parentID *uuid.UUID) ([]Category, error)

	// FindByPathPrefix returns up to limit categories whose path equals prefix
	// or starts with prefix + "/", ordered by level, display order and id,
	// starting after the cursor when one is given. A limit of zero means all.
	FindByPathPrefix(ctx context.Context, prefix string, after *SubtreeCursor, limit int) ([]Category, error)

	// LockTree serializes tree reshapes (create under a parent, rename, move,
	// delete) until the surrounding transaction ends. Reads made after it see
	// every reshape committed before it.
	LockTree(ctx context.Context) error

	// HasChildren checks if a category has any children
	HasChildren(ctx context.Context, categoryID uuid.UUID) (bool, error)

	// Count counts categories matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Save creates or updates a category
	Save(ctx context.Context, category *Category) error

	// Delete deletes a category
	Delete(ctx context.Context, id uuid.UUID) error

	// AdjustProductCount atomically adds delta to the denormalized product count, never going below zero
	AdjustProductCount(ctx context.Context, categoryID uuid.UUID, delta int) error
}

// Repositories groups the catalog repositories bound to one transaction
type Repositories struct {
	Categories CategoryRepository
	Products   ProductRepository
}

// TransactionScope runs fn with repositories that share a single transaction.
// Returning an error from fn rolls every write back.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos Repositories) error) error
}
