package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// PathSeparator joins ancestor slugs in a materialized path
const PathSeparator = "/"

// Placement is the derived position of a category inside the tree
type Placement struct {
	Level int
	Path  string
}

// Materialize computes level and path for a node placed under parent.
// The parent must already carry its own correct level and path; a nil
// parent places the node at the root.
func Materialize(parent *Category) Placement {
	if parent == nil {
		return Placement{Level: 0, Path: ""}
	}
	return Placement{
		Level: parent.Level + 1,
		Path:  ChildPrefix(parent),
	}
}

// ChildPrefix returns the path every direct child of c carries,
// which is also the prefix shared by all of c's descendants.
func ChildPrefix(c *Category) string {
	if c.Path == "" {
		return c.Slug
	}
	return c.Path + PathSeparator + c.Slug
}

// SubtreeCursor is a keyset position in subtree order: level, display order, id.
// Paging from a cursor neither skips nor repeats rows when the tree changes
// between pages, unlike an offset.
type SubtreeCursor struct {
	Level        int
	DisplayOrder int
	ID           uuid.UUID
}

// CursorAfter returns the position just past c
func CursorAfter(c *Category) *SubtreeCursor {
	return &SubtreeCursor{Level: c.Level, DisplayOrder: c.DisplayOrder, ID: c.ID}
}

// CategoryLookup resolves a category by id
type CategoryLookup func(ctx context.Context, id uuid.UUID) (*Category, error)

// EnsureNoCycle walks the ancestor chain of candidate up to the root and fails
// with a CIRCULAR_REFERENCE error if it reaches nodeID.
func EnsureNoCycle(ctx context.Context, nodeID uuid.UUID, candidate *Category, lookup CategoryLookup) error {
	if candidate == nil {
		return nil
	}
	visited := make(map[uuid.UUID]struct{})
	current := candidate
	for {
		if current.ID == nodeID {
			return NewCycleError(nodeID)
		}
		if _, seen := visited[current.ID]; seen {
			return fmt.Errorf("category %s: ancestor chain loops at %s", nodeID, current.ID)
		}
		visited[current.ID] = struct{}{}
		if current.ParentID == nil {
			return nil
		}
		if *current.ParentID == nodeID {
			return NewCycleError(nodeID)
		}
		next, err := lookup(ctx, *current.ParentID)
		if err != nil {
			return fmt.Errorf("resolve ancestor %s: %w", *current.ParentID, err)
		}
		current = next
	}
}

// EnsureDepth fails when placing a subtree of the given height at level would
// exceed maxDepth levels. A maxDepth of zero disables the check.
func EnsureDepth(level, subtreeHeight, maxDepth int) error {
	if maxDepth <= 0 {
		return nil
	}
	if level+subtreeHeight >= maxDepth {
		return NewMaxDepthError(maxDepth)
	}
	return nil
}
