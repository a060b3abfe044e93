package catalog

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/snehagupta9582883065/recent-api/internal/domain/shared"
)

// Error codes raised by the catalog context
const (
	CodeInvalidName       = "INVALID_NAME"
	CodeInvalidSlug       = "INVALID_SLUG"
	CodeInvalidPrice      = "INVALID_PRICE"
	CodeInvalidQuantity   = "INVALID_QUANTITY"
	CodeMaxDepthExceeded  = "MAX_DEPTH_EXCEEDED"
	CodeCircularReference = "CIRCULAR_REFERENCE"
	CodeHasChildren       = "HAS_CHILDREN"
)

var validationCodes = map[string]struct{}{
	CodeInvalidName:      {},
	CodeInvalidSlug:      {},
	CodeInvalidPrice:     {},
	CodeInvalidQuantity:  {},
	CodeMaxDepthExceeded: {},
	"INVALID_INPUT":      {},
	"VALIDATION_ERROR":   {},
}

// NewCategoryNotFoundError reports an unknown category id
func NewCategoryNotFoundError(id uuid.UUID) *shared.DomainError {
	return shared.NewDomainError(shared.ErrNotFound.Code, fmt.Sprintf("Category %s not found", id))
}

// NewParentNotFoundError reports an unresolved parent reference
func NewParentNotFoundError(id uuid.UUID) *shared.DomainError {
	return shared.NewDomainError(shared.ErrNotFound.Code, fmt.Sprintf("Parent category %s not found", id))
}

// NewCycleError reports a reparent that would make a category its own ancestor
func NewCycleError(id uuid.UUID) *shared.DomainError {
	return shared.NewDomainError(CodeCircularReference,
		fmt.Sprintf("Category %s cannot be moved under itself or one of its descendants", id))
}

// NewHasChildrenError reports a delete refused because children exist
func NewHasChildrenError(id uuid.UUID) *shared.DomainError {
	return shared.NewDomainError(CodeHasChildren,
		fmt.Sprintf("Category %s has subcategories; move or delete them first", id))
}

// NewMaxDepthError reports a placement deeper than the configured limit
func NewMaxDepthError(maxDepth int) *shared.DomainError {
	return shared.NewDomainError(CodeMaxDepthExceeded,
		fmt.Sprintf("Category depth cannot exceed %d levels", maxDepth))
}

// IsValidationError reports whether err is a catalog input validation failure
func IsValidationError(err error) bool {
	de, ok := shared.AsDomainError(err)
	if !ok {
		return false
	}
	_, ok = validationCodes[de.Code]
	return ok
}

// IsNotFoundError reports whether err references an unknown entity
func IsNotFoundError(err error) bool {
	return errors.Is(err, shared.ErrNotFound)
}

// IsCycleError reports whether err is a rejected cyclic reparent
func IsCycleError(err error) bool {
	de, ok := shared.AsDomainError(err)
	return ok && de.Code == CodeCircularReference
}

// IsConflictError reports whether err is a refused delete of a non-leaf category
func IsConflictError(err error) bool {
	de, ok := shared.AsDomainError(err)
	return ok && de.Code == CodeHasChildren
}
