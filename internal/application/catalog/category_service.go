package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/snehagupta9582883065/recent-api/internal/domain/catalog"
	"github.com/snehagupta9582883065/recent-api/internal/domain/shared"
	"go.uber.org/zap"
)

// Tree cache keys
const (
	TreeCacheKeyAll    = "catalog:tree:all"
	TreeCacheKeyActive = "catalog:tree:active"
)

// DefaultSubtreeBatchSize is the page size used when ranging over a subtree
const DefaultSubtreeBatchSize = 100

// TreeCache stores the serialized category tree
type TreeCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// ImageReleaser deletes images that are no longer referenced
type ImageReleaser interface {
	Release(ctx context.Context, publicID string)
}

// CategoryServiceConfig holds tree maintenance settings
type CategoryServiceConfig struct {
	DeletePolicy     catalog.DeletePolicy
	MaxDepth         int
	SubtreeBatchSize int
	TreeCacheTTL     time.Duration
}

// CategoryService owns category tree maintenance: it keeps slug, level and
// path of every stored category consistent with its parent.
type CategoryService struct {
	categoryRepo catalog.CategoryRepository
	txScope      catalog.TransactionScope
	cfg          CategoryServiceConfig
	publisher    shared.EventPublisher
	cache        TreeCache
	images       ImageReleaser
	logger       *zap.Logger
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(
	categoryRepo catalog.CategoryRepository,
	txScope catalog.TransactionScope,
	cfg CategoryServiceConfig,
) *CategoryService {
	if cfg.DeletePolicy == "" {
		cfg.DeletePolicy = catalog.DeletePolicyRefuse
	}
	if cfg.SubtreeBatchSize <= 0 {
		cfg.SubtreeBatchSize = DefaultSubtreeBatchSize
	}
	return &CategoryService{
		categoryRepo: categoryRepo,
		txScope:      txScope,
		cfg:          cfg,
		logger:       zap.NewNop(),
	}
}

// WithEventPublisher sets the publisher that receives committed domain events
func (s *CategoryService) WithEventPublisher(p shared.EventPublisher) *CategoryService {
	s.publisher = p
	return s
}

// WithTreeCache enables cache-aside for GetTree
func (s *CategoryService) WithTreeCache(c TreeCache) *CategoryService {
	s.cache = c
	return s
}

// WithImageReleaser sets where replaced or orphaned images are released
func (s *CategoryService) WithImageReleaser(r ImageReleaser) *CategoryService {
	s.images = r
	return s
}

// WithLogger sets the logger
func (s *CategoryService) WithLogger(l *zap.Logger) *CategoryService {
	if l != nil {
		s.logger = l
	}
	return s
}

// DeletePolicy returns the configured delete policy
func (s *CategoryService) DeletePolicy() catalog.DeletePolicy {
	return s.cfg.DeletePolicy
}

// Create creates a new category under req.ParentID, or a root. The parent is
// read under the tree lock so a concurrent rename or move of an ancestor
// cannot leave the new child with a stale path.
func (s *CategoryService) Create(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	var created *catalog.Category

	err := s.txScope.Execute(ctx, func(repos catalog.Repositories) error {
		var parent *catalog.Category
		if req.ParentID != nil {
			if err := repos.Categories.LockTree(ctx); err != nil {
				return err
			}
			p, err := repos.Categories.FindByID(ctx, *req.ParentID)
			if err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					return catalog.NewParentNotFoundError(*req.ParentID)
				}
				return err
			}
			parent = p
		}

		category, err := catalog.NewCategory(req.Name, parent)
		if err != nil {
			return err
		}
		if err := catalog.EnsureDepth(category.Level, 0, s.cfg.MaxDepth); err != nil {
			return err
		}

		category.UpdateDescription(req.Description)
		category.SetDisplayOrder(req.DisplayOrder)
		if req.Image != "" {
			category.SetImage(req.Image, req.ImagePublicID)
		}
		if req.IsActive != nil && !*req.IsActive {
			category.Deactivate()
		}

		if err := repos.Categories.Save(ctx, category); err != nil {
			return err
		}
		created = category
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, created.PendingEvents()...)
	created.ClearEvents()

	resp := ToCategoryResponse(created)
	return &resp, nil
}

// GetByID retrieves a category by ID
func (s *CategoryService) GetByID(ctx context.Context, id uuid.UUID) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToCategoryResponse(category)
	return &resp, nil
}

// GetBySlug retrieves the shallowest category with the given slug
func (s *CategoryService) GetBySlug(ctx context.Context, slug string) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindBySlug(ctx, strings.ToLower(strings.TrimSpace(slug)))
	if err != nil {
		return nil, err
	}
	resp := ToCategoryResponse(category)
	return &resp, nil
}

// List retrieves a page of categories
func (s *CategoryService) List(ctx context.Context, filter CategoryListFilter) ([]CategoryResponse, int64, error) {
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if domainFilter.Page <= 0 {
		domainFilter.Page = 1
	}
	if domainFilter.PageSize <= 0 {
		domainFilter.PageSize = 20
	}

	switch p := strings.TrimSpace(filter.ParentID); {
	case p == "":
	case strings.EqualFold(p, "root") || strings.EqualFold(p, "null"):
		domainFilter.Filters["parent_id"] = nil
	default:
		id, err := uuid.Parse(p)
		if err != nil {
			return nil, 0, shared.NewDomainError("INVALID_INPUT", "parent_id must be a UUID or 'root'")
		}
		domainFilter.Filters["parent_id"] = id
	}
	if filter.IsActive != nil {
		domainFilter.Filters["is_active"] = *filter.IsActive
	}
	if filter.Level != nil {
		domainFilter.Filters["level"] = *filter.Level
	}

	categories, err := s.categoryRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.categoryRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToCategoryResponses(categories), total, nil
}

// GetChildren retrieves the direct children of a category, or the roots when parentID is nil
func (s *CategoryService) GetChildren(ctx context.Context, parentID *uuid.UUID) ([]CategoryResponse, error) {
	if parentID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *parentID); err != nil {
			return nil, err
		}
	}
	children, err := s.categoryRepo.FindChildren(ctx, parentID)
	if err != nil {
		return nil, err
	}
	return ToCategoryResponses(children), nil
}

// Update applies a partial update. A rename or reparent takes the tree lock
// before reading anything, then re-materializes the whole subtree inside one
// transaction.
func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, req UpdateCategoryRequest) (*CategoryResponse, error) {
	var (
		updated  *catalog.Category
		events   []shared.DomainEvent
		released string
	)

	err := s.txScope.Execute(ctx, func(repos catalog.Repositories) error {
		if req.Name != nil || req.ParentID.Set {
			if err := repos.Categories.LockTree(ctx); err != nil {
				return err
			}
		}
		category, err := repos.Categories.FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		reshaped := false
		if req.Name != nil {
			slugChanged, err := category.Rename(*req.Name)
			if err != nil {
				return err
			}
			reshaped = slugChanged
		}

		if req.ParentID.Set && !category.HasParent(req.ParentID.Value) {
			if err := s.reparent(ctx, repos.Categories, category, req.ParentID.Value); err != nil {
				return err
			}
			reshaped = true
		}

		if req.Description != nil {
			category.UpdateDescription(*req.Description)
		}
		if req.DisplayOrder != nil {
			category.SetDisplayOrder(*req.DisplayOrder)
		}
		if req.Image != nil {
			publicID := category.ImagePublicID
			if req.ImagePublicID != nil {
				publicID = *req.ImagePublicID
			} else if *req.Image != category.Image {
				publicID = ""
			}
			released = category.SetImage(*req.Image, publicID)
		}
		if req.IsActive != nil {
			if *req.IsActive {
				category.Activate()
			} else {
				category.Deactivate()
			}
		}

		if err := repos.Categories.Save(ctx, category); err != nil {
			return err
		}
		if reshaped {
			if _, err := propagate(ctx, repos.Categories, category); err != nil {
				return err
			}
		}

		updated = category
		events = category.PendingEvents()
		return nil
	})
	if err != nil {
		return nil, err
	}

	updated.ClearEvents()
	s.publish(ctx, events...)
	s.release(ctx, released)

	resp := ToCategoryResponse(updated)
	return &resp, nil
}

// Move reparents a category under req.ParentID, or to the root when nil
func (s *CategoryService) Move(ctx context.Context, id uuid.UUID, req MoveCategoryRequest) (*CategoryResponse, error) {
	return s.Update(ctx, id, UpdateCategoryRequest{ParentID: SetUUID(req.ParentID)})
}

// reparent validates and applies a new parent to category. Descendants are
// left for propagate.
func (s *CategoryService) reparent(ctx context.Context, repo catalog.CategoryRepository, category *catalog.Category, parentID *uuid.UUID) error {
	var parent *catalog.Category
	if parentID != nil {
		if *parentID == category.ID {
			return catalog.NewCycleError(category.ID)
		}
		p, err := repo.FindByID(ctx, *parentID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return catalog.NewParentNotFoundError(*parentID)
			}
			return err
		}
		if err := catalog.EnsureNoCycle(ctx, category.ID, p, repo.FindByID); err != nil {
			return err
		}
		parent = p
	}

	if s.cfg.MaxDepth > 0 {
		height, err := subtreeHeight(ctx, repo, category)
		if err != nil {
			return err
		}
		if err := catalog.EnsureDepth(catalog.Materialize(parent).Level, height, s.cfg.MaxDepth); err != nil {
			return err
		}
	}

	category.PlaceUnder(parent)
	return nil
}

// subtreeHeight returns how many levels sit below category, walking parent links
func subtreeHeight(ctx context.Context, repo catalog.CategoryRepository, category *catalog.Category) (int, error) {
	height := 0
	frontier := []uuid.UUID{category.ID}
	for len(frontier) > 0 {
		var next []uuid.UUID
		for _, id := range frontier {
			children, err := repo.FindChildren(ctx, &id)
			if err != nil {
				return 0, err
			}
			for _, child := range children {
				next = append(next, child.ID)
			}
		}
		if len(next) == 0 {
			break
		}
		height++
		frontier = next
	}
	return height, nil
}

// propagate re-materializes every descendant of root breadth-first, each
// child from its already-updated parent. It returns the number of rows written.
func propagate(ctx context.Context, repo catalog.CategoryRepository, root *catalog.Category) (int, error) {
	written := 0
	queue := []*catalog.Category{root}
	for len(queue) > 0 {
		parent := queue[0]
		queue = queue[1:]

		children, err := repo.FindChildren(ctx, &parent.ID)
		if err != nil {
			return written, fmt.Errorf("load children of %s: %w", parent.ID, err)
		}
		for i := range children {
			child := &children[i]
			child.Rematerialize(parent)
			if err := repo.Save(ctx, child); err != nil {
				return written, fmt.Errorf("re-materialize %s: %w", child.ID, err)
			}
			written++
			queue = append(queue, child)
		}
	}
	return written, nil
}

// collectSubtree returns root and all its descendants in breadth-first order,
// following parent links rather than path prefixes.
func collectSubtree(ctx context.Context, repo catalog.CategoryRepository, root *catalog.Category) ([]*catalog.Category, error) {
	nodes := []*catalog.Category{root}
	for i := 0; i < len(nodes); i++ {
		children, err := repo.FindChildren(ctx, &nodes[i].ID)
		if err != nil {
			return nil, err
		}
		for j := range children {
			nodes = append(nodes, &children[j])
		}
	}
	return nodes, nil
}

// Delete removes a category according to the configured delete policy.
// Products in removed categories are left uncategorized.
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	var (
		events   []shared.DomainEvent
		released []string
	)
	policy := s.cfg.DeletePolicy

	err := s.txScope.Execute(ctx, func(repos catalog.Repositories) error {
		if err := repos.Categories.LockTree(ctx); err != nil {
			return err
		}
		category, err := repos.Categories.FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		removed := []*catalog.Category{category}

		switch policy {
		case catalog.DeletePolicyRefuse:
			hasChildren, err := repos.Categories.HasChildren(ctx, category.ID)
			if err != nil {
				return err
			}
			if hasChildren {
				return catalog.NewHasChildrenError(category.ID)
			}

		case catalog.DeletePolicyReparent:
			var grandparent *catalog.Category
			if category.ParentID != nil {
				grandparent, err = repos.Categories.FindByID(ctx, *category.ParentID)
				if err != nil {
					return err
				}
			}
			children, err := repos.Categories.FindChildren(ctx, &category.ID)
			if err != nil {
				return err
			}
			for i := range children {
				child := &children[i]
				child.PlaceUnder(grandparent)
				if err := repos.Categories.Save(ctx, child); err != nil {
					return err
				}
				if _, err := propagate(ctx, repos.Categories, child); err != nil {
					return err
				}
				events = append(events, child.PendingEvents()...)
				child.ClearEvents()
			}

		case catalog.DeletePolicyCascade:
			removed, err = collectSubtree(ctx, repos.Categories, category)
			if err != nil {
				return err
			}

		default:
			return fmt.Errorf("unsupported delete policy %q", policy)
		}

		ids := make([]uuid.UUID, len(removed))
		for i, c := range removed {
			ids[i] = c.ID
		}
		if _, err := repos.Products.DetachCategories(ctx, ids); err != nil {
			return err
		}

		// leaves first, so no row is deleted while a child still references it
		for i := len(removed) - 1; i >= 0; i-- {
			c := removed[i]
			if err := repos.Categories.Delete(ctx, c.ID); err != nil {
				return err
			}
			events = append(events, catalog.NewCategoryDeletedEvent(c, policy))
			if c.ImagePublicID != "" {
				released = append(released, c.ImagePublicID)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.publish(ctx, events...)
	for _, publicID := range released {
		s.release(ctx, publicID)
	}
	return nil
}

// Activate marks a category active
func (s *CategoryService) Activate(ctx context.Context, id uuid.UUID) (*CategoryResponse, error) {
	return s.setActive(ctx, id, true)
}

// Deactivate marks a category inactive; its subtree is left untouched
func (s *CategoryService) Deactivate(ctx context.Context, id uuid.UUID) (*CategoryResponse, error) {
	return s.setActive(ctx, id, false)
}

func (s *CategoryService) setActive(ctx context.Context, id uuid.UUID, active bool) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if active {
		category.Activate()
	} else {
		category.Deactivate()
	}

	if len(category.PendingEvents()) > 0 {
		if err := s.categoryRepo.Save(ctx, category); err != nil {
			return nil, err
		}
		s.publish(ctx, category.PendingEvents()...)
		category.ClearEvents()
	}

	resp := ToCategoryResponse(category)
	return &resp, nil
}

// Subtree returns the category and all its descendants as a lazy sequence,
// the node first, then descendants ordered by level and display order.
// Unknown ids fail immediately. Each range re-queries from the start and
// fetches at most SubtreeBatchSize rows at a time, paging by keyset.
func (s *CategoryService) Subtree(ctx context.Context, id uuid.UUID) (iter.Seq2[*catalog.Category, error], error) {
	if _, err := s.categoryRepo.FindByID(ctx, id); err != nil {
		return nil, err
	}

	batch := s.cfg.SubtreeBatchSize
	return func(yield func(*catalog.Category, error) bool) {
		node, err := s.categoryRepo.FindByID(ctx, id)
		if err != nil {
			yield(nil, err)
			return
		}
		if !yield(node, nil) {
			return
		}

		prefix := catalog.ChildPrefix(node)
		var after *catalog.SubtreeCursor
		for {
			if err := ctx.Err(); err != nil {
				yield(nil, err)
				return
			}
			page, err := s.categoryRepo.FindByPathPrefix(ctx, prefix, after, batch)
			if err != nil {
				yield(nil, err)
				return
			}
			for i := range page {
				if !yield(&page[i], nil) {
					return
				}
			}
			if len(page) < batch {
				return
			}
			after = catalog.CursorAfter(&page[len(page)-1])
		}
	}, nil
}

// GetTree returns the nested category tree, from cache when available.
// With activeOnly, inactive categories and everything below them are left out.
func (s *CategoryService) GetTree(ctx context.Context, activeOnly bool) ([]*CategoryTreeNode, error) {
	key := TreeCacheKeyAll
	if activeOnly {
		key = TreeCacheKeyActive
	}

	if s.cache != nil {
		data, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			s.logger.Warn("category tree cache read failed", zap.String("key", key), zap.Error(err))
		} else if ok {
			var tree []*CategoryTreeNode
			if err := json.Unmarshal(data, &tree); err == nil {
				return tree, nil
			}
			s.logger.Warn("discarding undecodable category tree cache entry", zap.String("key", key))
		}
	}

	categories, err := s.categoryRepo.FindAllOrdered(ctx)
	if err != nil {
		return nil, err
	}
	tree := BuildTree(categories, activeOnly)

	if s.cache != nil {
		if data, err := json.Marshal(tree); err == nil {
			if err := s.cache.Set(ctx, key, data, s.cfg.TreeCacheTTL); err != nil {
				s.logger.Warn("category tree cache write failed", zap.String("key", key), zap.Error(err))
			}
		}
	}
	return tree, nil
}

// BuildTree nests categories by parent link. Input must be ordered by level
// so every parent precedes its children.
func BuildTree(categories []catalog.Category, activeOnly bool) []*CategoryTreeNode {
	nodes := make(map[uuid.UUID]*CategoryTreeNode, len(categories))
	roots := make([]*CategoryTreeNode, 0)

	for i := range categories {
		c := &categories[i]
		if activeOnly && !c.IsActive {
			continue
		}
		node := &CategoryTreeNode{
			ID:           c.ID,
			Name:         c.Name,
			Slug:         c.Slug,
			Image:        c.Image,
			Level:        c.Level,
			Path:         c.Path,
			IsActive:     c.IsActive,
			DisplayOrder: c.DisplayOrder,
			ProductCount: c.ProductCount,
			Children:     make([]*CategoryTreeNode, 0),
		}

		if c.ParentID == nil {
			nodes[c.ID] = node
			roots = append(roots, node)
			continue
		}
		parent, ok := nodes[*c.ParentID]
		if !ok {
			// parent filtered out
			continue
		}
		nodes[c.ID] = node
		parent.Children = append(parent.Children, node)
	}
	return roots
}

func (s *CategoryService) publish(ctx context.Context, events ...shared.DomainEvent) {
	if s.publisher == nil || len(events) == 0 {
		return
	}
	if err := s.publisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish category events", zap.Int("count", len(events)), zap.Error(err))
	}
}

func (s *CategoryService) release(ctx context.Context, publicID string) {
	if s.images == nil || publicID == "" {
		return
	}
	s.images.Release(ctx, publicID)
}
