package marketing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/snehagupta9582883065/recent-api/internal/domain/marketing"
	"github.com/snehagupta9582883065/recent-api/internal/domain/shared"
	"go.uber.org/zap"
)

// ImageReleaser deletes stored images that are no longer referenced
type ImageReleaser interface {
	Release(ctx context.Context, publicID string)
}

// BannerService handles banner administration and the storefront listing
type BannerService struct {
	repo   marketing.BannerRepository
	images ImageReleaser
	logger *zap.Logger
	now    func() time.Time
}

// NewBannerService creates a new BannerService
func NewBannerService(repo marketing.BannerRepository) *BannerService {
	return &BannerService{
		repo:   repo,
		logger: zap.NewNop(),
		now:    time.Now,
	}
}

// WithImageReleaser sets where replaced images are released
func (s *BannerService) WithImageReleaser(r ImageReleaser) *BannerService {
	s.images = r
	return s
}

// WithLogger sets the logger
func (s *BannerService) WithLogger(l *zap.Logger) *BannerService {
	if l != nil {
		s.logger = l
	}
	return s
}

// List returns a page of banners ordered by display order, newest first within an order
func (s *BannerService) List(ctx context.Context, filter BannerListFilter) ([]BannerResponse, int64, error) {
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if domainFilter.Page <= 0 {
		domainFilter.Page = 1
	}
	if domainFilter.PageSize <= 0 {
		domainFilter.PageSize = 20
	}
	switch filter.Status {
	case "":
	case "active":
		domainFilter.Filters["is_active"] = true
	case "inactive":
		domainFilter.Filters["is_active"] = false
	default:
		return nil, 0, shared.NewDomainError(shared.ErrInvalidInput.Code, "status must be active or inactive")
	}

	banners, err := s.repo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToBannerResponses(banners), total, nil
}

// ListLive returns the banners the storefront should display right now
func (s *BannerService) ListLive(ctx context.Context) ([]BannerResponse, error) {
	banners, err := s.repo.FindLive(ctx, s.now())
	if err != nil {
		return nil, err
	}
	return ToBannerResponses(banners), nil
}

// GetByID retrieves a banner by ID
func (s *BannerService) GetByID(ctx context.Context, id uuid.UUID) (*BannerResponse, error) {
	banner, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToBannerResponse(banner)
	return &resp, nil
}

// Create creates a banner. Order 0 appends it after the existing banners.
func (s *BannerService) Create(ctx context.Context, req CreateBannerRequest) (*BannerResponse, error) {
	banner, err := marketing.NewBanner(marketing.BannerContent{
		Title:       req.Title,
		Subtitle:    req.Subtitle,
		Description: req.Description,
		Badge:       req.Badge,
		Link:        req.Link,
		ButtonText:  req.ButtonText,
	}, req.Image, req.ImagePublicID)
	if err != nil {
		return nil, err
	}
	if err := banner.Schedule(req.StartDate, req.EndDate); err != nil {
		return nil, err
	}
	if req.IsActive != nil {
		banner.SetActive(*req.IsActive)
	}

	order := req.Order
	if order == 0 {
		count, err := s.repo.CountAll(ctx)
		if err != nil {
			return nil, err
		}
		order = int(count)
	}
	banner.SetOrder(order)

	if err := s.repo.Save(ctx, banner); err != nil {
		return nil, err
	}
	s.logger.Info("banner created", zap.String("banner_id", banner.ID.String()), zap.Int("order", order))

	resp := ToBannerResponse(banner)
	return &resp, nil
}

// Update applies a partial update to a banner
func (s *BannerService) Update(ctx context.Context, id uuid.UUID, req UpdateBannerRequest) (*BannerResponse, error) {
	banner, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	content := marketing.BannerContent{
		Title:       pick(req.Title, banner.Title),
		Subtitle:    pick(req.Subtitle, banner.Subtitle),
		Description: pick(req.Description, banner.Description),
		Badge:       pick(req.Badge, banner.Badge),
		Link:        pick(req.Link, banner.Link),
		ButtonText:  pick(req.ButtonText, banner.ButtonText),
	}
	if err := banner.SetContent(content); err != nil {
		return nil, err
	}

	released := ""
	if req.Image != nil {
		previous := banner.ImagePublicID
		publicID := ""
		if req.ImagePublicID != nil {
			publicID = *req.ImagePublicID
		} else if *req.Image == banner.Image {
			publicID = previous
		}
		if err := banner.SetImage(*req.Image, publicID); err != nil {
			return nil, err
		}
		if previous != publicID {
			released = previous
		}
	}

	start, end := banner.StartDate, banner.EndDate
	if req.ClearSchedule {
		start, end = nil, nil
	}
	if req.StartDate != nil {
		start = req.StartDate
	}
	if req.EndDate != nil {
		end = req.EndDate
	}
	if err := banner.Schedule(start, end); err != nil {
		return nil, err
	}

	if req.Order != nil {
		banner.SetOrder(*req.Order)
	}
	if req.IsActive != nil {
		banner.SetActive(*req.IsActive)
	}

	if err := s.repo.Save(ctx, banner); err != nil {
		return nil, err
	}
	s.release(ctx, released)

	resp := ToBannerResponse(banner)
	return &resp, nil
}

// Delete removes a banner and releases its image
func (s *BannerService) Delete(ctx context.Context, id uuid.UUID) error {
	banner, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.release(ctx, banner.ImagePublicID)
	return nil
}

// Reorder gives each banner its position in req.IDs as display order
func (s *BannerService) Reorder(ctx context.Context, req ReorderBannersRequest) error {
	if len(req.IDs) == 0 {
		return shared.NewDomainError(shared.ErrInvalidInput.Code, "ids must not be empty")
	}
	seen := make(map[uuid.UUID]struct{}, len(req.IDs))
	for _, id := range req.IDs {
		if _, dup := seen[id]; dup {
			return shared.NewDomainError(shared.ErrInvalidInput.Code, "ids must not repeat")
		}
		seen[id] = struct{}{}
	}
	return s.repo.Reorder(ctx, req.IDs)
}

// Stats summarizes banner visibility as of now
func (s *BannerService) Stats(ctx context.Context) (*marketing.BannerStats, error) {
	return s.repo.Stats(ctx, s.now())
}

func (s *BannerService) release(ctx context.Context, publicID string) {
	if s.images == nil || publicID == "" {
		return
	}
	s.images.Release(ctx, publicID)
}

func pick(v *string, current string) string {
	if v == nil {
		return current
	}
	return *v
}
