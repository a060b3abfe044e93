package marketing

import (
	"strings"
	"time"

	"github.com/snehagupta9582883065/recent-api/internal/domain/shared"
)

// Banner is a promotional slide shown on the storefront
type Banner struct {
	shared.Aggregate
	Title         string
	Subtitle      string
	Description   string
	Image         string
	ImagePublicID string
	Badge         string
	Link          string
	ButtonText    string
	Order         int
	IsActive      bool
	StartDate     *time.Time
	EndDate       *time.Time
}

// BannerContent holds the editable display fields of a banner
type BannerContent struct {
	Title       string
	Subtitle    string
	Description string
	Badge       string
	Link        string
	ButtonText  string
}

// NewBanner creates an active banner
func NewBanner(content BannerContent, image, imagePublicID string) (*Banner, error) {
	b := &Banner{
		Aggregate: shared.NewAggregate(),
		IsActive:  true,
	}
	if err := b.SetContent(content); err != nil {
		return nil, err
	}
	if err := b.SetImage(image, imagePublicID); err != nil {
		return nil, err
	}
	return b, nil
}

// SetContent replaces the display fields
func (b *Banner) SetContent(content BannerContent) error {
	title := strings.TrimSpace(content.Title)
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Banner title is required")
	}
	b.Title = title
	b.Subtitle = strings.TrimSpace(content.Subtitle)
	b.Description = strings.TrimSpace(content.Description)
	b.Badge = strings.TrimSpace(content.Badge)
	b.Link = strings.TrimSpace(content.Link)
	b.ButtonText = strings.TrimSpace(content.ButtonText)
	b.Touch()
	return nil
}

// SetImage replaces the image. It returns an error for an empty url.
func (b *Banner) SetImage(url, publicID string) error {
	if strings.TrimSpace(url) == "" {
		return shared.NewDomainError("INVALID_IMAGE", "Banner image is required")
	}
	b.Image = url
	b.ImagePublicID = publicID
	b.Touch()
	return nil
}

// Schedule sets the display window. Either end may be open.
func (b *Banner) Schedule(start, end *time.Time) error {
	if start != nil && end != nil && !start.Before(*end) {
		return shared.NewDomainError("INVALID_SCHEDULE", "Start date must be before end date")
	}
	b.StartDate = start
	b.EndDate = end
	b.Touch()
	return nil
}

// SetOrder sets the display position
func (b *Banner) SetOrder(order int) {
	b.Order = order
	b.Touch()
}

// SetActive toggles visibility
func (b *Banner) SetActive(active bool) {
	b.IsActive = active
	b.Touch()
}

// IsLiveAt reports whether the banner should be displayed at t
func (b *Banner) IsLiveAt(t time.Time) bool {
	if !b.IsActive {
		return false
	}
	if b.StartDate != nil && b.StartDate.After(t) {
		return false
	}
	if b.EndDate != nil && b.EndDate.Before(t) {
		return false
	}
	return true
}
