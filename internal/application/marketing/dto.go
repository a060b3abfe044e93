package marketing

import (
	"time"

	"github.com/google/uuid"
	"github.com/snehagupta9582883065/recent-api/internal/domain/marketing"
)

// CreateBannerRequest represents a request to create a banner
type CreateBannerRequest struct {
	Title         string     `json:"title" binding:"required,min=1,max=200"`
	Subtitle      string     `json:"subtitle" binding:"max=200"`
	Description   string     `json:"description" binding:"max=2000"`
	Image         string     `json:"image" binding:"required,max=500"`
	ImagePublicID string     `json:"image_public_id" binding:"max=255"`
	Badge         string     `json:"badge" binding:"max=50"`
	Link          string     `json:"link" binding:"max=500"`
	ButtonText    string     `json:"button_text" binding:"max=50"`
	Order         int        `json:"order" binding:"min=0"`
	IsActive      *bool      `json:"is_active"`
	StartDate     *time.Time `json:"start_date"`
	EndDate       *time.Time `json:"end_date"`
}

// UpdateBannerRequest represents a partial banner update; nil fields are left unchanged
type UpdateBannerRequest struct {
	Title         *string    `json:"title" binding:"omitempty,min=1,max=200"`
	Subtitle      *string    `json:"subtitle" binding:"omitempty,max=200"`
	Description   *string    `json:"description" binding:"omitempty,max=2000"`
	Image         *string    `json:"image" binding:"omitempty,max=500"`
	ImagePublicID *string    `json:"image_public_id" binding:"omitempty,max=255"`
	Badge         *string    `json:"badge" binding:"omitempty,max=50"`
	Link          *string    `json:"link" binding:"omitempty,max=500"`
	ButtonText    *string    `json:"button_text" binding:"omitempty,max=50"`
	Order         *int       `json:"order" binding:"omitempty,min=0"`
	IsActive      *bool      `json:"is_active"`
	StartDate     *time.Time `json:"start_date"`
	EndDate       *time.Time `json:"end_date"`
	// ClearSchedule removes both dates before StartDate/EndDate are applied
	ClearSchedule bool `json:"clear_schedule"`
}

// ReorderBannersRequest lists banner ids in their new display order
type ReorderBannersRequest struct {
	IDs []uuid.UUID `json:"ids" binding:"required,min=1"`
}

// BannerListFilter filters the admin banner list
type BannerListFilter struct {
	Status   string `form:"status" binding:"omitempty,oneof=active inactive"`
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// BannerResponse represents a banner in API responses
type BannerResponse struct {
	ID            uuid.UUID  `json:"id"`
	Title         string     `json:"title"`
	Subtitle      string     `json:"subtitle"`
	Description   string     `json:"description"`
	Image         string     `json:"image"`
	ImagePublicID string     `json:"image_public_id,omitempty"`
	Badge         string     `json:"badge"`
	Link          string     `json:"link"`
	ButtonText    string     `json:"button_text"`
	Order         int        `json:"order"`
	IsActive      bool       `json:"is_active"`
	StartDate     *time.Time `json:"start_date"`
	EndDate       *time.Time `json:"end_date"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// ToBannerResponse converts a domain Banner to BannerResponse
func ToBannerResponse(b *marketing.Banner) BannerResponse {
	return BannerResponse{
		ID:            b.ID,
		Title:         b.Title,
		Subtitle:      b.Subtitle,
		Description:   b.Description,
		Image:         b.Image,
		ImagePublicID: b.ImagePublicID,
		Badge:         b.Badge,
		Link:          b.Link,
		ButtonText:    b.ButtonText,
		Order:         b.Order,
		IsActive:      b.IsActive,
		StartDate:     b.StartDate,
		EndDate:       b.EndDate,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

// ToBannerResponses converts a slice of banners
func ToBannerResponses(banners []marketing.Banner) []BannerResponse {
	responses := make([]BannerResponse, len(banners))
	for i := range banners {
		responses[i] = ToBannerResponse(&banners[i])
	}
	return responses
}
