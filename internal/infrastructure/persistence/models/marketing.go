package models

import (
	"time"

	"github.com/snehagupta9582883065/recent-api/internal/domain/marketing"
)

// BannerModel is the persistence model for the Banner domain entity.
type BannerModel struct {
	AggregateModel
	Title         string     `gorm:"type:varchar(200);not null"`
	Subtitle      string     `gorm:"type:varchar(200)"`
	Description   string     `gorm:"type:text"`
	Image         string     `gorm:"type:varchar(500);not null"`
	ImagePublicID string     `gorm:"type:varchar(255)"`
	Badge         string     `gorm:"type:varchar(50)"`
	Link          string     `gorm:"type:varchar(500)"`
	ButtonText    string     `gorm:"type:varchar(50)"`
	Order         int        `gorm:"column:display_order;not null;default:0;index"`
	IsActive      bool       `gorm:"not null;index"`
	StartDate     *time.Time `gorm:"index"`
	EndDate       *time.Time `gorm:"index"`
}

// TableName returns the table name for GORM
func (BannerModel) TableName() string {
	return "banners"
}

// ToDomain converts the persistence model to a domain Banner entity.
func (m *BannerModel) ToDomain() *marketing.Banner {
	return &marketing.Banner{
		Aggregate:     m.ToAggregate(),
		Title:         m.Title,
		Subtitle:      m.Subtitle,
		Description:   m.Description,
		Image:         m.Image,
		ImagePublicID: m.ImagePublicID,
		Badge:         m.Badge,
		Link:          m.Link,
		ButtonText:    m.ButtonText,
		Order:         m.Order,
		IsActive:      m.IsActive,
		StartDate:     m.StartDate,
		EndDate:       m.EndDate,
	}
}

// FromDomain populates the persistence model from a domain Banner entity.
// Schedule bounds are stored in UTC so range comparisons are consistent across dialects.
func (m *BannerModel) FromDomain(b *marketing.Banner) {
	m.FromAggregate(b.Aggregate)
	m.Title = b.Title
	m.Subtitle = b.Subtitle
	m.Description = b.Description
	m.Image = b.Image
	m.ImagePublicID = b.ImagePublicID
	m.Badge = b.Badge
	m.Link = b.Link
	m.ButtonText = b.ButtonText
	m.Order = b.Order
	m.IsActive = b.IsActive
	m.StartDate = utcPtr(b.StartDate)
	m.EndDate = utcPtr(b.EndDate)
}

// BannerModelFromDomain creates a new persistence model from a domain Banner entity.
func BannerModelFromDomain(b *marketing.Banner) *BannerModel {
	m := &BannerModel{}
	m.FromDomain(b)
	return m
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

// AllModels lists every persistence model, in dependency order, for AutoMigrate
func AllModels() []interface{} {
	return []interface{}{
		&CategoryModel{},
		&ProductModel{},
		&BannerModel{},
	}
}
