package models

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID           uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string         `gorm:"not null;index" json:"name"`
	Description  string         `json:"description"`
	Category     string         `gorm:"default:'General'" json:"category"`
	Brand        string         `json:"brand"`
	Price        float64        `gorm:"not null" json:"price"`
	CountInStock int            `gorm:"default:0" json:"countInStock"`
	Images       []ProductImage `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"images"`
	Thumbnail    string         `json:"thumbnail"`
	Rating       float64        `gorm:"default:0" json:"rating"`
	NumReviews   int            `gorm:"default:0" json:"numReviews"`
	IsFeatured   bool           `gorm:"default:false" json:"isFeatured"`
	IsActive     bool           `gorm:"default:true" json:"isActive"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// ProductImage is a hosted image reference; PublicID is the Cloudinary
// identifier needed to delete the asset later.
type ProductImage struct {
	ID        uint   `gorm:"primaryKey" json:"-"`
	ProductID uint   `gorm:"index" json:"-"`
	URL       string `gorm:"not null" json:"url"`
	PublicID  string `json:"publicId"`
}
