package models

import "time"

type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Email       string    `gorm:"unique;not null" json:"email"`
	Password    string    `json:"-"`
	Provider    string    `json:"provider"` // "local" or "firebase"
	FirebaseUID string    `gorm:"index" json:"-"`
	IsAdmin     bool      `gorm:"default:false" json:"isAdmin"`
	Cart        Cart      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Orders      []Order   `gorm:"foreignKey:UserID" json:"-"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
