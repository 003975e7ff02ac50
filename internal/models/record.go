package models

import "time"

// Record carries the identity and timestamps shared by every stored entity.
// Unlike gorm.Model it has no DeletedAt: deletes remove the row.
type Record struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
