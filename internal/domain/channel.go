package domain

import "time"

// Channel is a named count record managed by the admin UI
type Channel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id" form:"id"`
	Name      string    `gorm:"size:255;not null" json:"name" form:"name"`
	Number    int64     `gorm:"not null" json:"number" form:"number"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns table name
func (Channel) TableName() string {
	return "channels"
}

// Sortable channel columns
const (
	ColumnName   = "name"
	ColumnNumber = "number"
)
