package models

import (
	"time"
)

type BaseModel struct {
	ID        string    `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	CreatedAt time.Time `gorm:"default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Authored carries the fields shared by user-generated content: the text,
// its author and the publication timestamp. Review and Comment embed it.
type Authored struct {
	Text     string    `gorm:"type:text;not null" json:"text"`
	AuthorID string    `gorm:"type:uuid;not null;index" json:"-"`
	Author   *User     `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
	PubDate  time.Time `gorm:"column:pub_date;autoCreateTime" json:"pub_date"`
}
