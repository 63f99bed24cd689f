package models

// Review is a scored opinion on a title, one per (author, title). The
// composite unique index is created during migration, see app.Migrate.
type Review struct {
	BaseModel
	Authored
	Score   int    `gorm:"not null"`
	TitleID string `gorm:"type:uuid;not null;index"`
	Title   *Title `gorm:"foreignKey:TitleID;constraint:OnDelete:CASCADE"`
}
