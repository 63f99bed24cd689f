package models

// Title is a reviewable work. (Name, Category) pairs are unique; deleting
// a title cascades to its reviews and their comments.
type Title struct {
	BaseModel
	Name        string    `gorm:"type:varchar(256);not null;uniqueIndex:uniq_title_name_category"`
	Year        int       `gorm:"not null"`
	CategoryID  string    `gorm:"type:uuid;not null;uniqueIndex:uniq_title_name_category"`
	Category    *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
	Genres      []Genre   `gorm:"many2many:title_genres;constraint:OnDelete:CASCADE"`
	Description *string   `gorm:"type:text"`

	// Rating is the average review score, annotated by the repository on
	// reads. Never stored.
	Rating *float64 `gorm:"->;-:migration"`
}
