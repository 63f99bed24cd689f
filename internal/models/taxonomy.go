package models

const (
	MaxLengthName = 256
	MaxLengthSlug = 50
)

// Category groups titles ("Films", "Books", ...). Identified by slug;
// never updated in place, only created and deleted.
type Category struct {
	BaseModel
	Name string `gorm:"type:varchar(256);not null"`
	Slug string `gorm:"type:varchar(50);uniqueIndex;not null"`
}

// Genre tags titles ("Drama", "Rock", ...). Same slug contract as Category.
type Genre struct {
	BaseModel
	Name string `gorm:"type:varchar(256);not null"`
	Slug string `gorm:"type:varchar(50);uniqueIndex;not null"`
}
