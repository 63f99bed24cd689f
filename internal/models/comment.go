package models

// Comment is a reply to a review. TitleID is denormalized from the parent
// review so title-scoped cascade deletes cover comments directly.
type Comment struct {
	BaseModel
	Authored
	ReviewID string  `gorm:"type:uuid;not null;index"`
	Review   *Review `gorm:"foreignKey:ReviewID;constraint:OnDelete:CASCADE"`
	TitleID  string  `gorm:"type:uuid;not null;index"`
	Title    *Title  `gorm:"foreignKey:TitleID;constraint:OnDelete:CASCADE"`
}
