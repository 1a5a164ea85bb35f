package entities

// UserPreference is the single-subject dietary profile. The row is
// created lazily on first write and upserted afterwards.
type UserPreference struct {
	ID               int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Allergens        string `gorm:"type:text" json:"allergens"`
	DietType         string `gorm:"size:50" json:"diet_type"`
	LikedProducts    string `gorm:"type:text" json:"liked_products"`
	DislikedProducts string `gorm:"type:text" json:"disliked_products"`

	Timestamp
}

func (UserPreference) TableName() string {
	return "user_preferences"
}
