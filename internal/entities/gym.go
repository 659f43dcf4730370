package entities

// FavoriteGym is a gym the user has starred. Rows originate from the
// Overpass search results and are kept locally so favorites can be
// listed offline.
type FavoriteGym struct {
	ID         string   `gorm:"primaryKey;size:64" json:"id"`
	Name       string   `gorm:"size:256;not null" json:"name"`
	Latitude   float64  `json:"latitude"`
	Longitude  float64  `json:"longitude"`
	Address    string   `gorm:"size:512" json:"address,omitempty"`
	Distance   float64  `json:"distance,omitempty"`
	Facilities []string `gorm:"serializer:json" json:"facilities"`
}

func (FavoriteGym) TableName() string { return "favorite_gyms" }
