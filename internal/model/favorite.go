package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Favorite is the user↔property join record. The unique compound index on
// (user, property) is what guarantees a pair exists at most once.
type Favorite struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user" json:"user"`
	Property  primitive.ObjectID `bson:"property" json:"-"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// FavoriteProperty is the fixed projection of property fields returned when
// listing favorites. Internal and administrative fields (object ids, owner,
// timestamps) are excluded on purpose.
type FavoriteProperty struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Type          string    `json:"type"`
	Price         float64   `json:"price"`
	State         string    `json:"state"`
	City          string    `json:"city"`
	AreaSqFt      float64   `json:"areaSqFt"`
	Bedrooms      int       `json:"bedrooms"`
	Bathrooms     int       `json:"bathrooms"`
	Amenities     []string  `json:"amenities"`
	Furnished     string    `json:"furnished"`
	AvailableFrom time.Time `json:"availableFrom"`
	ListedBy      string    `json:"listedBy"`
	Tags          []string  `json:"tags"`
	ColorTheme    string    `json:"colorTheme"`
	Rating        float64   `json:"rating"`
	IsVerified    bool      `json:"isVerified"`
	ListingType   string    `json:"listingType"`
}

// FavoriteView pairs a favorite with its projected property.
type FavoriteView struct {
	ID        primitive.ObjectID `json:"id"`
	Property  FavoriteProperty   `json:"property"`
	CreatedAt time.Time          `json:"createdAt"`
}

// Projection builds the fixed favorite projection from a property.
func Projection(p *Property) FavoriteProperty {
	return FavoriteProperty{
		ID:            p.ExternalID,
		Title:         p.Title,
		Type:          p.Type,
		Price:         p.Price,
		State:         p.State,
		City:          p.City,
		AreaSqFt:      p.AreaSqFt,
		Bedrooms:      p.Bedrooms,
		Bathrooms:     p.Bathrooms,
		Amenities:     p.Amenities,
		Furnished:     p.Furnished,
		AvailableFrom: p.AvailableFrom,
		ListedBy:      p.ListedBy,
		Tags:          p.Tags,
		ColorTheme:    p.ColorTheme,
		Rating:        p.Rating,
		IsVerified:    p.IsVerified,
		ListingType:   p.ListingType,
	}
}
