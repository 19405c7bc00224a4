package model

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Property mirrors the 'properties' collection. ExternalID is the
// client-facing identifier (stored in the "id" field, unique index); the
// Mongo ObjectID stays internal and is never serialized.
type Property struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ExternalID    string             `bson:"id" json:"id"`
	Title         string             `bson:"title" json:"title"`
	Type          string             `bson:"type" json:"type"`
	Price         float64            `bson:"price" json:"price"`
	State         string             `bson:"state" json:"state"`
	City          string             `bson:"city" json:"city"`
	AreaSqFt      float64            `bson:"areaSqFt" json:"areaSqFt"`
	Bedrooms      int                `bson:"bedrooms" json:"bedrooms"`
	Bathrooms     int                `bson:"bathrooms" json:"bathrooms"`
	Amenities     []string           `bson:"amenities" json:"amenities"`
	Furnished     string             `bson:"furnished" json:"furnished"`
	AvailableFrom time.Time          `bson:"availableFrom" json:"availableFrom"`
	ListedBy      string             `bson:"listedBy" json:"listedBy"`
	Tags          []string           `bson:"tags" json:"tags"`
	ColorTheme    string             `bson:"colorTheme" json:"colorTheme"`
	Rating        float64            `bson:"rating" json:"rating"`
	IsVerified    bool               `bson:"isVerified" json:"isVerified"`
	ListingType   string             `bson:"listingType" json:"listingType"`
	CreatedBy     primitive.ObjectID `bson:"createdBy" json:"createdBy"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// PropertyView is the enriched read shape served by list, detail and search:
// the property with its creator reference expanded to name and email. This is
// also what gets cached.
type PropertyView struct {
	Property
	CreatedBy Creator `json:"createdBy"`
}

// ValidExternalID reports whether id has the catalogue format: "PROP"
// followed by a number of at least 1000.
func ValidExternalID(id string) bool {
	if !strings.HasPrefix(id, "PROP") {
		return false
	}
	n, err := strconv.Atoi(strings.TrimPrefix(id, "PROP"))
	return err == nil && n >= 1000
}

// parseDate accepts the date-only form used by the catalogue data as well as
// full RFC 3339 timestamps.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// CreatePropertyRequest carries the body of POST /api/properties.
// AvailableFrom is a string so clients may send plain dates.
type CreatePropertyRequest struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Type          string   `json:"type"`
	Price         float64  `json:"price"`
	State         string   `json:"state"`
	City          string   `json:"city"`
	AreaSqFt      float64  `json:"areaSqFt"`
	Bedrooms      int      `json:"bedrooms"`
	Bathrooms     int      `json:"bathrooms"`
	Amenities     []string `json:"amenities"`
	Furnished     string   `json:"furnished"`
	AvailableFrom string   `json:"availableFrom"`
	ListedBy      string   `json:"listedBy"`
	Tags          []string `json:"tags"`
	ColorTheme    string   `json:"colorTheme"`
	Rating        float64  `json:"rating"`
	IsVerified    bool     `json:"isVerified"`
	ListingType   string   `json:"listingType"`
}

// Property validates the request and builds the entity to insert, attributed
// to owner. Required fields follow the catalogue schema; rating must lie in
// [0,5] and price must not be negative.
func (r *CreatePropertyRequest) Property(owner primitive.ObjectID) (*Property, error) {
	if !ValidExternalID(r.ID) {
		return nil, errors.New("id must be PROP followed by a number of at least 1000")
	}
	required := map[string]string{
		"title":       r.Title,
		"type":        r.Type,
		"state":       r.State,
		"city":        r.City,
		"furnished":   r.Furnished,
		"listedBy":    r.ListedBy,
		"colorTheme":  r.ColorTheme,
		"listingType": r.ListingType,
	}
	for field, v := range required {
		if strings.TrimSpace(v) == "" {
			return nil, errors.New(field + " is required")
		}
	}
	if r.Price < 0 {
		return nil, errors.New("price must not be negative")
	}
	if r.Rating < 0 || r.Rating > 5 {
		return nil, errors.New("rating must be between 0 and 5")
	}
	if r.AvailableFrom == "" {
		return nil, errors.New("availableFrom is required")
	}
	from, err := parseDate(r.AvailableFrom)
	if err != nil {
		return nil, errors.New("availableFrom must be YYYY-MM-DD or RFC 3339")
	}
	now := time.Now().UTC()
	amenities := r.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}
	return &Property{
		ExternalID:    r.ID,
		Title:         r.Title,
		Type:          r.Type,
		Price:         r.Price,
		State:         r.State,
		City:          r.City,
		AreaSqFt:      r.AreaSqFt,
		Bedrooms:      r.Bedrooms,
		Bathrooms:     r.Bathrooms,
		Amenities:     amenities,
		Furnished:     r.Furnished,
		AvailableFrom: from,
		ListedBy:      r.ListedBy,
		Tags:          tags,
		ColorTheme:    r.ColorTheme,
		Rating:        r.Rating,
		IsVerified:    r.IsVerified,
		ListingType:   r.ListingType,
		CreatedBy:     owner,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// UpdatePropertyRequest carries the body of PUT /api/properties/:id. Every
// field is optional; only fields present in the body are written, so an
// omitted field is never zeroed.
type UpdatePropertyRequest struct {
	Title         *string   `json:"title"`
	Type          *string   `json:"type"`
	Price         *float64  `json:"price"`
	State         *string   `json:"state"`
	City          *string   `json:"city"`
	AreaSqFt      *float64  `json:"areaSqFt"`
	Bedrooms      *int      `json:"bedrooms"`
	Bathrooms     *int      `json:"bathrooms"`
	Amenities     *[]string `json:"amenities"`
	Furnished     *string   `json:"furnished"`
	AvailableFrom *string   `json:"availableFrom"`
	ListedBy      *string   `json:"listedBy"`
	Tags          *[]string `json:"tags"`
	ColorTheme    *string   `json:"colorTheme"`
	Rating        *float64  `json:"rating"`
	IsVerified    *bool     `json:"isVerified"`
	ListingType   *string   `json:"listingType"`
}

// Document validates the provided fields and builds the $set document for the
// update. An empty request yields an empty document, which the service treats
// as a no-op write.
func (r *UpdatePropertyRequest) Document() (bson.M, error) {
	set := bson.M{}
	put := func(key string, v interface{}) { set[key] = v }
	if r.Title != nil {
		put("title", *r.Title)
	}
	if r.Type != nil {
		put("type", *r.Type)
	}
	if r.Price != nil {
		if *r.Price < 0 {
			return nil, errors.New("price must not be negative")
		}
		put("price", *r.Price)
	}
	if r.State != nil {
		put("state", *r.State)
	}
	if r.City != nil {
		put("city", *r.City)
	}
	if r.AreaSqFt != nil {
		put("areaSqFt", *r.AreaSqFt)
	}
	if r.Bedrooms != nil {
		put("bedrooms", *r.Bedrooms)
	}
	if r.Bathrooms != nil {
		put("bathrooms", *r.Bathrooms)
	}
	if r.Amenities != nil {
		put("amenities", *r.Amenities)
	}
	if r.Furnished != nil {
		put("furnished", *r.Furnished)
	}
	if r.AvailableFrom != nil {
		from, err := parseDate(*r.AvailableFrom)
		if err != nil {
			return nil, errors.New("availableFrom must be YYYY-MM-DD or RFC 3339")
		}
		put("availableFrom", from)
	}
	if r.ListedBy != nil {
		put("listedBy", *r.ListedBy)
	}
	if r.Tags != nil {
		put("tags", *r.Tags)
	}
	if r.ColorTheme != nil {
		put("colorTheme", *r.ColorTheme)
	}
	if r.Rating != nil {
		if *r.Rating < 0 || *r.Rating > 5 {
			return nil, errors.New("rating must be between 0 and 5")
		}
		put("rating", *r.Rating)
	}
	if r.IsVerified != nil {
		put("isVerified", *r.IsVerified)
	}
	if r.ListingType != nil {
		put("listingType", *r.ListingType)
	}
	return set, nil
}
