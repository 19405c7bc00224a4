package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestValidExternalID(t *testing.T) {
	valid := []string{"PROP1000", "PROP1001", "PROP99999"}
	for _, id := range valid {
		assert.True(t, ValidExternalID(id), id)
	}
	invalid := []string{"", "PROP", "PROP999", "PROP-1001", "prop1001", "HOUSE1001", "PROP10a1"}
	for _, id := range invalid {
		assert.False(t, ValidExternalID(id), id)
	}
}

func validCreateRequest() CreatePropertyRequest {
	return CreatePropertyRequest{
		ID:            "PROP1500",
		Title:         "Lakeside Villa",
		Type:          "Villa",
		Price:         750000,
		State:         "Kerala",
		City:          "Kochi",
		AreaSqFt:      3200,
		Bedrooms:      5,
		Bathrooms:     4,
		Amenities:     []string{"pool"},
		Furnished:     "Furnished",
		AvailableFrom: "2025-08-15",
		ListedBy:      "Builder",
		Tags:          []string{"luxury"},
		ColorTheme:    "#2266cc",
		Rating:        4.9,
		IsVerified:    true,
		ListingType:   "sale",
	}
}

func TestCreatePropertyRequest_Property(t *testing.T) {
	owner := primitive.NewObjectID()
	req := validCreateRequest()

	p, err := req.Property(owner)
	require.NoError(t, err)

	assert.Equal(t, "PROP1500", p.ExternalID)
	assert.Equal(t, owner, p.CreatedBy)
	assert.Equal(t, time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC), p.AvailableFrom)
	assert.False(t, p.CreatedAt.IsZero())
	assert.Equal(t, p.CreatedAt, p.UpdatedAt)
}

func TestCreatePropertyRequest_NilSlicesBecomeEmpty(t *testing.T) {
	req := validCreateRequest()
	req.Amenities = nil
	req.Tags = nil

	p, err := req.Property(primitive.NewObjectID())
	require.NoError(t, err)

	assert.NotNil(t, p.Amenities)
	assert.NotNil(t, p.Tags)
	assert.Empty(t, p.Amenities)
}

func TestCreatePropertyRequest_Rejections(t *testing.T) {
	owner := primitive.NewObjectID()
	cases := map[string]func(*CreatePropertyRequest){
		"bad id":            func(r *CreatePropertyRequest) { r.ID = "PROP12" },
		"missing title":     func(r *CreatePropertyRequest) { r.Title = "  " },
		"missing city":      func(r *CreatePropertyRequest) { r.City = "" },
		"negative price":    func(r *CreatePropertyRequest) { r.Price = -1 },
		"rating above five": func(r *CreatePropertyRequest) { r.Rating = 5.1 },
		"missing date":      func(r *CreatePropertyRequest) { r.AvailableFrom = "" },
		"bad date":          func(r *CreatePropertyRequest) { r.AvailableFrom = "soon" },
	}
	for name, mutate := range cases {
		req := validCreateRequest()
		mutate(&req)
		_, err := req.Property(owner)
		assert.Error(t, err, name)
	}
}

func TestUpdatePropertyRequest_PartialDocument(t *testing.T) {
	title := "Renamed"
	price := 500000.0
	req := UpdatePropertyRequest{Title: &title, Price: &price}

	set, err := req.Document()
	require.NoError(t, err)

	assert.Equal(t, bson.M{"title": "Renamed", "price": 500000.0}, set)
}

func TestUpdatePropertyRequest_EmptyDocument(t *testing.T) {
	set, err := (&UpdatePropertyRequest{}).Document()
	require.NoError(t, err)
	assert.Empty(t, set)
}

func TestUpdatePropertyRequest_DateCoercion(t *testing.T) {
	date := "2025-12-01"
	req := UpdatePropertyRequest{AvailableFrom: &date}

	set, err := req.Document()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), set["availableFrom"])

	bad := "whenever"
	_, err = (&UpdatePropertyRequest{AvailableFrom: &bad}).Document()
	assert.Error(t, err)
}

func TestUpdatePropertyRequest_Rejections(t *testing.T) {
	negative := -10.0
	_, err := (&UpdatePropertyRequest{Price: &negative}).Document()
	assert.Error(t, err)

	rating := 6.0
	_, err = (&UpdatePropertyRequest{Rating: &rating}).Document()
	assert.Error(t, err)
}
