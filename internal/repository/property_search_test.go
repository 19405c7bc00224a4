package repository

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestBuildSearchQuery_EqualityFilters(t *testing.T) {
	params := url.Values{}
	params.Set("type", "Villa")
	params.Set("city", "Pune")
	params.Set("furnished", "Furnished")
	params.Set("listingType", "rent")

	query, _, err := BuildSearchQuery(params)
	require.NoError(t, err)

	assert.Equal(t, "Villa", query["type"])
	assert.Equal(t, "Pune", query["city"])
	assert.Equal(t, "Furnished", query["furnished"])
	assert.Equal(t, "rent", query["listingType"])
	assert.NotContains(t, query, "state")
}

func TestBuildSearchQuery_IgnoresUnknownParams(t *testing.T) {
	params := url.Values{}
	params.Set("city", "Mumbai")
	params.Set("page", "3")
	params.Set("sort", "price")

	query, canonical, err := BuildSearchQuery(params)
	require.NoError(t, err)

	assert.Len(t, query, 1)
	assert.Equal(t, "city=Mumbai", canonical)
}

func TestBuildSearchQuery_PriceRange(t *testing.T) {
	params := url.Values{}
	params.Set("minPrice", "50000")
	params.Set("maxPrice", "150000.5")

	query, _, err := BuildSearchQuery(params)
	require.NoError(t, err)

	assert.Equal(t, bson.M{"$gte": 50000.0, "$lte": 150000.5}, query["price"])
}

func TestBuildSearchQuery_OpenEndedRange(t *testing.T) {
	params := url.Values{}
	params.Set("minArea", "800")

	query, _, err := BuildSearchQuery(params)
	require.NoError(t, err)

	assert.Equal(t, bson.M{"$gte": 800.0}, query["areaSqFt"])
}

func TestBuildSearchQuery_MinRating(t *testing.T) {
	params := url.Values{}
	params.Set("minRating", "3.5")

	query, _, err := BuildSearchQuery(params)
	require.NoError(t, err)

	assert.Equal(t, bson.M{"$gte": 3.5}, query["rating"])
}

func TestBuildSearchQuery_Bedrooms(t *testing.T) {
	params := url.Values{}
	params.Set("bedrooms", "3")
	params.Set("bathrooms", "2")

	query, _, err := BuildSearchQuery(params)
	require.NoError(t, err)

	assert.Equal(t, 3, query["bedrooms"])
	assert.Equal(t, 2, query["bathrooms"])
}

func TestBuildSearchQuery_IsVerified(t *testing.T) {
	for value, want := range map[string]bool{"true": true, "false": false, "yes": false, "1": false} {
		params := url.Values{}
		params.Set("isVerified", value)

		query, _, err := BuildSearchQuery(params)
		require.NoError(t, err)
		assert.Equal(t, want, query["isVerified"], "isVerified=%s", value)
	}
}

func TestBuildSearchQuery_AvailableFrom(t *testing.T) {
	params := url.Values{}
	params.Set("availableFrom", "2025-07-01")

	query, _, err := BuildSearchQuery(params)
	require.NoError(t, err)

	want := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, bson.M{"$lte": want}, query["availableFrom"])
}

func TestBuildSearchQuery_AmenitiesSuperset(t *testing.T) {
	params := url.Values{}
	params.Add("amenities", "pool, gym")
	params.Add("amenities", "lift")
	params.Set("tags", "gated-community")

	query, _, err := BuildSearchQuery(params)
	require.NoError(t, err)

	assert.Equal(t, bson.M{"$all": []string{"pool", "gym", "lift"}}, query["amenities"])
	assert.Equal(t, bson.M{"$all": []string{"gated-community"}}, query["tags"])
}

func TestBuildSearchQuery_CoercionErrors(t *testing.T) {
	cases := map[string]url.Values{
		"bedrooms":      {"bedrooms": {"many"}},
		"bathrooms":     {"bathrooms": {"2.5x"}},
		"minPrice":      {"minPrice": {"cheap"}},
		"maxArea":       {"maxArea": {"big"}},
		"minRating":     {"minRating": {"five"}},
		"availableFrom": {"availableFrom": {"next month"}},
	}
	for name, params := range cases {
		_, _, err := BuildSearchQuery(params)
		assert.Error(t, err, "expected coercion error for %s", name)
	}
}

func TestBuildSearchQuery_CanonicalOrderIndependent(t *testing.T) {
	a := url.Values{}
	a.Set("city", "Delhi")
	a.Set("minPrice", "1000")
	a.Set("type", "Apartment")

	b := url.Values{}
	b.Set("type", "Apartment")
	b.Set("city", "Delhi")
	b.Set("minPrice", "1000")

	_, canonicalA, err := BuildSearchQuery(a)
	require.NoError(t, err)
	_, canonicalB, err := BuildSearchQuery(b)
	require.NoError(t, err)

	assert.Equal(t, canonicalA, canonicalB)
	assert.Equal(t, "city=Delhi&minPrice=1000&type=Apartment", canonicalA)
}

func TestBuildSearchQuery_Empty(t *testing.T) {
	query, canonical, err := BuildSearchQuery(url.Values{})
	require.NoError(t, err)
	assert.Empty(t, query)
	assert.Empty(t, canonical)
}
