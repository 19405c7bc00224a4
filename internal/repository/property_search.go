package repository

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// Search parameter names recognized by the filter builder. Anything else in
// the query string is ignored and excluded from the canonical serialization.
var searchParams = map[string]bool{
	"type": true, "state": true, "city": true, "furnished": true,
	"listedBy": true, "colorTheme": true, "listingType": true,
	"isVerified": true, "bedrooms": true, "bathrooms": true,
	"minPrice": true, "maxPrice": true, "minArea": true, "maxArea": true,
	"minRating": true, "availableFrom": true, "amenities": true, "tags": true,
}

// BuildSearchQuery translates the flat query-parameter set of
// GET /api/properties/search into a Mongo filter document plus the canonical
// serialization of the recognized parameters.
//
// The canonical form sorts parameters by name so two requests with the same
// filters in a different order serialize identically; the cache package
// derives the search cache key from it. Coercion failures (a non-numeric
// value for a numeric field, an unparseable date) are reported to the caller
// as client errors.
//
// Filter semantics: equality for the string fields and bedroom/bathroom
// counts, inclusive ranges for price/area/rating, availability on or before
// the requested date, and full-superset matching for amenities and tags.
func BuildSearchQuery(params url.Values) (bson.M, string, error) {
	query := bson.M{}

	for _, name := range []string{"type", "state", "city", "furnished", "listedBy", "colorTheme", "listingType"} {
		if v := params.Get(name); v != "" {
			query[name] = v
		}
	}

	if v := params.Get("isVerified"); v != "" {
		query["isVerified"] = v == "true"
	}

	if v := params.Get("bedrooms"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, "", fmt.Errorf("bedrooms must be an integer, got %q", v)
		}
		query["bedrooms"] = n
	}
	if v := params.Get("bathrooms"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, "", fmt.Errorf("bathrooms must be an integer, got %q", v)
		}
		query["bathrooms"] = n
	}

	if err := rangeFilter(query, "price", params.Get("minPrice"), params.Get("maxPrice")); err != nil {
		return nil, "", err
	}
	if err := rangeFilter(query, "areaSqFt", params.Get("minArea"), params.Get("maxArea")); err != nil {
		return nil, "", err
	}
	if v := params.Get("minRating"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, "", fmt.Errorf("minRating must be a number, got %q", v)
		}
		query["rating"] = bson.M{"$gte": f}
	}

	if v := params.Get("availableFrom"); v != "" {
		date, err := parseSearchDate(v)
		if err != nil {
			return nil, "", fmt.Errorf("availableFrom must be YYYY-MM-DD or RFC 3339, got %q", v)
		}
		// Listings available on or before the requested date.
		query["availableFrom"] = bson.M{"$lte": date}
	}

	if set := setParam(params["amenities"]); len(set) > 0 {
		query["amenities"] = bson.M{"$all": set}
	}
	if set := setParam(params["tags"]); len(set) > 0 {
		query["tags"] = bson.M{"$all": set}
	}

	return query, canonicalize(params), nil
}

// rangeFilter merges optional inclusive lower/upper bounds into a single
// field constraint.
func rangeFilter(query bson.M, field, minVal, maxVal string) error {
	bounds := bson.M{}
	if minVal != "" {
		f, err := strconv.ParseFloat(minVal, 64)
		if err != nil {
			return fmt.Errorf("min %s must be a number, got %q", field, minVal)
		}
		bounds["$gte"] = f
	}
	if maxVal != "" {
		f, err := strconv.ParseFloat(maxVal, 64)
		if err != nil {
			return fmt.Errorf("max %s must be a number, got %q", field, maxVal)
		}
		bounds["$lte"] = f
	}
	if len(bounds) > 0 {
		query[field] = bounds
	}
	return nil
}

// setParam flattens repeated and comma-separated values into a trimmed set.
func setParam(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func parseSearchDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// canonicalize serializes the recognized parameters as sorted k=v pairs.
// Sorting keys makes the serialization independent of the order the client
// sent them in, so identical filter sets always map to the same cache key.
func canonicalize(params url.Values) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		if searchParams[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+strings.Join(params[k], ","))
	}
	return strings.Join(pairs, "&")
}
