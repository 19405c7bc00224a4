package cache

import (
	"crypto/sha1"
	"fmt"
	"time"
)

// Key families under the property namespace. Namespace is the shared prefix
// used for bulk invalidation after a create, when any cached list or search
// result may have become stale.
const (
	Namespace    = "property:"
	listKey      = Namespace + "list"
	detailPrefix = Namespace + "detail:"
	searchPrefix = Namespace + "search:"
)

// TTL policy. Detail pages are read far more often than they are written;
// list and search results churn faster.
const (
	ListTTL   = 300 * time.Second
	DetailTTL = 600 * time.Second
	SearchTTL = 300 * time.Second
)

// ListKey returns the singleton key for the full property list.
func ListKey() string { return listKey }

// DetailKey returns the cache key for a single property by external id.
func DetailKey(externalID string) string { return detailPrefix + externalID }

// SearchKey derives the cache key for a search-result set from the canonical
// filter serialization produced by the query builder. The serialization is
// already order-independent; hashing it keeps keys short regardless of how
// many filters the request carried.
func SearchKey(canonical string) string {
	sum := sha1.Sum([]byte(canonical))
	return fmt.Sprintf("%s%x", searchPrefix, sum)
}
