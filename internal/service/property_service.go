// Package service orchestrates the property and favorite operations over the
// persistent store, the cache-aside layer and the event publisher. The cache
// is never a correctness dependency: every cache failure degrades to a miss
// and the store remains authoritative.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/iliyamo/property-listing-service/internal/cache"
	"github.com/iliyamo/property-listing-service/internal/model"
	"github.com/iliyamo/property-listing-service/internal/queue"
	"github.com/iliyamo/property-listing-service/internal/repository"
)

// ErrValidation wraps request-body and filter-coercion problems so handlers
// can answer with a client error instead of a 500.
var ErrValidation = errors.New("validation failed")

// PropertyStore is the persistence surface the property service needs.
// *repository.PropertyRepo satisfies it.
type PropertyStore interface {
	Insert(ctx context.Context, p *model.Property) error
	FindAll(ctx context.Context) ([]model.Property, error)
	Search(ctx context.Context, query bson.M) ([]model.Property, error)
	FindByExternalID(ctx context.Context, externalID string) (*model.Property, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]model.Property, error)
	Update(ctx context.Context, externalID string, set bson.M) (*model.Property, error)
	Delete(ctx context.Context, externalID string) error
}

// UserStore resolves creator identities for read enrichment.
type UserStore interface {
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]model.User, error)
}

// Cache is the cache-aside layer; *cache.PropertyCache satisfies it.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	DeleteMatching(ctx context.Context, prefix string) error
}

// EventPublisher emits property mutation events; *queue.Publisher satisfies
// it. Publish failures never fail the request.
type EventPublisher interface {
	Publish(ctx context.Context, event queue.PropertyEvent) error
}

// FavoriteCleaner removes the favorites of a deleted property.
type FavoriteCleaner interface {
	RemoveByProperty(ctx context.Context, property primitive.ObjectID) error
}

type PropertyService struct {
	properties PropertyStore
	users      UserStore
	favorites  FavoriteCleaner
	cache      Cache
	events     EventPublisher
	logger     *zap.Logger
}

func NewPropertyService(properties PropertyStore, users UserStore, favorites FavoriteCleaner, c Cache, events EventPublisher, logger *zap.Logger) *PropertyService {
	return &PropertyService{
		properties: properties,
		users:      users,
		favorites:  favorites,
		cache:      c,
		events:     events,
		logger:     logger,
	}
}

// List returns every property enriched with creator identity. The second
// return value reports whether the payload came from cache.
func (s *PropertyService) List(ctx context.Context) ([]model.PropertyView, bool, error) {
	key := cache.ListKey()
	if views, ok := s.cachedViews(ctx, key); ok {
		return views, true, nil
	}
	properties, err := s.properties.FindAll(ctx)
	if err != nil {
		return nil, false, err
	}
	views, err := s.enrich(ctx, properties)
	if err != nil {
		return nil, false, err
	}
	s.populate(ctx, key, views, cache.ListTTL)
	return views, false, nil
}

// Search translates the request parameters into a store query, then runs the
// same cache-aside read as List under a canonical per-filter-set key.
// Coercion failures surface as ErrValidation.
func (s *PropertyService) Search(ctx context.Context, params url.Values) ([]model.PropertyView, bool, error) {
	query, canonical, err := repository.BuildSearchQuery(params)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %s", ErrValidation, err)
	}
	key := cache.SearchKey(canonical)
	if views, ok := s.cachedViews(ctx, key); ok {
		return views, true, nil
	}
	properties, err := s.properties.Search(ctx, query)
	if err != nil {
		return nil, false, err
	}
	views, err := s.enrich(ctx, properties)
	if err != nil {
		return nil, false, err
	}
	s.populate(ctx, key, views, cache.SearchTTL)
	return views, false, nil
}

// Detail returns one property by external id. A miss on a nonexistent
// property is terminal: nothing is cached, so the key stays absent.
func (s *PropertyService) Detail(ctx context.Context, externalID string) (*model.PropertyView, bool, error) {
	key := cache.DetailKey(externalID)
	if data, err := s.cache.Get(ctx, key); err == nil {
		var view model.PropertyView
		if err := json.Unmarshal(data, &view); err == nil {
			return &view, true, nil
		}
		s.logger.Warn("discarding undecodable cache entry", zap.String("key", key))
	}
	p, err := s.properties.FindByExternalID(ctx, externalID)
	if err != nil {
		return nil, false, err
	}
	views, err := s.enrich(ctx, []model.Property{*p})
	if err != nil {
		return nil, false, err
	}
	view := views[0]
	if data, err := json.Marshal(view); err == nil {
		_ = s.cache.Set(ctx, key, data, cache.DetailTTL)
	}
	return &view, false, nil
}

// Create validates and stores a new property owned by owner. A new row could
// match any cached list or search result, so the entire property namespace
// is invalidated.
func (s *PropertyService) Create(ctx context.Context, req *model.CreatePropertyRequest, owner *model.User) (*model.PropertyView, error) {
	p, err := req.Property(owner.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}
	if err := s.properties.Insert(ctx, p); err != nil {
		return nil, err
	}
	_ = s.cache.DeleteMatching(ctx, cache.Namespace)
	s.publish(ctx, queue.ActionCreated, p, owner)
	view := model.PropertyView{Property: *p, CreatedBy: creatorOf(owner)}
	return &view, nil
}

// Update applies a partial update after the ownership check. Only the detail
// key and the list key are invalidated; search-result entries are left to
// expire on their TTL, trading a short staleness window for cheap
// invalidation.
func (s *PropertyService) Update(ctx context.Context, externalID string, req *model.UpdatePropertyRequest, requester *model.User) (*model.PropertyView, error) {
	current, err := s.properties.FindByExternalID(ctx, externalID)
	if err != nil {
		return nil, err
	}
	if current.CreatedBy != requester.ID {
		return nil, repository.ErrForbidden
	}
	set, err := req.Document()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}
	updated := current
	if len(set) > 0 {
		if updated, err = s.properties.Update(ctx, externalID, set); err != nil {
			return nil, err
		}
		s.invalidate(ctx, externalID)
		s.publish(ctx, queue.ActionUpdated, updated, requester)
	}
	views, err := s.enrich(ctx, []model.Property{*updated})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// Delete removes a property after the ownership check, together with any
// favorites pointing at it.
func (s *PropertyService) Delete(ctx context.Context, externalID string, requester *model.User) error {
	current, err := s.properties.FindByExternalID(ctx, externalID)
	if err != nil {
		return err
	}
	if current.CreatedBy != requester.ID {
		return repository.ErrForbidden
	}
	if err := s.properties.Delete(ctx, externalID); err != nil {
		return err
	}
	if err := s.favorites.RemoveByProperty(ctx, current.ID); err != nil {
		s.logger.Warn("failed to remove favorites of deleted property",
			zap.String("property_id", externalID), zap.Error(err))
	}
	s.invalidate(ctx, externalID)
	s.publish(ctx, queue.ActionDeleted, current, requester)
	return nil
}

// invalidate drops the detail and list keys after an update or delete.
func (s *PropertyService) invalidate(ctx context.Context, externalID string) {
	_ = s.cache.Delete(ctx, cache.DetailKey(externalID))
	_ = s.cache.Delete(ctx, cache.ListKey())
}

// cachedViews reads and decodes a cached result set; any failure counts as a
// miss.
func (s *PropertyService) cachedViews(ctx context.Context, key string) ([]model.PropertyView, bool) {
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, false
	}
	var views []model.PropertyView
	if err := json.Unmarshal(data, &views); err != nil {
		s.logger.Warn("discarding undecodable cache entry", zap.String("key", key))
		return nil, false
	}
	return views, true
}

func (s *PropertyService) populate(ctx context.Context, key string, views []model.PropertyView, ttl time.Duration) {
	data, err := json.Marshal(views)
	if err != nil {
		return
	}
	_ = s.cache.Set(ctx, key, data, ttl)
}

// enrich expands each property's creator reference into name and email.
// Owners that no longer exist leave an empty creator rather than failing the
// read.
func (s *PropertyService) enrich(ctx context.Context, properties []model.Property) ([]model.PropertyView, error) {
	ids := make([]primitive.ObjectID, 0, len(properties))
	seen := make(map[primitive.ObjectID]bool, len(properties))
	for _, p := range properties {
		if !seen[p.CreatedBy] {
			seen[p.CreatedBy] = true
			ids = append(ids, p.CreatedBy)
		}
	}
	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	views := make([]model.PropertyView, 0, len(properties))
	for _, p := range properties {
		view := model.PropertyView{Property: p}
		if u, ok := users[p.CreatedBy]; ok {
			view.CreatedBy = model.Creator{ID: u.ID, Name: u.Name, Email: u.Email}
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *PropertyService) publish(ctx context.Context, action string, p *model.Property, actor *model.User) {
	_ = s.events.Publish(ctx, queue.PropertyEvent{
		Action:     action,
		ID:         p.ExternalID,
		Title:      p.Title,
		City:       p.City,
		State:      p.State,
		Price:      p.Price,
		Actor:      actor.ID.Hex(),
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})
}

func creatorOf(u *model.User) model.Creator {
	return model.Creator{ID: u.ID, Name: u.Name, Email: u.Email}
}
