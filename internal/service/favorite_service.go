package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/iliyamo/property-listing-service/internal/model"
	"github.com/iliyamo/property-listing-service/internal/repository"
)

// FavoriteStore is the persistence surface for the user↔property favorite
// relation; *repository.FavoriteRepo satisfies it.
type FavoriteStore interface {
	Add(ctx context.Context, user, property primitive.ObjectID) (*model.Favorite, error)
	Remove(ctx context.Context, user, property primitive.ObjectID) error
	RemoveByProperty(ctx context.Context, property primitive.ObjectID) error
	FindByUser(ctx context.Context, user primitive.ObjectID) ([]model.Favorite, error)
	Exists(ctx context.Context, user, property primitive.ObjectID) (bool, error)
}

type FavoriteService struct {
	favorites  FavoriteStore
	properties PropertyStore
	logger     *zap.Logger
}

func NewFavoriteService(favorites FavoriteStore, properties PropertyStore, logger *zap.Logger) *FavoriteService {
	return &FavoriteService{favorites: favorites, properties: properties, logger: logger}
}

// Add favorites the property with the given external id for the user.
// Returns repository.ErrNotFound when the property does not exist and
// repository.ErrDuplicateFavorite when the pair is already recorded.
func (s *FavoriteService) Add(ctx context.Context, user *model.User, propertyID string) (*model.Favorite, error) {
	p, err := s.properties.FindByExternalID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	return s.favorites.Add(ctx, user.ID, p.ID)
}

// Remove deletes the favorite; repository.ErrNotFound covers both a missing
// property and a missing favorite.
func (s *FavoriteService) Remove(ctx context.Context, user *model.User, propertyID string) error {
	p, err := s.properties.FindByExternalID(ctx, propertyID)
	if err != nil {
		return err
	}
	return s.favorites.Remove(ctx, user.ID, p.ID)
}

// List returns the user's favorites, each expanded with the fixed property
// projection. Favorites whose property vanished are dropped from the result.
func (s *FavoriteService) List(ctx context.Context, user *model.User) ([]model.FavoriteView, error) {
	favorites, err := s.favorites.FindByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, 0, len(favorites))
	for _, f := range favorites {
		ids = append(ids, f.Property)
	}
	properties, err := s.properties.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	views := make([]model.FavoriteView, 0, len(favorites))
	for _, f := range favorites {
		p, ok := properties[f.Property]
		if !ok {
			s.logger.Warn("favorite references missing property",
				zap.String("favorite_id", f.ID.Hex()), zap.String("property_oid", f.Property.Hex()))
			continue
		}
		views = append(views, model.FavoriteView{
			ID:        f.ID,
			Property:  model.Projection(&p),
			CreatedAt: f.CreatedAt,
		})
	}
	return views, nil
}

// Check reports whether the user has the property favorited. An unknown
// property id reports false; absence is a valid outcome, not an error.
func (s *FavoriteService) Check(ctx context.Context, user *model.User, propertyID string) (bool, error) {
	p, err := s.properties.FindByExternalID(ctx, propertyID)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return s.favorites.Exists(ctx, user.ID, p.ID)
}
