package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/iliyamo/property-listing-service/internal/model"
)

type FavoriteRepo struct {
	collection *mongo.Collection
}

func NewFavoriteRepo(db *mongo.Database) *FavoriteRepo {
	return &FavoriteRepo{collection: db.Collection("favorites")}
}

// Add records that user favorited property. The compound unique index is the
// dedup guarantee: a second insert for the same pair comes back as
// ErrDuplicateFavorite without any read-before-write.
func (r *FavoriteRepo) Add(ctx context.Context, user, property primitive.ObjectID) (*model.Favorite, error) {
	fav := &model.Favorite{
		UserID:    user,
		Property:  property,
		CreatedAt: time.Now().UTC(),
	}
	res, err := r.collection.InsertOne(ctx, fav)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateFavorite
		}
		return nil, err
	}
	fav.ID = res.InsertedID.(primitive.ObjectID)
	return fav, nil
}

// Remove deletes the (user, property) favorite; ErrNotFound when it does not
// exist.
func (r *FavoriteRepo) Remove(ctx context.Context, user, property primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"user": user, "property": property})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// RemoveByProperty drops every favorite pointing at a property; used when
// the property itself is deleted.
func (r *FavoriteRepo) RemoveByProperty(ctx context.Context, property primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"property": property})
	return err
}

func (r *FavoriteRepo) FindByUser(ctx context.Context, user primitive.ObjectID) ([]model.Favorite, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"user": user})
	if err != nil {
		return nil, err
	}
	favorites := []model.Favorite{}
	if err := cursor.All(ctx, &favorites); err != nil {
		return nil, err
	}
	return favorites, nil
}

// Exists reports whether the pair is favorited. Absence is a normal outcome,
// not an error.
func (r *FavoriteRepo) Exists(ctx context.Context, user, property primitive.ObjectID) (bool, error) {
	err := r.collection.FindOne(ctx, bson.M{"user": user, "property": property}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
