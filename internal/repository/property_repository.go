package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/iliyamo/property-listing-service/internal/model"
)

type PropertyRepo struct {
	collection *mongo.Collection
}

func NewPropertyRepo(db *mongo.Database) *PropertyRepo {
	return &PropertyRepo{collection: db.Collection("properties")}
}

// Insert stores a new property. The unique index on the external id turns a
// duplicate insert into ErrPropertyIDExists.
func (r *PropertyRepo) Insert(ctx context.Context, p *model.Property) error {
	res, err := r.collection.InsertOne(ctx, p)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrPropertyIDExists
		}
		return err
	}
	p.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindAll returns every property, unfiltered.
func (r *PropertyRepo) FindAll(ctx context.Context) ([]model.Property, error) {
	return r.find(ctx, bson.M{})
}

// Search returns the properties matching a query produced by
// BuildSearchQuery.
func (r *PropertyRepo) Search(ctx context.Context, query bson.M) ([]model.Property, error) {
	return r.find(ctx, query)
}

func (r *PropertyRepo) find(ctx context.Context, query bson.M) ([]model.Property, error) {
	cursor, err := r.collection.Find(ctx, query)
	if err != nil {
		return nil, err
	}
	properties := []model.Property{}
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, err
	}
	return properties, nil
}

// FindByIDs loads properties by internal id, keyed by id. Used to expand
// favorites; ids whose property vanished are simply absent.
func (r *PropertyRepo) FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]model.Property, error) {
	out := make(map[primitive.ObjectID]model.Property, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	properties, err := r.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	for _, p := range properties {
		out[p.ID] = p
	}
	return out, nil
}

func (r *PropertyRepo) FindByExternalID(ctx context.Context, externalID string) (*model.Property, error) {
	var p model.Property
	err := r.collection.FindOne(ctx, bson.M{"id": externalID}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Update applies the given $set document to the property with the external
// id and returns the updated record.
func (r *PropertyRepo) Update(ctx context.Context, externalID string, set bson.M) (*model.Property, error) {
	set["updatedAt"] = time.Now().UTC()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var p model.Property
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"id": externalID}, bson.M{"$set": set}, opts).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PropertyRepo) Delete(ctx context.Context, externalID string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"id": externalID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
