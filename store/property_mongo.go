package store

import (
	"context"
	"time"

	"github.com/DeshmukhRuturaj/BROKER-FREE/models"
	"github.com/DeshmukhRuturaj/BROKER-FREE/query"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoPropertyStore struct {
	collection *mongo.Collection
}

func NewMongoPropertyStore(collection *mongo.Collection) *MongoPropertyStore {
	return &MongoPropertyStore{collection: collection}
}

// EnsureIndexes creates the 2dsphere index for radius search and the text
// index backing free-text search over title/description/city/state.
func (s *MongoPropertyStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "location", Value: "2dsphere"}}},
		{Keys: bson.D{
			{Key: "title", Value: "text"},
			{Key: "description", Value: "text"},
			{Key: "address.city", Value: "text"},
			{Key: "address.state", Value: "text"},
		}},
	})
	return err
}

func (s *MongoPropertyStore) Create(ctx context.Context, property *models.Property) error {
	if property.ID.IsZero() {
		property.ID = primitive.NewObjectID()
	}
	now := time.Now()
	property.CreatedAt = now
	property.UpdatedAt = now
	if property.Images == nil {
		property.Images = []models.Image{}
	}
	if property.Amenities == nil {
		property.Amenities = []string{}
	}
	_, err := s.collection.InsertOne(ctx, property)
	return err
}

func (s *MongoPropertyStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Property, error) {
	var property models.Property
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&property)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &property, nil
}

// IncrementViews applies $inc so concurrent reads all count.
func (s *MongoPropertyStore) IncrementViews(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"views": 1}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoPropertyStore) Update(ctx context.Context, id primitive.ObjectID, upd models.PropertyUpdate) (*models.Property, error) {
	set := bson.M{"updatedAt": time.Now()}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.Price != nil {
		set["price"] = *upd.Price
	}
	if upd.PropertyType != nil {
		set["propertyType"] = *upd.PropertyType
	}
	if upd.Status != nil {
		set["status"] = *upd.Status
	}
	if upd.Bedrooms != nil {
		set["bedrooms"] = *upd.Bedrooms
	}
	if upd.Bathrooms != nil {
		set["bathrooms"] = *upd.Bathrooms
	}
	if upd.SquareFeet != nil {
		set["squareFeet"] = *upd.SquareFeet
	}
	if upd.YearBuilt != nil {
		set["yearBuilt"] = *upd.YearBuilt
	}
	if upd.Address != nil {
		set["address"] = *upd.Address
	}
	if upd.Location != nil {
		set["location"] = *upd.Location
	}
	if upd.Images != nil {
		set["images"] = upd.Images
	}
	if upd.Amenities != nil {
		set["amenities"] = upd.Amenities
	}
	if upd.Features != nil {
		set["features"] = *upd.Features
	}
	if upd.ContactInfo != nil {
		set["contactInfo"] = *upd.ContactInfo
	}
	if upd.IsActive != nil {
		set["isActive"] = *upd.IsActive
	}

	var property models.Property
	err := s.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&property)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &property, nil
}

func (s *MongoPropertyStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoPropertyStore) List(ctx context.Context, f query.Filters) ([]models.Property, int64, error) {
	selector := f.Selector()

	total, err := s.collection.CountDocuments(ctx, selector)
	if err != nil {
		return nil, 0, err
	}

	cursor, err := s.collection.Find(ctx, selector, f.FindOptions())
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	properties := []models.Property{}
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, 0, err
	}
	return properties, total, nil
}

func (s *MongoPropertyStore) Near(ctx context.Context, longitude, latitude, maxDistance float64) ([]models.Property, error) {
	cursor, err := s.collection.Find(ctx, query.NearSelector(longitude, latitude, maxDistance))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	properties := []models.Property{}
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, err
	}
	return properties, nil
}

func (s *MongoPropertyStore) FindBySeller(ctx context.Context, sellerID primitive.ObjectID) ([]models.Property, error) {
	cursor, err := s.collection.Find(
		ctx,
		bson.M{"seller": sellerID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	properties := []models.Property{}
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, err
	}
	return properties, nil
}

func (s *MongoPropertyStore) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Property, error) {
	if len(ids) == 0 {
		return []models.Property{}, nil
	}
	cursor, err := s.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	properties := []models.Property{}
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, err
	}
	return properties, nil
}

func (s *MongoPropertyStore) AddImages(ctx context.Context, id primitive.ObjectID, images []models.Image) (*models.Property, error) {
	var property models.Property
	err := s.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{
			"$push": bson.M{"images": bson.M{"$each": images}},
			"$set":  bson.M{"updatedAt": time.Now()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&property)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &property, nil
}
