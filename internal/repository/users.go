package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/afrowave/api/internal/config"
	"github.com/afrowave/api/internal/model/user"
)

var (
	ErrEmailTaken   = errors.New("email already registered")
	ErrUserNotFound = errors.New("user not found")
)

const usersCollection = "users"

// Users defines the user directory operations consumed by services.
type Users interface {
	Create(ctx context.Context, u user.User) (user.User, error)
	FindByEmail(ctx context.Context, email string) (user.User, error)
	FindByID(ctx context.Context, id string) (user.User, error)
	Update(ctx context.Context, u user.User) error
	Delete(ctx context.Context, id string) error
	SearchByName(ctx context.Context, name string, creatorType user.CreatorType, page, limit int) ([]user.User, int64, error)
	CreatorTypeCounts(ctx context.Context) (map[user.CreatorType]int64, error)
}

// MongoUsers implements Users on a MongoDB collection.
type MongoUsers struct {
	col *mongo.Collection
}

// Connect dials the document store and returns the client plus the user
// repository. The email unique index is ensured at startup.
func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, *MongoUsers, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	col := client.Database(cfg.Database).Collection(usersCollection)

	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := col.Indexes().CreateOne(ctx, indexModel); err != nil {
		return nil, nil, fmt.Errorf("failed to ensure email index: %w", err)
	}

	return client, &MongoUsers{col: col}, nil
}

// NewMongoUsers wraps an existing collection, mainly for tests.
func NewMongoUsers(col *mongo.Collection) *MongoUsers {
	return &MongoUsers{col: col}
}

// Create inserts a new user document. A duplicate email maps to ErrEmailTaken.
func (r *MongoUsers) Create(ctx context.Context, u user.User) (user.User, error) {
	now := time.Now().UTC()
	u.ID = primitive.NewObjectID()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := r.col.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return user.User{}, ErrEmailTaken
		}
		return user.User{}, fmt.Errorf("failed to insert user: %w", err)
	}
	return u, nil
}

// FindByEmail looks a user up by exact email.
func (r *MongoUsers) FindByEmail(ctx context.Context, email string) (user.User, error) {
	var u user.User
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return user.User{}, ErrUserNotFound
	}
	if err != nil {
		return user.User{}, fmt.Errorf("failed to find user by email: %w", err)
	}
	return u, nil
}

// FindByID looks a user up by its hex object id.
func (r *MongoUsers) FindByID(ctx context.Context, id string) (user.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return user.User{}, ErrUserNotFound
	}

	var u user.User
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return user.User{}, ErrUserNotFound
	}
	if err != nil {
		return user.User{}, fmt.Errorf("failed to find user by id: %w", err)
	}
	return u, nil
}

// Update rewrites the mutable profile fields of an existing document.
func (r *MongoUsers) Update(ctx context.Context, u user.User) error {
	update := bson.M{"$set": bson.M{
		"name":         u.Name,
		"creator_type": u.CreatorType,
		"bio":          u.Bio,
		"age":          u.Age,
		"password":     u.Password,
		"updated_at":   time.Now().UTC(),
	}}

	res, err := r.col.UpdateByID(ctx, u.ID, update)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

// Delete removes a user document by hex object id.
func (r *MongoUsers) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrUserNotFound
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

// SearchByName pages through users whose name matches case-insensitively,
// optionally narrowed to one creator type. Returns the page and total count.
func (r *MongoUsers) SearchByName(ctx context.Context, name string, creatorType user.CreatorType, page, limit int) ([]user.User, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	filter := bson.M{}
	if name != "" {
		filter["name"] = bson.M{"$regex": regexp.QuoteMeta(name), "$options": "i"}
	}
	if creatorType != "" {
		filter["creator_type"] = creatorType
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	opts := options.Find().
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []user.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, 0, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, total, nil
}

// CreatorTypeCounts aggregates account counts per creator type.
func (r *MongoUsers) CreatorTypeCounts(ctx context.Context) (map[user.CreatorType]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$creator_type", "count": bson.M{"$sum": 1}}}},
	}

	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate creator types: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		ID    user.CreatorType `bson:"_id"`
		Count int64            `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode creator type counts: %w", err)
	}

	counts := make(map[user.CreatorType]int64, len(rows))
	for _, row := range rows {
		counts[row.ID] = row.Count
	}
	return counts, nil
}
