package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/Veraticus/finmate/internal/common"
	"github.com/Veraticus/finmate/internal/model"
)

// ProfileCollection holds one document per user, keyed by user_id.
const ProfileCollection = "user_profiles"

// pingRetry covers a database container that starts alongside the API.
var pingRetry = common.RetryOptions{MaxAttempts: 4, InitialDelay: 500 * time.Millisecond}

// MongoStorage stores profiles in a MongoDB collection.
type MongoStorage struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewMongoStorage connects to uri and verifies the server is reachable.
func NewMongoStorage(ctx context.Context, uri, database string) (*MongoStorage, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if uri == "" {
		return nil, fmt.Errorf("%w: set MONGO_URI", common.ErrMissingConfig)
	}
	if err := validateString(database, "database"); err != nil {
		return nil, err
	}

	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI)

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	ping := func() error { return client.Ping(ctx, readpref.Primary()) }
	if err := common.WithRetry(ctx, ping, pingRetry); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return &MongoStorage{
		client:     client,
		collection: client.Database(database).Collection(ProfileCollection),
	}, nil
}

// EnsureIndexes creates the unique user_id index.
func (m *MongoStorage) EnsureIndexes(ctx context.Context) error {
	_, err := m.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create user_id index: %w", err)
	}
	return nil
}

// GetProfile loads the profile stored for userID.
func (m *MongoStorage) GetProfile(ctx context.Context, userID string) (*model.UserProfile, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}

	var profile model.UserProfile
	err := m.collection.FindOne(ctx, profileFilter(userID)).Decode(&profile)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: profile for user %s", common.ErrNotFound, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &profile, nil
}

// SaveProfile replaces the user's document, creating it when absent.
func (m *MongoStorage) SaveProfile(ctx context.Context, profile *model.UserProfile) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateProfile(profile); err != nil {
		return err
	}

	_, err := m.collection.ReplaceOne(ctx, profileFilter(profile.UserID), profile,
		options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// Close disconnects the client.
func (m *MongoStorage) Close() error {
	return m.client.Disconnect(context.Background())
}

func profileFilter(userID string) bson.M {
	return bson.M{"user_id": userID}
}
