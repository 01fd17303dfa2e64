package database

import (
	"context"
	"fmt"
	"hitrate-app-go/logging"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names. Game logs and team totals are keyed per league so every
// league's feed shares the two collections.
const (
	collGameLogs   = "game_logs"
	collTeamTotals = "team_totals"
	collUsers      = "users"
)

type Config struct {
	Host     string
	Port     string
	Username string
	Password string
	Database string
}

type MongoDB struct {
	client   *mongo.Client
	database *mongo.Database
}

func NewMongoConnection(config Config) (*MongoDB, error) {
	logger := logging.WithPrefix("MongoDB")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var uri string
	if config.Username != "" && config.Password != "" {
		uri = fmt.Sprintf("mongodb://%s:%s@%s:%s/%s?authSource=%s",
			config.Username, config.Password, config.Host, config.Port, config.Database, config.Database)
		logger.Infof("Connecting with authentication as user: %s", config.Username)
	} else {
		uri = fmt.Sprintf("mongodb://%s:%s/%s",
			config.Host, config.Port, config.Database)
		logger.Info("Connecting without authentication")
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		logger.Errorf("Failed to connect: %v", err)
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		logger.Errorf("Failed to ping: %v", err)
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	database := client.Database(config.Database)
	logger.Infof("Successfully connected to %s:%s database=%s", config.Host, config.Port, config.Database)

	return &MongoDB{
		client:   client,
		database: database,
	}, nil
}

func (m *MongoDB) Close() error {
	logger := logging.WithPrefix("MongoDB")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := m.client.Disconnect(ctx)
	if err != nil {
		logger.Errorf("Error disconnecting: %v", err)
	} else {
		logger.Info("Connection closed successfully")
	}
	return err
}

func (m *MongoDB) TestConnection() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := m.client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("MongoDB ping failed: %w", err)
	}
	return nil
}

// GameLogs returns the per-player game-log collection.
func (m *MongoDB) GameLogs() *mongo.Collection {
	return m.database.Collection(collGameLogs)
}

// TeamTotals returns the per-team game-totals collection.
func (m *MongoDB) TeamTotals() *mongo.Collection {
	return m.database.Collection(collTeamTotals)
}

// Users returns the account collection.
func (m *MongoDB) Users() *mongo.Collection {
	return m.database.Collection(collUsers)
}

// ensureUniqueIndex creates a unique compound index over the given keys.
// Feed ingest relies on these indexes for idempotent replace-upserts, so a
// failure is logged loudly but does not stop startup.
func ensureUniqueIndex(coll *mongo.Collection, keys ...string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	idx := bson.D{}
	for _, key := range keys {
		idx = append(idx, bson.E{Key: key, Value: 1})
	}

	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    idx,
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		logging.WithPrefix("MongoDB").Errorf("Failed to create unique index on %s %v: %v",
			coll.Name(), keys, err)
	}
}
