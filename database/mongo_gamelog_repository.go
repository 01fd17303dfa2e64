package database

import (
	"context"
	"fmt"
	"hitrate-app-go/logging"
	"hitrate-app-go/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoGameLogRepository struct {
	collection *mongo.Collection
	logger     *logging.Logger
}

func NewMongoGameLogRepository(db *MongoDB) *MongoGameLogRepository {
	collection := db.GameLogs()

	// One document per player per game per league.
	ensureUniqueIndex(collection, "league", "playerId", "date")

	return &MongoGameLogRepository{
		collection: collection,
		logger:     logging.WithPrefix("mongo_gamelog_repo"),
	}
}

// BulkUpsert replaces or inserts the given records in one write. Re-ingesting
// a feed is idempotent: existing (league, player, date) documents are
// replaced in place.
func (r *MongoGameLogRepository) BulkUpsert(ctx context.Context, records []models.GameRecord) error {
	if len(records) == 0 {
		return nil
	}

	writes := make([]mongo.WriteModel, 0, len(records))
	for i := range records {
		rec := &records[i]
		filter := bson.M{"league": rec.League, "playerId": rec.PlayerID, "date": rec.Date}
		writes = append(writes, mongo.NewReplaceOneModel().
			SetFilter(filter).
			SetReplacement(rec).
			SetUpsert(true))
	}

	opts := options.BulkWrite().SetOrdered(false)
	result, err := r.collection.BulkWrite(ctx, writes, opts)
	if err != nil {
		return fmt.Errorf("failed to bulk upsert game logs: %w", err)
	}

	r.logger.Infof("Upserted game logs: %d inserted, %d modified, %d matched",
		result.UpsertedCount, result.ModifiedCount, result.MatchedCount)
	return nil
}

// GetByLeague returns every stored record for a league, most recent first.
func (r *MongoGameLogRepository) GetByLeague(ctx context.Context, league string) ([]models.GameRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"league": league}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find game logs for %s: %w", league, err)
	}
	defer cursor.Close(ctx)

	var records []models.GameRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode game logs: %w", err)
	}
	return records, nil
}

// CountByLeague reports how many records a league holds, for health and
// ingest logging.
func (r *MongoGameLogRepository) CountByLeague(ctx context.Context, league string) (int64, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{"league": league})
	if err != nil {
		return 0, fmt.Errorf("failed to count game logs for %s: %w", league, err)
	}
	return n, nil
}

// DeleteLeague clears a league's records ahead of a full re-ingest.
func (r *MongoGameLogRepository) DeleteLeague(ctx context.Context, league string) error {
	result, err := r.collection.DeleteMany(ctx, bson.M{"league": league})
	if err != nil {
		return fmt.Errorf("failed to delete game logs for %s: %w", league, err)
	}
	r.logger.Infof("Deleted %d game logs for league %s", result.DeletedCount, league)
	return nil
}
