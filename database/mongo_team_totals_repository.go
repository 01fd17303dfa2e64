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

type MongoTeamTotalsRepository struct {
	collection *mongo.Collection
	logger     *logging.Logger
}

func NewMongoTeamTotalsRepository(db *MongoDB) *MongoTeamTotalsRepository {
	collection := db.TeamTotals()

	ensureUniqueIndex(collection, "league", "team", "date")

	return &MongoTeamTotalsRepository{
		collection: collection,
		logger:     logging.WithPrefix("mongo_team_totals_repo"),
	}
}

func (r *MongoTeamTotalsRepository) BulkUpsert(ctx context.Context, totals []models.TeamGameTotal) error {
	if len(totals) == 0 {
		return nil
	}

	writes := make([]mongo.WriteModel, 0, len(totals))
	for i := range totals {
		tot := &totals[i]
		filter := bson.M{"league": tot.League, "team": tot.Team, "date": tot.Date}
		writes = append(writes, mongo.NewReplaceOneModel().
			SetFilter(filter).
			SetReplacement(tot).
			SetUpsert(true))
	}

	opts := options.BulkWrite().SetOrdered(false)
	result, err := r.collection.BulkWrite(ctx, writes, opts)
	if err != nil {
		return fmt.Errorf("failed to bulk upsert team totals: %w", err)
	}

	r.logger.Infof("Upserted team totals: %d inserted, %d modified",
		result.UpsertedCount, result.ModifiedCount)
	return nil
}

func (r *MongoTeamTotalsRepository) GetByLeague(ctx context.Context, league string) ([]models.TeamGameTotal, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"league": league}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find team totals for %s: %w", league, err)
	}
	defer cursor.Close(ctx)

	var totals []models.TeamGameTotal
	if err := cursor.All(ctx, &totals); err != nil {
		return nil, fmt.Errorf("failed to decode team totals: %w", err)
	}
	return totals, nil
}
