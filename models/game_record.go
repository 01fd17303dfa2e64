package models

import (
	"time"
)

// GameRecord is one player's statistical line in one game. Records come from
// the league ingestion pipeline and are never mutated after loading; the
// analysis engine only filters, sorts, and derives from them.
//
// Stats maps statistic keys to numeric values. A missing or non-numeric cell
// in the source table is an absent key, not a zero — the distinction matters
// for hit-rate math.
type GameRecord struct {
	League     string             `json:"league" bson:"league"`
	PlayerID   string             `json:"playerId" bson:"playerId"`
	PlayerName string             `json:"playerName" bson:"playerName"`
	Team       string             `json:"team" bson:"team"`
	Opponent   string             `json:"opponent" bson:"opponent"`
	Date       time.Time          `json:"date" bson:"date"`
	Position   string             `json:"position" bson:"position"`
	PosBucket  string             `json:"posBucket" bson:"posBucket"`
	Stats      map[string]float64 `json:"stats" bson:"stats"`
}

// Stat returns the value for a statistic and whether it was recorded.
func (g *GameRecord) Stat(name string) (float64, bool) {
	v, ok := g.Stats[name]
	return v, ok
}

// TeamGameTotal is one team's aggregate statistic line in one game: the
// amounts an opponent allowed in that game. Team-level rows come from the
// team-totals feed; position-scoped rows are derived by summing GameRecords
// per (opponent, game, position bucket), in which case PosBucket is set.
type TeamGameTotal struct {
	League    string             `json:"league" bson:"league"`
	Team      string             `json:"team" bson:"team"`
	Opponent  string             `json:"opponent" bson:"opponent"`
	Date      time.Time          `json:"date" bson:"date"`
	PosBucket string             `json:"posBucket,omitempty" bson:"posBucket,omitempty"`
	Stats     map[string]float64 `json:"stats" bson:"stats"`
}
