package preferencesRepo

import (
	"context"
	"log"
	"time"

	"routed/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the unique per-user indexes. The unique index on
// customer_preferences enforces the one-record-per-user invariant at the
// storage layer.
func EnsureIndexes() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db := database.MongoClient.Database("routed")
	unique := options.Index().SetUnique(true)

	for _, coll := range []string{"customer_preferences", "booking_history", "assistant_responses"} {
		_, err := db.Collection(coll).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: unique,
		})
		if err != nil {
			log.Printf("failed to create user_id index on %s: %v", coll, err)
		}
	}
}
