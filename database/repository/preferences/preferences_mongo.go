package preferencesRepo

import (
	"context"
	"errors"

	"routed/database"
	"routed/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoPreferencesRepo struct {
	prefs   *mongo.Collection
	history *mongo.Collection
	archive *mongo.Collection
}

// NewMongoPreferencesRepo returns a Repository backed by MongoDB.
func NewMongoPreferencesRepo() Repository {
	db := database.MongoClient.Database("routed")
	return &mongoPreferencesRepo{
		prefs:   db.Collection("customer_preferences"),
		history: db.Collection("booking_history"),
		archive: db.Collection("assistant_responses"),
	}
}

// GetPreferences returns the single preference record for a user, or nil if
// none exists.
func (r *mongoPreferencesRepo) GetPreferences(ctx context.Context, userID string) (*models.CustomerPreferences, error) {
	var prefs models.CustomerPreferences
	err := r.prefs.FindOne(ctx, bson.M{"user_id": userID}).Decode(&prefs)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &prefs, nil
}

// UpsertPreferences replaces the per-user record, creating it when absent.
// The user_id filter keeps the one-record-per-user invariant.
func (r *mongoPreferencesRepo) UpsertPreferences(ctx context.Context, prefs models.CustomerPreferences) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.prefs.ReplaceOne(ctx, bson.M{"user_id": prefs.UserID}, prefs, opts)
	return err
}

// historyDoc holds one user's booking log as a single ordered array.
type historyDoc struct {
	UserID   string                  `bson:"user_id"`
	Bookings []models.BookingHistory `bson:"bookings"`
}

func (r *mongoPreferencesRepo) GetBookingHistory(ctx context.Context, userID string) ([]models.BookingHistory, error) {
	var doc historyDoc
	err := r.history.FindOne(ctx, bson.M{"user_id": userID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return doc.Bookings, nil
}

// AppendBooking pushes onto the per-user list, creating it if absent.
func (r *mongoPreferencesRepo) AppendBooking(ctx context.Context, booking models.BookingHistory) error {
	opts := options.Update().SetUpsert(true)
	_, err := r.history.UpdateOne(ctx,
		bson.M{"user_id": booking.UserID},
		bson.M{"$push": bson.M{"bookings": booking}},
		opts,
	)
	return err
}

type archiveDoc struct {
	UserID    string                             `bson:"user_id"`
	Responses []models.ArchivedAssistantResponse `bson:"responses"`
}

// AppendAssistantResponse appends and truncates to the newest
// AssistantArchiveCap entries in a single atomic per-user update.
func (r *mongoPreferencesRepo) AppendAssistantResponse(ctx context.Context, userID string, resp models.ArchivedAssistantResponse) error {
	opts := options.Update().SetUpsert(true)
	_, err := r.archive.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$push": bson.M{"responses": bson.M{
			"$each":  bson.A{resp},
			"$slice": -AssistantArchiveCap,
		}}},
		opts,
	)
	return err
}

func (r *mongoPreferencesRepo) GetAssistantResponses(ctx context.Context, userID string) ([]models.ArchivedAssistantResponse, error) {
	var doc archiveDoc
	err := r.archive.FindOne(ctx, bson.M{"user_id": userID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return doc.Responses, nil
}
