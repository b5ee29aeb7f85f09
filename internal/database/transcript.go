package repository

import (
	"VendorChat/entity"
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (m *MongoDB) SaveTranscript(ctx context.Context, entry *entity.TranscriptEntry) error {
	connection, err := m.connect(ctx)
	if err != nil {
		return err
	}
	defer m.disconnect(ctx, connection)

	collection := connection.Database(m.database).Collection(transcriptCollection)
	_, err = collection.InsertOne(ctx, entry)
	if err != nil {
		return fmt.Errorf("mongodb insert transcript: %w", err)
	}
	return nil
}

// GetTranscript returns a page of the vendor's conversation, newest first.
func (m *MongoDB) GetTranscript(ctx context.Context, vendorID string, limit, offset int64) ([]entity.TranscriptEntry, error) {
	connection, err := m.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer m.disconnect(ctx, connection)

	collection := connection.Database(m.database).Collection(transcriptCollection)
	filter := bson.D{{Key: "vendor_id", Value: vendorID}}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(offset).
		SetLimit(limit)

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, m.findError(err)
	}
	defer cursor.Close(ctx)

	entries := make([]entity.TranscriptEntry, 0)
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("mongodb decode transcript: %w", err)
	}
	return entries, nil
}
