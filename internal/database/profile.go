package repository

import (
	"VendorChat/entity"
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const profileID = "default"

func (m *MongoDB) UpsertProfile(ctx context.Context, user entity.User) error {
	connection, err := m.connect(ctx)
	if err != nil {
		return err
	}
	defer m.disconnect(ctx, connection)

	user.UpdatedAt = time.Now()

	collection := connection.Database(m.database).Collection(profileCollection)
	filter := bson.D{{Key: "profile_id", Value: profileID}}
	update := bson.M{"$set": bson.M{
		"profile_id": profileID,
		"name":       user.Name,
		"phone":      user.Phone,
		"updated_at": user.UpdatedAt,
	}}

	_, err = collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongodb upsert error: %w", err)
	}
	return nil
}

// GetProfile returns nil when no profile was stored yet.
func (m *MongoDB) GetProfile(ctx context.Context) (*entity.User, error) {
	connection, err := m.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer m.disconnect(ctx, connection)

	collection := connection.Database(m.database).Collection(profileCollection)
	filter := bson.D{{Key: "profile_id", Value: profileID}}

	var user entity.User
	err = collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		return nil, m.findError(err)
	}

	return &user, nil
}
