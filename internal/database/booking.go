package repository

import (
	"VendorChat/entity"
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (m *MongoDB) SaveBooking(ctx context.Context, booking *entity.Booking) error {
	connection, err := m.connect(ctx)
	if err != nil {
		return err
	}
	defer m.disconnect(ctx, connection)

	collection := connection.Database(m.database).Collection(bookingCollection)
	_, err = collection.InsertOne(ctx, booking)
	if err != nil {
		return fmt.Errorf("mongodb insert booking: %w", err)
	}
	return nil
}

func (m *MongoDB) GetBookings(ctx context.Context, vendorID string) ([]entity.Booking, error) {
	connection, err := m.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer m.disconnect(ctx, connection)

	collection := connection.Database(m.database).Collection(bookingCollection)
	filter := bson.D{{Key: "vendor_id", Value: vendorID}}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "start", Value: 1}})

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, m.findError(err)
	}
	defer cursor.Close(ctx)

	bookings := make([]entity.Booking, 0)
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("mongodb decode bookings: %w", err)
	}
	return bookings, nil
}
