package repository

import (
	"VendorChat/entity"
	"VendorChat/internal/config"
	"context"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
)

// testMongo connects to the server named by MONGO_HOST, the tests are skipped
// without one.
func testMongo(t *testing.T) *MongoDB {
	t.Helper()
	host := os.Getenv("MONGO_HOST")
	if host == "" {
		t.Skip("MONGO_HOST not set")
	}

	conf := &config.Config{}
	conf.Mongo.Enabled = true
	conf.Mongo.Host = host
	conf.Mongo.Port = "27017"
	if port := os.Getenv("MONGO_PORT"); port != "" {
		conf.Mongo.Port = port
	}
	conf.Mongo.Database = "vendorchat_test_" + uuid.NewString()[:8]

	db, err := NewMongoClient(conf, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatal(err)
	}
	if err = db.Ping(context.Background()); err != nil {
		t.Skipf("mongo not reachable: %v", err)
	}
	return db
}

func TestDisabled(t *testing.T) {
	db, err := NewMongoClient(&config.Config{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil || db != nil {
		t.Errorf("expected nil client when disabled, got %v %v", db, err)
	}
}

func TestProfileRoundTrip(t *testing.T) {
	db := testMongo(t)
	ctx := context.Background()

	stored, err := db.GetProfile(ctx)
	if err != nil || stored != nil {
		t.Fatalf("expected empty profile, got %+v (%v)", stored, err)
	}

	if err = db.UpsertProfile(ctx, entity.User{Name: "Ada", Phone: "+15551234567"}); err != nil {
		t.Fatal(err)
	}
	if err = db.UpsertProfile(ctx, entity.User{Name: "Bob", Phone: "+15550000000"}); err != nil {
		t.Fatal(err)
	}

	stored, err = db.GetProfile(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if stored == nil || stored.Name != "Bob" || stored.Phone != "+15550000000" {
		t.Errorf("unexpected profile %+v", stored)
	}
}

func TestTranscriptPaging(t *testing.T) {
	db := testMongo(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i, text := range []string{"one", "two", "three"} {
		entry := entity.NewTranscriptEntry("id_a", entity.RoleUser, text)
		entry.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		if err := db.SaveTranscript(ctx, entry); err != nil {
			t.Fatal(err)
		}
	}

	page, err := db.GetTranscript(ctx, "id_a", 2, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(page) != 2 || page[0].Text != "three" || page[1].Text != "two" {
		t.Errorf("unexpected first page %+v", page)
	}

	page, err = db.GetTranscript(ctx, "id_a", 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(page) != 1 || page[0].Text != "one" {
		t.Errorf("unexpected second page %+v", page)
	}
}

func TestBookings(t *testing.T) {
	db := testMongo(t)
	ctx := context.Background()

	vendor := entity.Vendor{Name: "Acme"}
	user := entity.User{Name: "Ada", Phone: "+15551234567"}
	late := entity.NewBooking("id_a", vendor, entity.BookingRequest{Service: "TV mounting", Date: "2026-10-21", Start: "14:00", End: "15:00"}, user)
	early := entity.NewBooking("id_a", vendor, entity.BookingRequest{Service: "TV mounting", Date: "2026-10-20", Start: "14:00", End: "15:00"}, user)

	for _, b := range []*entity.Booking{late, early} {
		if err := db.SaveBooking(ctx, b); err != nil {
			t.Fatal(err)
		}
	}

	bookings, err := db.GetBookings(ctx, "id_a")
	if err != nil {
		t.Fatal(err)
	}
	if len(bookings) != 2 || bookings[0].ID != early.ID {
		t.Errorf("unexpected bookings %+v", bookings)
	}
}
