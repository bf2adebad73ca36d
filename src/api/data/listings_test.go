package data

import (
	"context"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hellowinnielee/Art-detective/src/api/types"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&types.ListingRecord{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestListingStoreRoundTrip(t *testing.T) {
	store := NewListingStore(newTestDB(t))
	ctx := context.Background()

	rec := &types.ListingRecord{
		ListingID:  "7fJk2mQx",
		URL:        "https://www.ebay.com/itm/123",
		Source:     "ebay",
		Title:      "Untitled Work",
		Artist:     "Unknown artist",
		Price:      120.50,
		HasPrice:   true,
		Currency:   "GBP",
		Dimensions: "50 x 70 cm",
		ImagesJSON: `["https://img.example.com/a.jpg"]`,
		FetchedAt:  time.Now().UTC(),
	}
	if err := store.SaveListing(ctx, rec); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.GetListing(ctx, "7fJk2mQx")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.URL != rec.URL || got.Source != rec.Source || got.Price != rec.Price {
		t.Errorf("got %+v; want the saved record back", got)
	}
}

func TestListingStoreGetMissing(t *testing.T) {
	store := NewListingStore(newTestDB(t))

	if _, err := store.GetListing(context.Background(), "no-such-id"); err == nil {
		t.Error("expected an error for an unknown listing id")
	}
}
