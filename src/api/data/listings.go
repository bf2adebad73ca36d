package data

import (
	"context"

	"gorm.io/gorm"

	"github.com/hellowinnielee/Art-detective/src/api/types"
)

// ListingStore is the gorm-backed store the scoring service writes through.
type ListingStore struct {
	db *gorm.DB
}

func NewListingStore(db *gorm.DB) *ListingStore {
	return &ListingStore{db: db}
}

func (s *ListingStore) SaveListing(ctx context.Context, rec *types.ListingRecord) error {
	return s.db.WithContext(ctx).Create(rec).Error
}

func (s *ListingStore) GetListing(ctx context.Context, listingID string) (*types.ListingRecord, error) {
	var rec types.ListingRecord
	if err := s.db.WithContext(ctx).First(&rec, "listing_id = ?", listingID).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}
