package listing

import (
	"context"
	"encoding/json"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mr-tron/base58"

	"github.com/hellowinnielee/Art-detective/src/api/types"
)

// HTMLFetcher retrieves raw listing HTML. Satisfied by fetcher.Fetcher.
type HTMLFetcher interface {
	FetchListingHTML(ctx context.Context, rawURL string) (string, error)
}

// ListingStore persists listing records built from successful snapshots.
type ListingStore interface {
	SaveListing(ctx context.Context, rec *types.ListingRecord) error
}

// Service composes the fetcher with the pure scoring pipeline.
type Service struct {
	fetcher HTMLFetcher
	store   ListingStore
}

func NewService(fetcher HTMLFetcher, store ListingStore) *Service {
	return &Service{fetcher: fetcher, store: store}
}

// BuildSnapshotFromURL fetches the listing and scores it. Fetch errors
// propagate untouched so the HTTP layer can map them; once raw text is in
// hand the pipeline cannot fail. The listing record write is best effort:
// a store outage must not cost the caller a snapshot that is already built.
func (s *Service) BuildSnapshotFromURL(ctx context.Context, rawURL string) (*Snapshot, error) {
	raw, err := s.fetcher.FetchListingHTML(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	snap := Analyze(raw, rawURL)
	snap.ListingID = NewListingID()
	snap.FetchedAt = time.Now().UTC()

	if err := s.store.SaveListing(ctx, recordFrom(snap)); err != nil {
		log.Printf("listing: save %s: %v", snap.ListingID, err)
	}
	return snap, nil
}

// NewListingID returns an opaque, collision-resistant listing id.
func NewListingID() string {
	u := uuid.New()
	return base58.Encode(u[:])
}

func recordFrom(snap *Snapshot) *types.ListingRecord {
	images, _ := json.Marshal(snap.Artwork.ImageURLs)
	rec := &types.ListingRecord{
		ListingID:  snap.ListingID,
		URL:        snap.URL,
		Source:     snap.Source,
		Title:      snap.Artwork.Title,
		Artist:     snap.Artwork.Artist,
		Currency:   snap.Artwork.Currency,
		Dimensions: snap.Artwork.Dimensions,
		ImagesJSON: string(images),
		FetchedAt:  snap.FetchedAt,
	}
	if snap.Artwork.Price != nil {
		rec.Price = *snap.Artwork.Price
		rec.HasPrice = true
	}
	return rec
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}
