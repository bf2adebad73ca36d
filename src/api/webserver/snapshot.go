package webserver

import (
	"context"
	"errors"
	"log"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/hellowinnielee/Art-detective/src/api/data"
	"github.com/hellowinnielee/Art-detective/src/api/fetcher"
	"github.com/hellowinnielee/Art-detective/src/api/listing"
)

type Snapshots struct {
	svc         *listing.Service
	rdb         *redis.Client
	placeholder bool
}

func NewSnapshots(svc *listing.Service, rdb *redis.Client, placeholder bool) Snapshots {
	return Snapshots{svc: svc, rdb: rdb, placeholder: placeholder}
}

func (s Snapshots) Build(c *gin.Context) {
	var req struct {
		URL string `json:"url" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}
	if !validListingURL(req.URL) {
		c.JSON(http.StatusBadRequest, gin.H{"err": "url must be http or https"})
		return
	}

	snap, ok := s.buildForURL(c, req.URL)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, snap)
}

// buildForURL runs the snapshot pipeline with the caching rules around it.
// On failure it writes the error response itself and returns ok=false.
func (s Snapshots) buildForURL(c *gin.Context, rawURL string) (*listing.Snapshot, bool) {
	// Placeholder mode serves whatever is cached without touching the
	// marketplace; meant for local UI development.
	if s.placeholder {
		var cached listing.Snapshot
		if data.GetCachedSnapshot(c, s.rdb, rawURL, &cached) {
			return &cached, true
		}
	}

	snap, err := s.svc.BuildSnapshotFromURL(c, rawURL)
	if err != nil {
		// A stale snapshot beats an error page when we have one.
		var cached listing.Snapshot
		if data.GetCachedSnapshot(c, s.rdb, rawURL, &cached) {
			cached.Stale = true
			return &cached, true
		}
		c.JSON(fetchErrorStatus(err), gin.H{"err": err.Error(), "hint": fetchErrorHint(err)})
		return nil, false
	}

	if err := data.SetCachedSnapshot(context.Background(), s.rdb, rawURL, snap); err != nil {
		log.Printf("snapshot: cache %s: %v", snap.ListingID, err)
	}
	return snap, true
}

func validListingURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// fetchErrorStatus maps fetcher error kinds onto user-facing HTTP statuses.
func fetchErrorStatus(err error) int {
	var se *fetcher.StatusError
	switch {
	case errors.Is(err, fetcher.ErrBotBlocked):
		return http.StatusServiceUnavailable
	case errors.Is(err, fetcher.ErrTimeout):
		return http.StatusGatewayTimeout
	case errors.As(err, &se):
		if se.Code == http.StatusNotFound || se.Code == http.StatusGone {
			return http.StatusNotFound
		}
		return http.StatusBadGateway
	default:
		return http.StatusBadGateway
	}
}

func fetchErrorHint(err error) string {
	switch {
	case errors.Is(err, fetcher.ErrBotBlocked):
		return "the marketplace blocked our check; open the listing in a browser and retry later"
	case errors.Is(err, fetcher.ErrTimeout):
		return "the listing page took too long to respond; try again in a minute"
	default:
		return "the listing could not be retrieved; check the URL is still live"
	}
}
