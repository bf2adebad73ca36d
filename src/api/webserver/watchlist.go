package webserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hellowinnielee/Art-detective/src/api/data"
	"github.com/hellowinnielee/Art-detective/src/api/types"
)

type Watchlist struct {
	db       *gorm.DB
	listings *data.ListingStore
	snaps    Snapshots
}

func NewWatchlist(db *gorm.DB, listings *data.ListingStore, snaps Snapshots) Watchlist {
	return Watchlist{db: db, listings: listings, snaps: snaps}
}

func (w Watchlist) Add(c *gin.Context) {
	var req struct {
		ListingID string `json:"listingId" binding:"required"`
		Note      string `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	if _, err := w.listings.GetListing(c, req.ListingID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"err": "unknown listing"})
		return
	}

	item := types.WatchlistItem{
		UserID:    currentUserID(c),
		ListingID: req.ListingID,
		Note:      req.Note,
	}
	if err := w.db.Create(&item).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"err": "listing already on watchlist"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": item.ID})
}

func (w Watchlist) List(c *gin.Context) {
	var items []types.WatchlistItem
	err := w.db.Preload("Listing").
		Where("user_id = ?", currentUserID(c)).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (w Watchlist) Remove(c *gin.Context) {
	res := w.db.Where("user_id = ? AND listing_id = ?", currentUserID(c), c.Param("listingId")).
		Delete(&types.WatchlistItem{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"err": "not on watchlist"})
		return
	}
	c.Status(http.StatusNoContent)
}

// Recheck re-runs the snapshot pipeline against the stored source URL of a
// watched listing, so saved finds can be revisited for fresh evidence.
func (w Watchlist) Recheck(c *gin.Context) {
	listingID := c.Param("listingId")

	var item types.WatchlistItem
	err := w.db.Preload("Listing").
		First(&item, "user_id = ? AND listing_id = ?", currentUserID(c), listingID).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"err": "not on watchlist"})
		return
	}

	snap, ok := w.snaps.buildForURL(c, item.Listing.URL)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, snap)
}
