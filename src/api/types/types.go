package types

import "time"

// Registered accounts
type User struct {
	ID           uint64 `gorm:"primaryKey"`
	Email        string `gorm:"size:256;unique;not null"`
	PasswordHash string `gorm:"size:128;not null"`
	DisplayName  string `gorm:"size:128"`
	CreatedAt    time.Time
}

// One row per successful snapshot build
type ListingRecord struct {
	ListingID  string  `gorm:"primaryKey;size:32"`
	URL        string  `gorm:"size:1024;not null"`
	Source     string  `gorm:"size:16;not null"` // ebay|stockx|artsy|listing
	Title      string  `gorm:"size:512"`
	Artist     string  `gorm:"size:256"`
	Price      float64 `gorm:"default:0"`
	HasPrice   bool    `gorm:"default:false"`
	Currency   string  `gorm:"size:8"`
	Dimensions string  `gorm:"size:128"`
	ImagesJSON string  `gorm:"type:text"` // JSON array of image URLs
	FetchedAt  time.Time
}

// Saved listings per user
type WatchlistItem struct {
	ID        uint64 `gorm:"primaryKey"`
	UserID    uint64 `gorm:"index:idx_watch_user_listing,unique;not null"`
	ListingID string `gorm:"index:idx_watch_user_listing,unique;size:32;not null"`
	Note      string `gorm:"size:512"`
	CreatedAt time.Time
	User      User          `gorm:"foreignKey:UserID"`
	Listing   ListingRecord `gorm:"foreignKey:ListingID"`
}

// Followed artist names
type Follow struct {
	ID        uint64 `gorm:"primaryKey"`
	UserID    uint64 `gorm:"index:idx_follow_user_artist,unique;not null"`
	Artist    string `gorm:"index:idx_follow_user_artist,unique;size:256;not null"`
	CreatedAt time.Time
	User      User `gorm:"foreignKey:UserID"`
}
