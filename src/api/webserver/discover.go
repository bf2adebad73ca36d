package webserver

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/hellowinnielee/Art-detective/src/api/data"
	"github.com/hellowinnielee/Art-detective/src/api/discover"
)

const feedSize = 12

type Discover struct {
	client *discover.Client
	rdb    *redis.Client
}

func NewDiscover(client *discover.Client, rdb *redis.Client) Discover {
	return Discover{client: client, rdb: rdb}
}

// Feed serves the discovery feed, cache first. Upstream failures degrade to
// an empty feed; discovery is decoration, never an error page.
func (d Discover) Feed(c *gin.Context) {
	var cached []discover.Entry
	if data.GetCachedDiscoverFeed(c, d.rdb, &cached) {
		c.JSON(http.StatusOK, gin.H{"artworks": cached})
		return
	}

	entries, err := d.client.Artworks(c, feedSize)
	if err != nil {
		log.Printf("discover: %v", err)
		c.JSON(http.StatusOK, gin.H{"artworks": []discover.Entry{}})
		return
	}

	if err := data.SetCachedDiscoverFeed(context.Background(), d.rdb, entries); err != nil {
		log.Printf("discover: cache: %v", err)
	}
	c.JSON(http.StatusOK, gin.H{"artworks": entries})
}
