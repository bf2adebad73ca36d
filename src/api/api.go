package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gorm.io/gorm"

	"github.com/hellowinnielee/Art-detective/src/api/config"
	"github.com/hellowinnielee/Art-detective/src/api/data"
	"github.com/hellowinnielee/Art-detective/src/api/types"
	"github.com/hellowinnielee/Art-detective/src/api/webserver"
)

var allModels = []interface{}{
	&types.User{}, &types.ListingRecord{},
	&types.WatchlistItem{}, &types.Follow{},
}

func migrate(db *gorm.DB) {
	if err := db.AutoMigrate(allModels...); err != nil {
		log.Fatalf("migrate: %v", err)
	}
}

func main() {
	cfg := config.Load()

	db := data.MustMySQL(cfg.MySQLDSN)
	migrate(db)

	rdb := data.MustRedis(cfg.RedisURL)

	router := webserver.New(cfg, db, rdb)
	httpSrv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http: %v", err)
		}
	}()
	log.Printf("Art Detective API listening on %s", cfg.Port)
	if cfg.PlaceholderMode {
		log.Printf("placeholder mode on: cached snapshots served without refetching")
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	shutCtx, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()
	_ = httpSrv.Shutdown(shutCtx)
}
