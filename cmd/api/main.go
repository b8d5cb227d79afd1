package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/shinyyama/catalog-backend/internal/config"
	"github.com/shinyyama/catalog-backend/internal/db"
	"github.com/shinyyama/catalog-backend/internal/server"
)

// Set with -ldflags at build time.
var (
	gitSHA    = "dev"
	buildTime = ""
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	srv := server.New(nil, server.Options{
		GitSHA:           gitSHA,
		BuildTime:        buildTime,
		CORSHostSuffixes: cfg.CORSHostSuffixes,
	})
	addr := ":" + cfg.Port

	errCh := make(chan error, 1)

	go func() {
		log.Printf("starting server on %s", addr)
		errCh <- srv.Start(addr)
	}()

	// The listener comes up first so health checks pass while the database warms up.
	go func() {
		conn, err := db.Connect(cfg)
		if err != nil {
			log.Printf("db connect error: %v", err)
			return
		}
		if err := db.Migrate(conn); err != nil {
			log.Printf("auto migrate error: %v", err)
			return
		}
		srv.SetDB(conn)
		log.Printf("database ready")
	}()

	if err := <-errCh; err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
