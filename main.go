package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatal("failed to load config:", err)
	}

	db, err := openDB(cfg)
	if err != nil {
		log.Fatal("failed to open database:", err)
	}

	// Lightweight migrate command: `./teambuilder migrate` runs AutoMigrate
	// and seeding then exits. Useful for CI or manual DB setup.
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		autoMigrate(db)
		seedDB(db)
		fmt.Println("migration and seeding completed")
		return
	}

	if cfg.AutoMigrate {
		autoMigrate(db)
		seedDB(db)
	}

	app := newApp(db, cfg, newMailer(cfg))
	srv := &http.Server{Addr: cfg.Addr, Handler: app.setupRouter()}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error:", err)
		}
	}()
	log.Printf("server listening on %s", cfg.Addr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	// Stop accepting requests first, close the store last.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown warning: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Println("server stopped")
}
