package main

import (
	"gorm.io/gorm"
)

// App bundles the collaborators every handler needs: the identity store,
// configuration and the mail dispatcher. Constructed once at startup and
// passed explicitly instead of living in package globals.
type App struct {
	db   *gorm.DB
	cfg  *Config
	mail *Mailer
}

func newApp(db *gorm.DB, cfg *Config, mail *Mailer) *App {
	return &App{db: db, cfg: cfg, mail: mail}
}
