package main

import (
	"fmt"
	"log"
	"time"

	"teambuilder/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func openDB(cfg *Config) (*gorm.DB, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("DB_DSN is not set; a Postgres DSN is required")
	}
	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)
	return db, nil
}

// autoMigrate runs migrations model by model so a failure on one table
// doesn't block the others.
func autoMigrate(db *gorm.DB) {
	for _, m := range []interface{}{
		&models.User{},
		&models.Profile{},
		&models.Cohort{},
		&models.Team{},
		&models.TeamJoinRequest{},
		&models.Feedback{},
	} {
		if err := db.AutoMigrate(m); err != nil {
			log.Printf("migration warning (%T): %v", m, err)
		}
	}
}

// seedDB makes sure an admin account exists so a fresh deployment can be
// administered immediately.
func seedDB(db *gorm.DB) {
	var count int64
	db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count)
	if count > 0 {
		return
	}
	hashed, err := hashPassword("Admin@123")
	if err != nil {
		log.Printf("failed to hash seed admin password: %v", err)
		return
	}
	admin := models.User{
		Email:           "admin@teambuilder.local",
		Username:        "admin",
		Password:        hashed,
		Role:            models.RoleAdmin,
		LoginType:       models.LoginTypeEmailPassword,
		IsEmailVerified: true,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Printf("failed to seed admin user: %v", err)
		return
	}
	log.Println("Seeded admin user: email=admin@teambuilder.local, password=Admin@123")
}
