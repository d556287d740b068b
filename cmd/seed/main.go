package main

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"teambuilder/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type seedUser struct {
	Username string
	Email    string
	Password string
	Role     string
}

var seedUsers = []seedUser{
	{Username: "admin_user", Email: "admin@teambuilder.local", Password: "Admin@123", Role: models.RoleAdmin},
	{Username: "john_doe", Email: "john@example.com", Password: "User@1234", Role: models.RoleUser},
	{Username: "jane_smith", Email: "jane@example.com", Password: "User@1234", Role: models.RoleUser},
	{Username: "bob_wilson", Email: "bob@example.com", Password: "User@1234", Role: models.RoleUser},
	{Username: "alice_johnson", Email: "alice@example.com", Password: "User@1234", Role: models.RoleUser},
}

func main() {
	dsn := os.Getenv("DB_DSN")
	if strings.TrimSpace(dsn) == "" {
		log.Fatal("DB_DSN not set in environment")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}

	for _, m := range []interface{}{
		&models.User{}, &models.Profile{}, &models.Cohort{},
		&models.Team{}, &models.TeamJoinRequest{}, &models.Feedback{},
	} {
		if err := db.AutoMigrate(m); err != nil {
			log.Printf("migration warning (%T): %v", m, err)
		}
	}

	users := make(map[string]*models.User)
	for _, s := range seedUsers {
		var existing models.User
		if err := db.Where("email = ?", s.Email).First(&existing).Error; err == nil {
			users[s.Username] = &existing
			continue
		}
		hpw, err := bcrypt.GenerateFromPassword([]byte(s.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("bcrypt failed: %v", err)
		}
		user := models.User{
			Username:        s.Username,
			Email:           s.Email,
			Password:        string(hpw),
			Role:            s.Role,
			LoginType:       models.LoginTypeEmailPassword,
			IsEmailVerified: true,
		}
		if err := db.Create(&user).Error; err != nil {
			log.Fatalf("failed to create user %s: %v", s.Username, err)
		}
		users[s.Username] = &user
		fmt.Printf("created user %s id=%d\n", s.Username, user.ID)
	}

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	cohort := models.Cohort{
		Name:        "Web Development Bootcamp 2026",
		Description: "Full-stack web development cohort",
		StartDate:   &start,
		EndDate:     &end,
		IsActive:    true,
	}
	if err := db.Where("name = ?", cohort.Name).FirstOrCreate(&cohort).Error; err != nil {
		log.Fatalf("failed to create cohort: %v", err)
	}
	var members []models.User
	for _, name := range []string{"john_doe", "jane_smith", "bob_wilson", "alice_johnson"} {
		if u, ok := users[name]; ok {
			members = append(members, *u)
		}
	}
	if err := db.Model(&cohort).Association("Members").Replace(members); err != nil {
		log.Printf("warning: failed to attach cohort members: %v", err)
	}

	team := models.Team{Name: "Team Rocket", Description: "First demo team"}
	if err := db.Where("name = ?", team.Name).FirstOrCreate(&team).Error; err != nil {
		log.Fatalf("failed to create team: %v", err)
	}
	if john, ok := users["john_doe"]; ok {
		_ = db.Model(&team).Association("Admins").Append(john)
		_ = db.Model(&team).Association("Members").Append(john)
	}
	if jane, ok := users["jane_smith"]; ok {
		_ = db.Model(&team).Association("Members").Append(jane)
	}

	fmt.Println("seeding completed")
}
