package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"visiontrain/config"
	"visiontrain/internal/domain/user"
	"visiontrain/pkg/database"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const usage = `
visiontrain - Database CLI Tool

Usage:
  migrate [command]

Commands:
  up          Run GORM migrations
  status      Show database connection status
  seed-dev    Seed the database with development users

Examples:
  go run cmd/migrate/main.go up
  go run cmd/migrate/main.go seed-dev
`

func main() {
	flag.Usage = func() {
		fmt.Print(usage)
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	cfg := config.LoadConfig()
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	switch flag.Arg(0) {
	case "up":
		if err := db.AutoMigrate(&user.User{}); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		log.Println("Migrations applied")
	case "status":
		if err := database.HealthCheck(db); err != nil {
			log.Fatalf("Database unreachable: %v", err)
		}
		log.Println("Database connection OK")
	case "seed-dev":
		if err := seedDev(db); err != nil {
			log.Fatalf("Seeding failed: %v", err)
		}
		log.Println("Development users seeded")
	default:
		flag.Usage()
		os.Exit(1)
	}
}

// seedDev inserts a few known users for local frontend work. Existing
// usernames are left untouched.
func seedDev(db *gorm.DB) error {
	seeds := map[string]string{
		"alice123": "secret1",
		"bob99bob": "hunter22",
	}

	for username, password := range seeds {
		var existing user.User
		err := db.Where("username = ?", username).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		if err := db.Create(&user.User{
			Username:     username,
			PasswordHash: string(hash),
		}).Error; err != nil {
			return err
		}
	}
	return nil
}
