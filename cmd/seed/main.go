// Command seed creates the sample users used for local development:
// an admin, a manager and a regular user with fixed credentials.
// Existing users are left untouched, so the command is safe to re-run.
package main

import (
	"errors"
	"log"

	"github.com/mkarlin/project-tracker-api/internal/config"
	"github.com/mkarlin/project-tracker-api/internal/database"
	"github.com/mkarlin/project-tracker-api/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type sampleUser struct {
	username  string
	password  string
	email     string
	firstName string
	lastName  string
	role      models.Role
}

var sampleUsers = []sampleUser{
	{"admin", "admin123", "admin@example.com", "Admin", "User", models.RoleAdmin},
	{"manager1", "manager123", "manager1@example.com", "John", "Manager", models.RoleManager},
	{"user1", "user123", "user1@example.com", "Jane", "Developer", models.RoleUser},
}

func main() {
	cfg := config.Load()

	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	db := database.GetDB()

	for _, s := range sampleUsers {
		var existing models.User
		err := db.Where("username = ?", s.username).First(&existing).Error
		if err == nil {
			log.Printf("User %s already exists, skipping", s.username)
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatalf("Failed to check user %s: %v", s.username, err)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(s.password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Failed to hash password for %s: %v", s.username, err)
		}

		user := models.User{
			Username:     s.username,
			PasswordHash: string(hash),
			Email:        s.email,
			FirstName:    s.firstName,
			LastName:     s.lastName,
			Role:         s.role,
		}
		if err := db.Create(&user).Error; err != nil {
			log.Fatalf("Failed to create user %s: %v", s.username, err)
		}
		log.Printf("Created %s user: %s", s.role, s.username)
	}

	log.Println("Sample users ready")
	log.Println("Admin: username=admin, password=admin123")
	log.Println("Manager: username=manager1, password=manager123")
	log.Println("User: username=user1, password=user123")
}
