// Command seed provisions the demo accounts the portal expects: one admin and
// one regular user, plus a sample feedback entry. Accounts are created by this
// out-of-band step only; the application has no registration flow.
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log"

	"golang.org/x/crypto/bcrypt"

	"github.com/pkdsmart/feedback-portal/internal/models"
	"github.com/pkdsmart/feedback-portal/internal/repository"
	"github.com/pkdsmart/feedback-portal/pkg/config"
	"github.com/pkdsmart/feedback-portal/pkg/database"
)

func main() {
	adminPassword := flag.String("admin-password", "admin123", "password for the admin account")
	userPassword := flag.String("user-password", "user123", "password for the user account")
	withSample := flag.Bool("sample-feedback", true, "insert a sample feedback entry for the user account")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := database.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("failed to ensure schema: %v", err)
	}

	users := repository.NewUserRepository(db)

	if _, err := ensureUser(ctx, users, "admin", *adminPassword, models.RoleAdmin); err != nil {
		log.Fatalf("failed to provision admin: %v", err)
	}
	user, err := ensureUser(ctx, users, "user", *userPassword, models.RoleUser)
	if err != nil {
		log.Fatalf("failed to provision user: %v", err)
	}

	if *withSample {
		feedback := repository.NewFeedbackRepository(db)
		entries, err := feedback.ListByUser(ctx, user.ID)
		if err != nil {
			log.Fatalf("failed to inspect feedback: %v", err)
		}
		if len(entries) == 0 {
			rating := 4
			entry := &models.Feedback{
				UserID: user.ID,
				Text:   "This is a sample feedback message from the user.",
				Rating: &rating,
				Status: models.StatusIncomplete,
			}
			if err := feedback.Create(ctx, entry); err != nil {
				log.Fatalf("failed to insert sample feedback: %v", err)
			}
			log.Printf("inserted sample feedback %d", entry.ID)
		}
	}

	log.Println("seed complete")
}

func ensureUser(ctx context.Context, users *repository.UserRepository, username, password string, role models.Role) (*models.User, error) {
	existing, err := users.FindByUsername(ctx, username)
	if err == nil {
		log.Printf("user %q already exists", username)
		return existing, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{Username: username, PasswordHash: string(hash), Role: role}
	if err := users.Create(ctx, user); err != nil {
		return nil, err
	}
	log.Printf("created user %q with role %s", username, role)
	return user, nil
}
