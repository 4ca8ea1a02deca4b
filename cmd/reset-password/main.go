package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go-parts-inventory/internal/config"
	"go-parts-inventory/internal/model"
	"go-parts-inventory/internal/repository"
	"go-parts-inventory/pkg/database"

	"github.com/google/uuid"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	email := flag.String("email", cfg.AdminEmail, "account to reset")
	password := flag.String("password", cfg.AdminPassword, "new password")
	flag.Parse()

	if len(*password) < 6 {
		log.Fatal("password must be at least 6 characters")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	users := repository.NewUserRepo(db)
	user, err := users.FindByEmail(ctx, *email)
	if err != nil {
		log.Fatalf("user %s not found: %v", *email, err)
	}

	var updated model.User
	if err := updated.SetPassword(*password); err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}
	if err := users.UpdatePassword(ctx, user.ID, updated.Password); err != nil {
		log.Fatalf("failed to update password: %v", err)
	}
	// Existing sessions stop validating.
	if err := users.UpdateTokenVersion(ctx, user.ID, uuid.New().String()); err != nil {
		log.Fatalf("failed to revoke sessions: %v", err)
	}

	log.Printf("password for %s has been reset", *email)
}
