package main

import (
	"context"
	"errors"
	"flag"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"bizdash/internal/config"
	"bizdash/internal/db"
	"bizdash/internal/model"
	"bizdash/internal/repository"
)

// Seeds the initial admin user so a fresh deployment has a working login.
// Safe to run repeatedly; an existing user with the same email is left alone.
func main() {
	username := flag.String("username", "admin", "username for the seeded user")
	email := flag.String("email", "admin@example.com", "email for the seeded user")
	password := flag.String("password", "", "plaintext password to hash (required)")
	fullName := flag.String("full-name", "Administrator", "display name for the seeded user")
	flag.Parse()

	if *password == "" {
		log.Fatal("-password is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	gormDB, err := db.NewMySQL(cfg.MySQLDSN, db.PoolConfig{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	})
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	ctx := context.Background()
	users := repository.NewUserRepository(gormDB)

	if existing, err := users.FindByEmail(ctx, *email); err == nil && existing != nil {
		log.Printf("user %s already exists (id=%d), nothing to do", *email, existing.ID)
		return
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatalf("lookup user: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), 10)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	user := &model.User{
		Username:     *username,
		Email:        *email,
		PasswordHash: string(hash),
		FullName:     *fullName,
	}
	if err := users.Create(ctx, user); err != nil {
		log.Fatalf("create user: %v", err)
	}

	log.Printf("seeded user %s (id=%d)", user.Email, user.ID)
}
