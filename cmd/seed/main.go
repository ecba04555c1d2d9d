package main

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/webmuseum/expo-api/config"
	"github.com/webmuseum/expo-api/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "admin@museum.local"
	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO accounts (email, password_hash, first_name, last_name, birth_date, phone)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (lower(email)) DO UPDATE SET updated_at = now()
		RETURNING id
	`, email, hash, "Admin", "Admin", time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC), "+380 12 345 67 89").Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed account: %v", err)
	}
	fmt.Printf("seeded account: id=%s email=%s password=%s\n", id, email, password)

	expos := []struct {
		slug, title, description, author string
		date                             time.Time
	}{
		{"impressionists-2026", "Impressionists and the City", "French impressionist cityscapes on loan.", "M. Kovalenko", time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)},
		{"scythian-gold", "Scythian Gold", "Goldwork from the steppe burial mounds.", "", time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC)},
	}
	for _, e := range expos {
		if _, err := db.Exec(`
			INSERT INTO expos (expo_id, title, description, author, date, created_by)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (expo_id) DO NOTHING
		`, e.slug, e.title, e.description, e.author, e.date, id); err != nil {
			log.Fatalf("failed to seed expo %s: %v", e.slug, err)
		}
	}
	fmt.Printf("seeded %d expos\n", len(expos))
}
