package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"content-gate/internal/config"
	"content-gate/internal/domain/user"
	"content-gate/internal/repository/postgres"
	apperrors "content-gate/pkg/errors"
	"content-gate/pkg/password"
)

const (
	schemaPath = "db/schema.sql"

	envSeedEditorEmail    = "SEED_EDITOR_EMAIL"
	envSeedEditorName     = "SEED_EDITOR_NAME"
	envSeedEditorPassword = "SEED_EDITOR_PASSWORD"
)

type editorCreator interface {
	Create(ctx context.Context, input user.CreateUserInput) (*user.User, error)
}

// seedEditor provisions the initial editor account. Re-running the script is
// safe: an existing account with the same email is left untouched.
func seedEditor(ctx context.Context, users editorCreator, email, name, plaintext string) (*user.User, error) {
	hash, err := password.Hash(plaintext)
	if err != nil {
		return nil, err
	}

	u, err := users.Create(ctx, user.CreateUserInput{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, nil
		}
		return nil, err
	}

	return u, nil
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Error loading .env file: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	fmt.Println("=== Setting Up Database ===")
	fmt.Println()

	db, err := postgres.New(&cfg.Database)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer db.Close()

	fmt.Println("✅ Connected to database")
	fmt.Println()

	schema, err := os.ReadFile(schemaPath)
	if err != nil {
		log.Fatalf("❌ Failed to read schema file: %v", err)
	}

	ctx := context.Background()

	fmt.Println("Executing schema...")
	if _, err := db.Pool.Exec(ctx, string(schema)); err != nil {
		log.Fatalf("❌ Failed to execute schema: %v", err)
	}

	fmt.Println("✅ Schema executed successfully")
	fmt.Println()

	fmt.Println("=== Verifying Tables ===")
	tables := []string{"contents", "users", "api_keys"}

	for _, table := range tables {
		var exists bool
		query := `SELECT EXISTS (
			SELECT FROM information_schema.tables
			WHERE table_schema = 'public'
			AND table_name = $1
		)`
		if err := db.Pool.QueryRow(ctx, query, table).Scan(&exists); err != nil {
			fmt.Printf("❌ Error checking table '%s': %v\n", table, err)
			continue
		}

		if exists {
			fmt.Printf("✅ Table '%s' created\n", table)
		} else {
			fmt.Printf("❌ Table '%s' NOT created\n", table)
		}
	}

	fmt.Println()
	fmt.Println("=== Seeding Editor Account ===")

	email := os.Getenv(envSeedEditorEmail)
	plaintext := os.Getenv(envSeedEditorPassword)
	switch {
	case email == "" || plaintext == "":
		fmt.Printf("⚠️  %s / %s not set, skipping editor seed\n", envSeedEditorEmail, envSeedEditorPassword)
	default:
		u, err := seedEditor(ctx, postgres.NewUserRepository(db), email, os.Getenv(envSeedEditorName), plaintext)
		if err != nil {
			log.Fatalf("❌ Failed to seed editor account: %v", err)
		}
		if u == nil {
			fmt.Printf("✅ Editor '%s' already exists, left untouched\n", email)
		} else {
			fmt.Printf("✅ Editor '%s' created\n", u.Email)
		}
	}

	fmt.Println()
	fmt.Println("=== Database Setup Complete ===")
	fmt.Println()
	fmt.Println("Next: Run 'go run main.go' to start the server")
}
