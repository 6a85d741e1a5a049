// Command sessiontoken mints a login session directly in the store and
// prints the bearer token. Development utility: in production sessions are
// issued by the auth provider.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/ketchupdev/ketchup/internal/application/auth"
	"github.com/ketchupdev/ketchup/internal/config"
	"github.com/ketchupdev/ketchup/internal/infrastructure/keygen"
	"github.com/ketchupdev/ketchup/internal/infrastructure/persistence/postgres"
	"github.com/ketchupdev/ketchup/internal/infrastructure/persistence/sqlite"
)

func main() {
	userID := flag.String("user", "", "user id to bind the session to (default: a fresh id)")
	days := flag.Int("days", 0, "days until expiration (0 = never expires)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	repo, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer closeStore()

	user := *userID
	if user == "" {
		id, err := uuid.NewV7()
		if err != nil {
			log.Fatalf("Failed to generate user id: %v", err)
		}
		user = id.String()
	}

	token, err := keygen.NewToken()
	if err != nil {
		log.Fatalf("Failed to generate token: %v", err)
	}

	var expiresAt *time.Time
	if *days > 0 {
		expiry := time.Now().UTC().AddDate(0, 0, *days)
		expiresAt = &expiry
	}

	sessionID, err := uuid.NewV7()
	if err != nil {
		log.Fatalf("Failed to generate session id: %v", err)
	}

	sess := &auth.Session{
		ID:         sessionID.String(),
		UserID:     user,
		ShortToken: token.ShortToken,
		SecretHash: keygen.HashSecret(token.Secret),
		CreatedAt:  time.Now().UTC(),
		ExpiresAt:  expiresAt,
	}
	if err := repo.CreateSession(ctx, sess); err != nil {
		log.Fatalf("Failed to create session: %v", err)
	}

	fmt.Printf("user id: %s\n", user)
	fmt.Printf("token:   %s\n", token.FullToken)
	if expiresAt != nil {
		fmt.Printf("expires: %s\n", expiresAt.Format(time.RFC3339))
	} else {
		fmt.Println("expires: never")
	}
}

func openStore(ctx context.Context, cfg *config.Config) (auth.Repository, func(), error) {
	switch cfg.Storage.Type {
	case config.StoragePostgres:
		store, err := postgres.NewStoreWithConfig(ctx, postgres.DBConfig{
			DSN:             cfg.Storage.DSN,
			MaxOpenConns:    cfg.Storage.MaxOpenConns,
			MaxIdleConns:    cfg.Storage.MaxIdleConns,
			ConnMaxLifetime: cfg.Storage.ConnMaxLifetime,
			ConnMaxIdleTime: cfg.Storage.ConnMaxIdleTime,
			AutoMigrate:     cfg.Storage.AutoMigrate,
		})
		if err != nil {
			return nil, nil, err
		}
		return store.Auth(), func() { store.Close() }, nil
	case config.StorageSQLite:
		store, err := sqlite.Open(ctx, cfg.Storage.DSN)
		if err != nil {
			return nil, nil, err
		}
		return store.Auth(), func() { store.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage type: %s", cfg.Storage.Type)
	}
}
