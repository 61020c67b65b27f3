package main

import (
	"context"
	"crypto/rand"
	"database/sql"
	"fmt"
	"log/slog"
	"math/big"
	"os"

	"github.com/amaralimoveis/vitrine/internal/auth"
	"github.com/amaralimoveis/vitrine/internal/cache"
	"github.com/amaralimoveis/vitrine/internal/catalog"
	"github.com/amaralimoveis/vitrine/internal/config"
	"github.com/amaralimoveis/vitrine/internal/db"
	"github.com/amaralimoveis/vitrine/internal/model"
	"github.com/amaralimoveis/vitrine/internal/postal"
	"github.com/amaralimoveis/vitrine/internal/store"
	"github.com/amaralimoveis/vitrine/internal/store/mongostore"
)

// backends holds the catalog storage and postal lookup chosen by the
// configuration, plus whatever must be closed on shutdown.
type backends struct {
	listings catalog.Store
	photos   catalog.PhotoStore
	lookup   catalog.Lookup
	closers  []func()
}

func (b *backends) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
}

// openBackends keeps listings and photos in SQLite unless a MongoDB URI is
// configured, and puts a Redis cache in front of ViaCEP when a Redis URL is.
func openBackends(ctx context.Context, cfg *config.Config, database *sql.DB) (*backends, error) {
	b := &backends{}

	if cfg.MongoURI == "" {
		b.listings = store.NewListings(database)
		b.photos = store.NewPhotos(database)
		slog.Info("listing storage ready", "backend", "sqlite")
	} else {
		client, err := mongostore.Connect(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, func() { client.Disconnect(context.Background()) })

		mdb := client.Database(cfg.MongoDB)
		listings := mongostore.NewListings(mdb)
		if err := listings.EnsureIndexes(ctx); err != nil {
			b.Close()
			return nil, err
		}
		b.listings = listings
		b.photos = mongostore.NewPhotos(mdb)
		slog.Info("listing storage ready", "backend", "mongodb", "database", cfg.MongoDB)
	}

	viaCEP := postal.NewClient(cfg.CEPBaseURL)
	if cfg.RedisURL == "" {
		b.lookup = viaCEP
		return b, nil
	}

	c, err := cache.New(cfg.RedisURL, cfg.CEPCacheTTL)
	if err != nil {
		b.Close()
		return nil, err
	}
	b.closers = append(b.closers, func() { c.Close() })
	b.lookup = &postal.Cached{Next: viaCEP, Cache: c}
	slog.Info("postal code cache ready", "ttl", cfg.CEPCacheTTL)
	return b, nil
}

// initDatabase creates a new database, runs migrations, and creates the admin user.
func initDatabase(path, adminUsername string) (*sql.DB, string, error) {
	database, err := db.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("opening database: %w", err)
	}

	fail := func(err error) (*sql.DB, string, error) {
		database.Close()
		os.Remove(path)
		return nil, "", err
	}

	if err := db.Migrate(database); err != nil {
		return fail(fmt.Errorf("running migrations: %w", err))
	}

	password, err := generatePassword(16)
	if err != nil {
		return fail(fmt.Errorf("generating password: %w", err))
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fail(fmt.Errorf("hashing password: %w", err))
	}

	if _, err := store.CreateUser(context.Background(), database, adminUsername, hash, model.RoleAdmin); err != nil {
		return fail(fmt.Errorf("creating admin user: %w", err))
	}

	return database, password, nil
}

// printInitResult prints the database initialization result to stdout.
func printInitResult(dbPath, username, password string) {
	fmt.Printf("Banco de dados criado: %s\n", dbPath)
	fmt.Println()
	fmt.Println("Conta de administrador:")
	fmt.Printf("  Usuário: %s\n", username)
	fmt.Printf("  Senha:   %s\n", password)
	fmt.Println()
	fmt.Println("Guarde esta senha, ela não pode ser recuperada.")
	fmt.Println("O administrador pode trocá-la depois de entrar.")
}

// generatePassword creates a random password of the given length.
func generatePassword(length int) (string, error) {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%&*"
	result := make([]byte, length)
	for i := range result {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		result[i] = charset[n.Int64()]
	}
	return string(result), nil
}
