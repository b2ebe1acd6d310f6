package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultTimeout = 10 * time.Second

// Config captures the minimal settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Store holds the connected client and the selected database.
type Store struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// Connect establishes a MongoDB client, verifies connectivity with a ping, and
// selects the configured database. A default timeout is applied when none is
// provided.
func Connect(ctx context.Context, cfg Config) (*Store, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return &Store{Client: client, DB: client.Database(cfg.Database)}, nil
}

// Ping runs a ping command against the selected database. Used by the
// readiness probe.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.Client.Ping(ctx, nil); err != nil {
		return err
	}
	return s.DB.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
}

// EnsureIndexes creates the indexes every collection relies on.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	if err := NewUserRepository(s.DB).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("users indexes: %w", err)
	}
	return nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.Client.Disconnect(ctx)
}
