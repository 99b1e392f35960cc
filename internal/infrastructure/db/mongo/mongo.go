package mongo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/singleflight"
)

const defaultTimeout = 10 * time.Second

// Config captures the minimal settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect establishes a MongoDB client, verifies connectivity with a ping, and
// returns both the client and the selected database. A default timeout is
// applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, client.Database(cfg.Database), nil
}

// DialFunc opens a database handle.
type DialFunc func(ctx context.Context) (*mongo.Client, *mongo.Database, error)

// DatabaseProvider hands out the database handle repositories work on.
type DatabaseProvider interface {
	Database(ctx context.Context) (*mongo.Database, error)
}

// ConnectHook runs once right after a successful dial.
type ConnectHook func(ctx context.Context, db *mongo.Database)

// Connector opens the database on first use and hands the same handle to
// every later caller. Concurrent first callers share a single dial; a failed
// dial is not remembered, so the next caller tries again.
type Connector struct {
	dial  DialFunc
	sf    singleflight.Group
	hooks []ConnectHook

	mu     sync.RWMutex
	client *mongo.Client
	db     *mongo.Database
}

// NewConnector returns a Connector that dials cfg lazily.
func NewConnector(cfg Config) *Connector {
	return NewConnectorWithDial(func(ctx context.Context) (*mongo.Client, *mongo.Database, error) {
		return Connect(ctx, cfg)
	})
}

// NewConnectorWithDial returns a Connector backed by dial.
func NewConnectorWithDial(dial DialFunc) *Connector {
	return &Connector{dial: dial}
}

// OnConnect registers hook to run after the first successful dial. Must be
// called before the Connector is shared.
func (c *Connector) OnConnect(hook ConnectHook) {
	c.hooks = append(c.hooks, hook)
}

// Database returns the shared database handle, dialling if needed.
func (c *Connector) Database(ctx context.Context) (*mongo.Database, error) {
	c.mu.RLock()
	db := c.db
	c.mu.RUnlock()
	if db != nil {
		return db, nil
	}

	v, err, _ := c.sf.Do("connect", func() (interface{}, error) {
		c.mu.RLock()
		db := c.db
		c.mu.RUnlock()
		if db != nil {
			return db, nil
		}

		// The dial outlives any single request, so it ignores caller cancellation.
		dialCtx := context.WithoutCancel(ctx)
		client, db, err := c.dial(dialCtx)
		if err != nil {
			return nil, err
		}
		for _, hook := range c.hooks {
			hook(dialCtx, db)
		}

		c.mu.Lock()
		c.client, c.db = client, db
		c.mu.Unlock()
		return db, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*mongo.Database), nil
}

// Connected reports whether a handle has been established.
func (c *Connector) Connected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.db != nil
}

// Ping checks connectivity, dialling if needed.
func (c *Connector) Ping(ctx context.Context) error {
	db, err := c.Database(ctx)
	if err != nil {
		return err
	}
	return db.Client().Ping(ctx, nil)
}

// Close disconnects the client if one was established.
func (c *Connector) Close(ctx context.Context) error {
	c.mu.Lock()
	client := c.client
	c.client, c.db = nil, nil
	c.mu.Unlock()

	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}
