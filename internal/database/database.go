// Package database contains the logic for establishing
// connections to the MongoDB document store.
//
// It handles:
//   - building client options from config
//   - resolving the database name
//   - wiring command monitoring (zerolog command log, New Relic nrmongo)
//   - connecting, pinging and disconnecting
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/deppfellow/go-courses/internal/config"
	loggerConfig "github.com/deppfellow/go-courses/internal/logger"
	"github.com/newrelic/go-agent/v3/integrations/nrmongo"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

// DefaultDatabaseName is used when neither config nor URI name a database.
const DefaultDatabaseName = "test"

// Database wraps the Mongo client (and its connection pool) and the
// database handle used by repositories.
type Database struct {
	Client *mongo.Client
	DB     *mongo.Database
	log    *zerolog.Logger
}

// New creates a Mongo client with instrumentation and verifies the
// connection with a ping.
//
// When the ping fails and cfg.Database.AllowDegradedStart is set, the
// failure is logged and the client is returned anyway; the driver
// reconnects lazily on the first request.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*Database, error) {
	name, err := ResolveName(cfg.Database)
	if err != nil {
		return nil, err
	}

	timeout := time.Duration(cfg.Database.ConnectTimeout) * time.Second

	opts := options.Client().
		ApplyURI(cfg.Database.URI).
		SetAppName(config.ServiceName).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout).
		// Every operation is a single round trip.
		SetRetryReads(false).
		SetRetryWrites(false)

	if monitor := newMonitor(cfg, logger, loggerService); monitor != nil {
		opts.SetMonitor(monitor)
	}

	client, err := mongo.Connect(context.Background(), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	database := &Database{
		Client: client,
		DB:     client.Database(name),
		log:    logger,
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := database.Ping(ctx); err != nil {
		if !cfg.Database.AllowDegradedStart {
			_ = client.Disconnect(context.Background())
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}
		logger.Error().Err(err).Str("database", name).Msg("could not connect to the database, continuing in degraded mode")
		return database, nil
	}

	logger.Info().Str("database", name).Msg("connected to the database")

	return database, nil
}

// ResolveName picks the database name: explicit config first, then the
// database in the URI path, then DefaultDatabaseName.
func ResolveName(cfg config.DatabaseConfig) (string, error) {
	if cfg.Name != "" {
		return cfg.Name, nil
	}

	cs, err := connstring.Parse(cfg.URI)
	if err != nil {
		return "", fmt.Errorf("failed to parse database uri: %w", err)
	}
	if cs.Database != "" {
		return cs.Database, nil
	}

	return DefaultDatabaseName, nil
}

// Ping checks connectivity against the primary.
func (db *Database) Ping(ctx context.Context) error {
	return db.Client.Ping(ctx, nil)
}

// Collection returns a handle to the named collection.
func (db *Database) Collection(name string) *mongo.Collection {
	return db.DB.Collection(name)
}

// Close disconnects the client and releases its pool.
func (db *Database) Close(ctx context.Context) error {
	db.log.Info().Msg("closing database connection")
	return db.Client.Disconnect(ctx)
}

// newMonitor builds the command monitor for the client.
//
// The New Relic monitor is installed when the agent is running. In the
// local environment every command is also logged through zerolog; when
// both apply they are chained.
func newMonitor(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) *event.CommandMonitor {
	var monitors []*event.CommandMonitor

	if loggerService != nil && loggerService.GetApplication() != nil {
		monitors = append(monitors, nrmongo.NewCommandMonitor(nil))
	}

	if cfg.Primary.Env == "local" {
		commandLogger := logger.With().Str("component", "mongo").Logger()
		monitors = append(monitors, NewCommandLogger(commandLogger, cfg.Observability.Logging.SlowQueryThreshold))
	}

	switch len(monitors) {
	case 0:
		return nil
	case 1:
		return monitors[0]
	default:
		return chainMonitors(monitors...)
	}
}

// chainMonitors fans driver events out to several monitors in order.
func chainMonitors(monitors ...*event.CommandMonitor) *event.CommandMonitor {
	return &event.CommandMonitor{
		Started: func(ctx context.Context, evt *event.CommandStartedEvent) {
			for _, m := range monitors {
				if m.Started != nil {
					m.Started(ctx, evt)
				}
			}
		},
		Succeeded: func(ctx context.Context, evt *event.CommandSucceededEvent) {
			for _, m := range monitors {
				if m.Succeeded != nil {
					m.Succeeded(ctx, evt)
				}
			}
		},
		Failed: func(ctx context.Context, evt *event.CommandFailedEvent) {
			for _, m := range monitors {
				if m.Failed != nil {
					m.Failed(ctx, evt)
				}
			}
		},
	}
}
