// Package neo4jdb loads the merged tables into Neo4j: batched node
// and relationship upserts, plus the sequential pass that links the
// members of each expedition to each other.
package neo4jdb

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/mlnrt/himalayan-database-neo4j-import-tool/internal/logger"
)

// DefaultDatabase is the database name used when the environment does
// not set one.
const DefaultDatabase = "himalayandb"

// Client wraps the Neo4j driver with the target database name.
type Client struct {
	Driver   neo4j.DriverWithContext
	Database string
	log      *logger.Logger
}

// NewFromEnv builds a client from the NEO4J_SERVER_URL,
// NEO4J_SERVER_USERNAME, NEO4J_SERVER_PASSWORD and NEO4J_DATABASE_NAME
// environment variables and verifies connectivity.
func NewFromEnv(log *logger.Logger) (*Client, error) {
	if log == nil {
		return nil, fmt.Errorf("neo4jdb: logger required")
	}

	uri := strings.TrimSpace(os.Getenv("NEO4J_SERVER_URL"))
	if uri == "" {
		return nil, fmt.Errorf("neo4jdb: NEO4J_SERVER_URL not set")
	}
	user := strings.TrimSpace(os.Getenv("NEO4J_SERVER_USERNAME"))
	if user == "" {
		user = "neo4j"
	}
	password := strings.TrimSpace(os.Getenv("NEO4J_SERVER_PASSWORD"))
	database := strings.TrimSpace(os.Getenv("NEO4J_DATABASE_NAME"))
	if database == "" {
		database = DefaultDatabase
	}

	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, password, ""))
	if err != nil {
		return nil, fmt.Errorf("neo4jdb: init driver: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("neo4jdb: verify connectivity: %w", err)
	}

	return &Client{
		Driver:   driver,
		Database: database,
		log:      log.With("client", "Neo4jDB"),
	}, nil
}

// CreateDatabase creates the target database, replacing it when it
// already exists. Runs against the system database because schema
// operations cannot share a session with data writes.
func (c *Client) CreateDatabase(ctx context.Context) error {
	session := c.Driver.NewSession(ctx, neo4j.SessionConfig{DatabaseName: "system"})
	defer func() { _ = session.Close(ctx) }()

	c.log.Info("creating or replacing database", "database", c.Database)
	if _, err := session.Run(ctx, fmt.Sprintf("CREATE OR REPLACE DATABASE %s", c.Database), nil); err != nil {
		return fmt.Errorf("neo4jdb: create database %s: %w", c.Database, err)
	}
	return nil
}

// Close releases the driver.
func (c *Client) Close(ctx context.Context) error {
	if c == nil || c.Driver == nil {
		return nil
	}
	err := c.Driver.Close(ctx)
	c.Driver = nil
	return err
}
