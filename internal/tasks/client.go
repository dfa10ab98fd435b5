// Package tasks runs background maintenance jobs on a backlite queue backed
// by its own SQLite file, independent of the main store driver.
package tasks

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/mikestefanello/backlite"

	"github.com/animeshelf/library/internal/config"
)

// Client owns the queue database and the backlite dispatcher on top of it.
type Client struct {
	queue   *backlite.Client
	db      *sql.DB
	workers int
	running atomic.Bool
}

func withDefaults(cfg config.Tasks) config.Tasks {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.ReleaseAfter <= 0 {
		cfg.ReleaseAfter = 15 * time.Minute
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = time.Hour
	}
	if cfg.DatabasePath == "" {
		cfg.DatabasePath = config.DefaultTasksDatabasePath
	}
	return cfg
}

// openQueueDB opens the queue file in WAL mode so workers and the enqueuing
// scheduler do not block each other.
func openQueueDB(path string, workers int) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path+"?_journal=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open tasks database: %w", err)
	}
	db.SetMaxOpenConns(workers + 5)
	db.SetMaxIdleConns(workers + 2)
	db.SetConnMaxLifetime(time.Hour)
	return db, nil
}

// NewClient opens the queue database at cfg.DatabasePath and installs the
// backlite schema. Queues must be registered before Start.
func NewClient(cfg config.Tasks) (*Client, error) {
	cfg = withDefaults(cfg)

	db, err := openQueueDB(cfg.DatabasePath, cfg.Workers)
	if err != nil {
		return nil, err
	}

	queue, err := backlite.NewClient(backlite.ClientConfig{
		DB:              db,
		NumWorkers:      cfg.Workers,
		ReleaseAfter:    cfg.ReleaseAfter,
		CleanupInterval: cfg.CleanupInterval,
		Logger:          queueLogger{},
	})
	if err == nil {
		err = queue.Install()
	}
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("set up task queue: %w", err)
	}

	return &Client{queue: queue, db: db, workers: cfg.Workers}, nil
}

func (c *Client) Register(queues ...backlite.Queue) {
	for _, q := range queues {
		c.queue.Register(q)
	}
}

// Start launches the workers and returns. Calls after the first are ignored.
func (c *Client) Start(ctx context.Context) {
	if !c.running.CompareAndSwap(false, true) {
		return
	}
	log.Printf("Task queue started with %d workers", c.workers)
	c.queue.Start(ctx)
}

// Stop waits for in-flight tasks until ctx expires and reports whether
// every worker finished in time.
func (c *Client) Stop(ctx context.Context) bool {
	if !c.running.Load() {
		return true
	}

	if !c.queue.Stop(ctx) {
		log.Println("Task queue stopped before all tasks completed")
		return false
	}
	log.Println("Task queue stopped")
	return true
}

// Close releases the queue database. Call it after Stop.
func (c *Client) Close() error {
	return c.db.Close()
}

func (c *Client) Add(tasks ...backlite.Task) *backlite.TaskAddOp {
	return c.queue.Add(tasks...)
}

// EnqueueAuditCleanup queues one retention pass; the audit cleanup queue
// must be registered for it to run.
func (c *Client) EnqueueAuditCleanup(ctx context.Context, retentionDays int) error {
	ids, err := c.Add(CleanupAuditEventsTask{RetentionDays: retentionDays}).Ctx(ctx).Save()
	if err != nil {
		return fmt.Errorf("enqueue audit cleanup: %w", err)
	}
	log.Printf("[TASK] Queued audit cleanup %v (keep %d days)", ids, retentionDays)
	return nil
}

type queueLogger struct{}

func (queueLogger) Info(message string, params ...any) {
	log.Printf("[TASK] "+message, params...)
}

func (queueLogger) Error(message string, params ...any) {
	log.Printf("[TASK ERROR] "+message, params...)
}
