package services

import (
	"context"
	"encoding/json"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/compassionai/compassion/internal/models"
	"github.com/compassionai/compassion/internal/providers/llm"
	pgrepo "github.com/compassionai/compassion/internal/repositories/postgres"
)

func newTestRepo(t *testing.T) pgrepo.InteractionRepo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Interaction{}))
	return pgrepo.NewInteractionRepo(db)
}

// stubCache records operations in memory so tests can observe cache traffic.
type stubCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	deleted []string
	sets    int
	hits    int
}

func newStubCache() *stubCache {
	return &stubCache{entries: map[string][]byte{}}
}

func (c *stubCache) GetJSON(_ context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	c.hits++
	return true, json.Unmarshal(raw, dst)
}

func (c *stubCache) SetJSON(_ context.Context, key string, val any, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, err := json.Marshal(val)
	if err != nil {
		return err
	}
	c.entries[key] = raw
	c.sets++
	return nil
}

func (c *stubCache) Del(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.entries, k)
		c.deleted = append(c.deleted, k)
	}
	return nil
}

// fakeProvider returns a canned reply or error and captures what it was sent.
type fakeProvider struct {
	reply string
	err   error

	mu    sync.Mutex
	calls [][]llm.Message
}

func (p *fakeProvider) Complete(_ context.Context, messages []llm.Message) (string, error) {
	p.mu.Lock()
	p.calls = append(p.calls, messages)
	p.mu.Unlock()
	if p.err != nil {
		return "", p.err
	}
	return p.reply, nil
}
