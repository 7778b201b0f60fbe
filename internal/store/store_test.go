package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"social-media-agent/internal/config"
	"social-media-agent/models"
)

// exerciseStore checks the last-write-wins contract every backend shares.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	cfg, err := s.LoadConfig(ctx)
	require.NoError(t, err)
	assert.Nil(t, cfg, "nothing saved yet")

	saved, err := s.SaveConfig(ctx, "a@example.com", []string{"AI / ML", "Travel"})
	require.NoError(t, err)
	assert.Equal(t, models.UserConfig{Email: "a@example.com", Interests: []string{"AI / ML", "Travel"}}, saved)

	_, err = s.SaveConfig(ctx, "b@example.com", []string{"Music"})
	require.NoError(t, err)

	cfg, err = s.LoadConfig(ctx)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "b@example.com", cfg.Email)
	assert.Equal(t, []string{"Music"}, cfg.Interests)

	// no validation on save
	empty, err := s.SaveConfig(ctx, "", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{}, empty.Interests)

	empty, err = s.SaveConfig(ctx, "", []string{})
	require.NoError(t, err)
	assert.NotNil(t, empty.Interests)

	cfg, err = s.LoadConfig(ctx)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, []string{}, cfg.Interests, "empty interests load back as a list")

	log, err := s.LoadRunLog(ctx)
	require.NoError(t, err)
	assert.Nil(t, log)

	started := time.Date(2026, 10, 18, 7, 0, 0, 0, time.UTC)
	first := models.RunLog{
		RunID: "run-1", Trigger: models.TriggerScheduled, Email: "b@example.com", Interests: []string{"Music"},
		StartedAt: started, EndedAt: started.Add(2 * time.Second), Status: models.RunStatusError, Error: "boom",
	}
	second := first
	second.RunID = "run-2"
	second.Status = models.RunStatusSuccess
	second.Error = ""

	require.NoError(t, s.SaveRunLog(ctx, first))
	require.NoError(t, s.SaveRunLog(ctx, second))

	log, err = s.LoadRunLog(ctx)
	require.NoError(t, err)
	require.NotNil(t, log)
	assert.Equal(t, "run-2", log.RunID)
	assert.Equal(t, models.RunStatusSuccess, log.Status)
	assert.Empty(t, log.Error)
	assert.WithinDuration(t, started, log.StartedAt, time.Millisecond)
	assert.WithinDuration(t, started.Add(2*time.Second), log.EndedAt, time.Millisecond)
}

func TestFileStore(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	exerciseStore(t, s)
}

func TestFileStore_WritesIndentedJSON(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)

	_, err = s.SaveConfig(context.Background(), "a@example.com", []string{"Travel"})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, ConfigFileName))
	require.NoError(t, err)
	assert.JSONEq(t, `{"email":"a@example.com","interests":["Travel"]}`, string(data))
	assert.Contains(t, string(data), "\n  \"email\"")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files are cleaned up")
}

func TestFileStore_EmptyInterestsWrittenAsList(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)

	for _, interests := range [][]string{nil, {}} {
		_, err = s.SaveConfig(context.Background(), "", interests)
		require.NoError(t, err)

		data, err := os.ReadFile(filepath.Join(dir, ConfigFileName))
		require.NoError(t, err)
		assert.JSONEq(t, `{"email":"","interests":[]}`, string(data))
	}
}

func TestRedisStore_EmptyInterestsWrittenAsList(t *testing.T) {
	mr := miniredis.RunT(t)
	s := NewRedisStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	defer s.Close(context.Background())

	_, err := s.SaveConfig(context.Background(), "", []string{})
	require.NoError(t, err)

	raw, err := mr.Get(configKey)
	require.NoError(t, err)
	assert.JSONEq(t, `{"email":"","interests":[]}`, raw)
}

func TestFileStore_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, RunLogFileName), []byte("{not json"), 0o644))

	s, err := NewFileStore(dir)
	require.NoError(t, err)

	_, err = s.LoadRunLog(context.Background())
	assert.Error(t, err)
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s := NewRedisStore(rdb)
	defer s.Close(context.Background())

	exerciseStore(t, s)
	assert.True(t, mr.Exists(configKey))
	assert.True(t, mr.Exists(runLogKey))
}

func TestMongoStore(t *testing.T) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		t.Skip("MONGO_URI not set")
	}
	cfg := &config.Config{MongoURI: uri}
	client, err := config.ConnectMongoDB(cfg)
	if err != nil {
		t.Skipf("mongo unavailable: %v", err)
	}

	dbName := "sma_test_" + time.Now().Format("20060102150405")
	s := NewMongoStore(client, dbName)
	defer func() {
		_ = client.Database(dbName).Drop(context.Background())
		_ = s.Close(context.Background())
	}()

	exerciseStore(t, s)
}

func TestNew_FileBackend(t *testing.T) {
	s, err := New(&config.Config{StoreBackend: config.StoreFile, DataDir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, s)
}

func TestNew_RedisBackend(t *testing.T) {
	mr := miniredis.RunT(t)
	s, err := New(&config.Config{StoreBackend: config.StoreRedis, RedisURL: mr.Addr()})
	require.NoError(t, err)
	defer s.Close(context.Background())
	assert.IsType(t, &RedisStore{}, s)
}
