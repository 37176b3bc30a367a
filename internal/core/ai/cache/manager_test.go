package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"recipe-ingest/internal/infrastructure/config"
)

func testConfig(maxSize int, ttl time.Duration) *config.Config {
	return &config.Config{
		Cache: config.CacheConfig{
			Enabled:         true,
			MaxSize:         maxSize,
			TTL:             ttl,
			CleanupInterval: time.Hour,
		},
	}
}

func TestManagerDisabled(t *testing.T) {
	cfg := testConfig(10, time.Hour)
	cfg.Cache.Enabled = false

	m := NewManager(cfg)
	if m != nil {
		t.Fatal("disabled cache should return nil manager")
	}

	// nil manager 的所有操作都必須安全
	if _, err := m.Get(context.Background(), "p", ""); err == nil {
		t.Error("Get on nil manager should return an error")
	}
	if err := m.Set(context.Background(), "p", "", "v"); err != nil {
		t.Errorf("Set on nil manager should be a no-op, got %v", err)
	}
	if err := m.Close(); err != nil {
		t.Errorf("Close on nil manager should be a no-op, got %v", err)
	}
}

func TestManagerSetGet(t *testing.T) {
	m := NewManager(testConfig(10, time.Hour))
	defer m.Close()

	ctx := context.Background()
	if err := m.Set(ctx, "prompt", "", "answer"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := m.Get(ctx, "prompt", "")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != "answer" {
		t.Errorf("got %q, want answer", got)
	}

	if _, err := m.Get(ctx, "unknown", ""); err == nil {
		t.Error("expected miss for unknown prompt")
	}
}

func TestManagerKeySeparatesImageData(t *testing.T) {
	m := NewManager(testConfig(10, time.Hour))
	defer m.Close()

	ctx := context.Background()
	m.Set(ctx, "prompt", "", "text-answer")
	m.Set(ctx, "prompt", "imagedata", "vision-answer")

	if got, _ := m.Get(ctx, "prompt", ""); got != "text-answer" {
		t.Errorf("text key got %q", got)
	}
	if got, _ := m.Get(ctx, "prompt", "imagedata"); got != "vision-answer" {
		t.Errorf("multimodal key got %q", got)
	}
}

func TestManagerTTLExpiry(t *testing.T) {
	m := NewManager(testConfig(10, 10*time.Millisecond))
	defer m.Close()

	ctx := context.Background()
	m.Set(ctx, "prompt", "", "answer")
	time.Sleep(30 * time.Millisecond)

	if _, err := m.Get(ctx, "prompt", ""); err == nil {
		t.Error("expected expired entry to miss")
	}
}

func TestManagerEvictsWhenFull(t *testing.T) {
	m := NewManager(testConfig(3, time.Hour))
	defer m.Close()

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		m.Set(ctx, fmt.Sprintf("prompt-%d", i), "", "v")
	}

	// 反覆讀取 prompt-2，讓它的使用次數最高
	for i := 0; i < 5; i++ {
		m.Get(ctx, "prompt-2", "")
	}

	// 容量已滿：第四筆必須觸發 LRU 淘汰而非失敗
	if err := m.Set(ctx, "prompt-3", "", "v"); err != nil {
		t.Fatalf("Set at capacity should evict, got %v", err)
	}

	if got, err := m.Get(ctx, "prompt-2", ""); err != nil || got != "v" {
		t.Errorf("hot entry should survive eviction, got (%q, %v)", got, err)
	}
}

func TestManagerStats(t *testing.T) {
	m := NewManager(testConfig(10, time.Hour))
	defer m.Close()

	ctx := context.Background()
	m.Set(ctx, "prompt", "", "answer")
	m.Get(ctx, "prompt", "")
	m.Get(ctx, "missing", "")

	stats := m.GetStats()
	if stats["hits"].(int64) != 1 {
		t.Errorf("hits = %v, want 1", stats["hits"])
	}
	if stats["misses"].(int64) != 1 {
		t.Errorf("misses = %v, want 1", stats["misses"])
	}
	if stats["size"].(int) != 1 {
		t.Errorf("size = %v, want 1", stats["size"])
	}
}
