package cache

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	t.Run("miss", func(t *testing.T) {
		_, hit, err := c.Get(ctx, "missing")
		if err != nil || hit {
			t.Errorf("Get(missing) = %v, %v; want false, nil", hit, err)
		}
	})

	t.Run("set get delete", func(t *testing.T) {
		key := Key("vt", "urls", "abc")
		if err := c.Set(ctx, key, []byte(`{"url":"http://a/"}`), time.Hour); err != nil {
			t.Fatalf("Set error: %v", err)
		}
		data, hit, err := c.Get(ctx, key)
		if err != nil || !hit {
			t.Fatalf("Get = %v, %v; want true, nil", hit, err)
		}
		if string(data) != `{"url":"http://a/"}` {
			t.Errorf("Get data = %s", data)
		}
		if err := c.Delete(ctx, key); err != nil {
			t.Fatalf("Delete error: %v", err)
		}
		if _, hit, _ := c.Get(ctx, key); hit {
			t.Error("Get should miss after Delete")
		}
		if err := c.Delete(ctx, key); err != nil {
			t.Errorf("Delete of missing key error: %v", err)
		}
	})

	t.Run("expiration", func(t *testing.T) {
		if err := c.Set(ctx, "short", []byte("x"), 10*time.Millisecond); err != nil {
			t.Fatalf("Set error: %v", err)
		}
		time.Sleep(20 * time.Millisecond)
		if _, hit, _ := c.Get(ctx, "short"); hit {
			t.Error("expired entry should miss")
		}
	})

	t.Run("no expiration", func(t *testing.T) {
		if err := c.Set(ctx, "forever", []byte("x"), 0); err != nil {
			t.Fatalf("Set error: %v", err)
		}
		if _, hit, _ := c.Get(ctx, "forever"); !hit {
			t.Error("entry without ttl should hit")
		}
	})

	t.Run("corrupt entry", func(t *testing.T) {
		path := c.path("corrupt")
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, hit, err := c.Get(ctx, "corrupt"); hit || err != nil {
			t.Errorf("Get(corrupt) = %v, %v; want false, nil", hit, err)
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Error("corrupt entry should be removed")
		}
	})
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatalf("Set error: %v", err)
		}
	}

	n, err := c.Clear()
	if err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear() = %d, want 3", n)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("Get should miss after Clear")
	}
	entries, _ := os.ReadDir(c.Dir())
	if len(entries) != 0 {
		t.Errorf("cache dir has %d entries after Clear", len(entries))
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestKey(t *testing.T) {
	if got := Key("vt", "graphs", "g1"); got != "vt:graphs:g1" {
		t.Errorf("Key() = %q, want %q", got, "vt:graphs:g1")
	}
}

func TestNewRedisCacheUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if _, err := NewRedisCache(ctx, RedisConfig{Addr: "127.0.0.1:1"}); err == nil {
		t.Error("NewRedisCache should fail when redis is unreachable")
	}
}
