package store

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedisBlobStore(t *testing.T) (*RedisBlobStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisBlobStore(client, "quizly:"), mr
}

func TestRedisBlobStorePutGet(t *testing.T) {
	blobs, mr := newTestRedisBlobStore(t)
	ctx := context.Background()

	if err := blobs.Put(ctx, "quiz_categories", []byte(`[]`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if !mr.Exists("quizly:quiz_categories") {
		t.Fatalf("expected prefixed redis key to be set")
	}

	got, ok, err := blobs.Get(ctx, "quiz_categories")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if string(got) != "[]" {
		t.Fatalf("expected [], got %q", got)
	}
}

func TestRedisBlobStoreMissingKey(t *testing.T) {
	blobs, _ := newTestRedisBlobStore(t)

	_, ok, err := blobs.Get(context.Background(), "nope")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected missing key")
	}
}

func TestRedisBlobStoreDelete(t *testing.T) {
	blobs, mr := newTestRedisBlobStore(t)
	ctx := context.Background()

	_ = blobs.Put(ctx, "a", []byte("1"))
	_ = blobs.Put(ctx, "b", []byte("2"))
	if err := blobs.Delete(ctx, "a", "b", "c"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if mr.Exists("quizly:a") || mr.Exists("quizly:b") {
		t.Fatal("expected keys to be removed")
	}
}

func TestRedisBlobStoreConnectionError(t *testing.T) {
	blobs, mr := newTestRedisBlobStore(t)
	mr.Close()

	if _, _, err := blobs.Get(context.Background(), "k"); err == nil {
		t.Fatal("expected error after server shutdown")
	}
}
