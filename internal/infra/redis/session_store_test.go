package redis

import (
	"testing"
	"time"

	"devops-quiz/internal/app"
	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestSessionStoreSetsAndClearsKeys(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewSessionStore(client, time.Minute)

	engine := store.GetOrCreate("p1", func() *app.Engine { return app.NewEngine() })
	if !mr.Exists("quiz:session:p1") {
		t.Fatalf("expected redis key to be set")
	}
	if got, ok := store.Get("p1"); !ok || got != engine {
		t.Fatalf("expected engine to be kept locally")
	}

	store.Release("p1")
	if mr.Exists("quiz:session:p1") {
		t.Fatalf("expected redis key to be removed")
	}
}

func TestSessionStoreCountsHolders(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewSessionStore(client, time.Minute)
	create := func() *app.Engine { return app.NewEngine() }

	engine := store.GetOrCreate("p1", create)
	store.GetOrCreate("p1", create)
	if got, _ := mr.Get("quiz:session:p1"); got != "2" {
		t.Fatalf("expected two holders recorded, got %q", got)
	}

	store.Release("p1")
	if got, ok := store.Get("p1"); !ok || got != engine {
		t.Fatalf("expected engine kept while a holder remains")
	}
	if got, _ := mr.Get("quiz:session:p1"); got != "1" {
		t.Fatalf("expected one holder recorded, got %q", got)
	}

	store.Release("p1")
	if _, ok := store.Get("p1"); ok || mr.Exists("quiz:session:p1") {
		t.Fatalf("expected session and key removed after last release")
	}
}
