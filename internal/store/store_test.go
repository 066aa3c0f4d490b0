// Spark - Career Discovery Video Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spark

package store

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"

	"github.com/tomtom215/spark/internal/behavior"
	"github.com/tomtom215/spark/internal/career"
)

func newTestBadger(t *testing.T) *BadgerSink {
	t.Helper()
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		t.Fatalf("open badger: %v", err)
	}
	sink := NewBadgerSink(db, true)
	t.Cleanup(func() { _ = sink.Close() })
	return sink
}

// exerciseSink runs the behavior.Sink contract against s.
func exerciseSink(t *testing.T, s behavior.Sink) {
	t.Helper()
	ctx := context.Background()
	slot := behavior.SlotKey("contract-" + time.Now().Format("150405.000000"))

	if _, err := s.Load(ctx, slot); !errors.Is(err, behavior.ErrNotFound) {
		t.Fatalf("Load(missing) err = %v, want ErrNotFound", err)
	}

	if err := s.Save(ctx, slot, []byte(`{"v":1}`)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Save(ctx, slot, []byte(`{"v":2}`)); err != nil {
		t.Fatalf("Save overwrite: %v", err)
	}

	got, err := s.Load(ctx, slot)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(got) != `{"v":2}` {
		t.Errorf("Load = %s, want latest save", got)
	}

	if err := s.Delete(ctx, slot); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(ctx, slot); err != nil {
		t.Fatalf("Delete(missing): %v", err)
	}
	if _, err := s.Load(ctx, slot); !errors.Is(err, behavior.ErrNotFound) {
		t.Errorf("Load after delete err = %v, want ErrNotFound", err)
	}
}

func TestMemorySink(t *testing.T) {
	exerciseSink(t, NewMemorySink())
}

func TestMemorySink_CopiesData(t *testing.T) {
	ctx := context.Background()
	m := NewMemorySink()
	buf := []byte("abc")
	_ = m.Save(ctx, "s", buf)
	buf[0] = 'X'

	got, _ := m.Load(ctx, "s")
	if string(got) != "abc" {
		t.Errorf("Load = %s, sink must copy on save", got)
	}
	if m.Len() != 1 {
		t.Errorf("Len = %d", m.Len())
	}
}

func TestBadgerSink(t *testing.T) {
	exerciseSink(t, newTestBadger(t))
}

func TestBadgerSink_Slots(t *testing.T) {
	ctx := context.Background()
	s := newTestBadger(t)
	_ = s.Save(ctx, behavior.SlotKey("a"), []byte("1"))
	_ = s.Save(ctx, behavior.SlotKey("b"), []byte("2"))

	slots, err := s.Slots(ctx)
	if err != nil {
		t.Fatalf("Slots: %v", err)
	}
	if len(slots) != 2 {
		t.Errorf("Slots = %v, want 2 entries", slots)
	}
}

func TestRedisSink(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	s, err := DialRedis(context.Background(), RedisOptions{Addr: addr, Prefix: "spark-test:", TTL: time.Minute})
	if err != nil {
		t.Fatalf("DialRedis: %v", err)
	}
	defer s.Close()
	exerciseSink(t, s)
}

func TestDialRedis_RequiresAddr(t *testing.T) {
	if _, err := DialRedis(context.Background(), RedisOptions{}); err == nil {
		t.Error("DialRedis without address should fail")
	}
}

func TestNew(t *testing.T) {
	ctx := context.Background()

	mem, err := New(ctx, Options{Backend: BackendMemory})
	if err != nil {
		t.Fatalf("New(memory): %v", err)
	}
	_ = mem.Close()

	bdg, err := New(ctx, Options{Backend: BackendBadger})
	if err != nil {
		t.Fatalf("New(badger in-memory): %v", err)
	}
	exerciseSink(t, bdg)
	_ = bdg.Close()

	if _, err := New(ctx, Options{Backend: "etcd"}); err == nil {
		t.Error("New(unknown) should fail")
	}
}

func TestTrackerOverBadger_RoundTrip(t *testing.T) {
	ctx := context.Background()
	sink := newTestBadger(t)
	music := career.FromCanonical(career.Music)

	tr := behavior.Open(ctx, sink, "viewer-1", behavior.Options{})
	for _, id := range []string{"a", "b", "c"} {
		tr.RecordWatch(ctx, id, 9_000, 10_000, music)
	}
	tr.Like(ctx, "a", music)

	reopened := behavior.Open(ctx, sink, "viewer-1", behavior.Options{})
	if got := reopened.PreferredCategory(); got != "Music" {
		t.Errorf("PreferredCategory = %q, want Music", got)
	}
	var liked bool
	reopened.View(func(s *behavior.State) { liked = s.HasLiked("a") })
	if !liked {
		t.Error("like did not survive reopen")
	}
	top := reopened.TopInterests(1)
	if len(top) != 1 || top[0].Category != "Music" || top[0].Score != 10 {
		t.Errorf("TopInterests = %+v", top)
	}
}

func TestGCService(t *testing.T) {
	ctx := context.Background()
	sink, err := New(ctx, Options{Backend: BackendBadger})
	if err != nil {
		t.Fatalf("New(badger): %v", err)
	}
	defer sink.Close()

	gc := NewGCService(sink, 0, zerolog.Nop())
	if gc == nil {
		t.Fatal("NewGCService(badger) = nil")
	}
	if gc.interval != DefaultGCInterval {
		t.Errorf("interval = %v, want %v", gc.interval, DefaultGCInterval)
	}
	// In-memory databases have no value log to rewrite.
	if n := gc.RunOnce(); n != 0 {
		t.Errorf("RunOnce() = %d, want 0", n)
	}

	if NewGCService(NewMemorySink(), time.Minute, zerolog.Nop()) != nil {
		t.Error("NewGCService(memory) should be nil")
	}

	runCtx, cancel := context.WithCancel(ctx)
	cancel()
	if err := gc.Serve(runCtx); !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() = %v, want context.Canceled", err)
	}
}
