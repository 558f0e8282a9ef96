package checklist

import (
  "context"
  "errors"
  "testing"
  "time"
  "github.com/google/uuid"
  "go.uber.org/zap"
  "github.com/centenniallife/wellness-backend/internal/logger"
)

type saveCall struct {
  snap    Snapshot
  reply   chan saveReply
}

type saveReply struct {
  rec   *Record
  err   error
}

// scriptedGateway hands every Save call to the test, which decides when and
// how it completes. Fetch always reports an absent record.
type scriptedGateway struct {
  calls   chan saveCall
}

func newScriptedGateway() *scriptedGateway {
  return &scriptedGateway{calls: make(chan saveCall, 8)}
}

func (g *scriptedGateway) Fetch(ctx context.Context, userID uuid.UUID, date string) (*Record, error) {
  return nil, nil
}

func (g *scriptedGateway) Save(ctx context.Context, userID uuid.UUID, date string, snap Snapshot) (*Record, error) {
  call := saveCall{snap: snap.Clone(), reply: make(chan saveReply, 1)}
  g.calls <- call
  res := <-call.reply
  return res.rec, res.err
}

func (g *scriptedGateway) waitForSave(t *testing.T) saveCall {
  t.Helper()
  select {
  case call := <-g.calls:
    return call
  case <-time.After(2 * time.Second):
    t.Fatalf("timed out waiting for a save")
    return saveCall{}
  }
}

func (g *scriptedGateway) expectNoSave(t *testing.T, within time.Duration) {
  t.Helper()
  select {
  case call := <-g.calls:
    call.reply <- saveReply{err: errors.New("unexpected save")}
    t.Fatalf("unexpected save call")
  case <-time.After(within):
  }
}

func recordFor(snap Snapshot) *Record {
  stats := ComputeStats(snap.Items)
  return &Record{
    Items:                snap.Items,
    Reflection:           snap.Reflection,
    TotalItems:           stats.TotalItems,
    CompletedItems:       stats.CompletedItems,
    CompletionPercentage: stats.CompletionPercentage,
  }
}

func testLogger() *logger.Logger {
  return &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

func newTestSaver(gw Gateway, cfg AutoSaverConfig) (*AutoSaver, *Store) {
  if cfg.ToggleDelay == 0 {
    cfg.ToggleDelay = 20 * time.Millisecond
  }
  if cfg.ReflectionDelay == 0 {
    cfg.ReflectionDelay = 30 * time.Millisecond
  }
  store := NewStore()
  saver := NewAutoSaver(testLogger(), store, gw, uuid.New(), "2026-08-30", cfg)
  return saver, store
}

func TestAutoSaverDebouncesBursts(t *testing.T) {
  gw := newScriptedGateway()
  saved := make(chan *Record, 1)
  saver, _ := newTestSaver(gw, AutoSaverConfig{
    OnSaved: func(rec *Record) { saved <- rec },
  })
  defer saver.Stop()

  if _, err := saver.Toggle("physical-health", "morning-exercise"); err != nil {
    t.Fatalf("toggle: %v", err)
  }
  if _, err := saver.Toggle("physical-health", "water-intake"); err != nil {
    t.Fatalf("toggle: %v", err)
  }
  if _, err := saver.Toggle("mental-health", "meditation"); err != nil {
    t.Fatalf("toggle: %v", err)
  }
  if !saver.Dirty() {
    t.Fatalf("saver should be dirty before the debounce fires")
  }

  call := gw.waitForSave(t)
  if !call.snap.Items["morning-exercise"] || !call.snap.Items["water-intake"] || !call.snap.Items["meditation"] {
    t.Fatalf("save should carry all three toggles, got %+v", call.snap.Items)
  }
  call.reply <- saveReply{rec: recordFor(call.snap)}

  select {
  case rec := <-saved:
    if rec.CompletedItems != 3 {
      t.Fatalf("confirmed record has %d completed items, want 3", rec.CompletedItems)
    }
  case <-time.After(2 * time.Second):
    t.Fatalf("OnSaved never fired")
  }

  gw.expectNoSave(t, 100*time.Millisecond)
  if saver.Dirty() {
    t.Fatalf("saver should be clean after the confirmed save")
  }
}

func TestAutoSaverRevertsOnFailure(t *testing.T) {
  gw := newScriptedGateway()
  errs := make(chan error, 1)
  saver, store := newTestSaver(gw, AutoSaverConfig{
    OnError: func(err error) { errs <- err },
  })
  defer saver.Stop()

  if _, err := saver.Toggle("sleep", "regular-bedtime"); err != nil {
    t.Fatalf("toggle: %v", err)
  }

  call := gw.waitForSave(t)
  call.reply <- saveReply{err: NewGatewayError(KindTransient, errors.New("connection reset"))}

  select {
  case err := <-errs:
    if KindOf(err) != KindTransient {
      t.Fatalf("OnError got kind %v, want transient", KindOf(err))
    }
  case <-time.After(2 * time.Second):
    t.Fatalf("OnError never fired")
  }

  if store.Snapshot().Items["regular-bedtime"] {
    t.Fatalf("failed save should revert the optimistic toggle")
  }
}

func TestAutoSaverDropsSupersededFailure(t *testing.T) {
  gw := newScriptedGateway()
  saved := make(chan *Record, 1)
  errs := make(chan error, 1)
  saver, store := newTestSaver(gw, AutoSaverConfig{
    OnSaved: func(rec *Record) { saved <- rec },
    OnError: func(err error) { errs <- err },
  })
  defer saver.Stop()

  if _, err := saver.Toggle("nutrition", "vegetable-intake"); err != nil {
    t.Fatalf("toggle: %v", err)
  }
  first := gw.waitForSave(t)

  // A second toggle lands while the first save is still in flight.
  if _, err := saver.Toggle("nutrition", "protein-intake"); err != nil {
    t.Fatalf("toggle: %v", err)
  }
  second := gw.waitForSave(t)

  // The first save now fails late. It is superseded and must not revert the
  // newer state.
  first.reply <- saveReply{err: NewGatewayError(KindTransient, errors.New("timeout"))}

  second.reply <- saveReply{rec: recordFor(second.snap)}
  select {
  case <-saved:
  case <-time.After(2 * time.Second):
    t.Fatalf("second save was never confirmed")
  }

  select {
  case err := <-errs:
    t.Fatalf("superseded failure surfaced to OnError: %v", err)
  case <-time.After(100 * time.Millisecond):
  }

  snap := store.Snapshot()
  if !snap.Items["vegetable-intake"] || !snap.Items["protein-intake"] {
    t.Fatalf("stale failure reverted live state: %+v", snap.Items)
  }
}

func TestAutoSaverSignsOutOnAuthFailure(t *testing.T) {
  gw := newScriptedGateway()
  signedOut := make(chan struct{}, 1)
  saver, store := newTestSaver(gw, AutoSaverConfig{
    OnSignOut: func() { signedOut <- struct{}{} },
  })
  defer saver.Stop()

  if _, err := saver.Toggle("purpose", "hobby-engage"); err != nil {
    t.Fatalf("toggle: %v", err)
  }
  call := gw.waitForSave(t)
  call.reply <- saveReply{err: NewGatewayError(KindUnauthenticated, errors.New("token expired"))}

  select {
  case <-signedOut:
  case <-time.After(2 * time.Second):
    t.Fatalf("OnSignOut never fired")
  }

  // An expired session does not revert; the user sees their state until the
  // sign-out handler tears the session down.
  if !store.Snapshot().Items["hobby-engage"] {
    t.Fatalf("auth failure should not revert the visible state")
  }
}

func TestAutoSaverFlushSkipsDebounce(t *testing.T) {
  gw := newScriptedGateway()
  saver, _ := newTestSaver(gw, AutoSaverConfig{
    ToggleDelay:     time.Hour,
    ReflectionDelay: time.Hour,
  })
  defer saver.Stop()

  if err := saver.SetReflectionField(FieldAchievements, "오늘은 일찍 잤다"); err != nil {
    t.Fatalf("set reflection: %v", err)
  }

  done := make(chan error, 1)
  go func() {
    done <- saver.Flush(context.Background())
  }()

  call := gw.waitForSave(t)
  if call.snap.Reflection.Achievements != "오늘은 일찍 잤다" {
    t.Fatalf("flush snapshot missing reflection edit: %+v", call.snap.Reflection)
  }
  call.reply <- saveReply{rec: recordFor(call.snap)}

  select {
  case err := <-done:
    if err != nil {
      t.Fatalf("flush: %v", err)
    }
  case <-time.After(2 * time.Second):
    t.Fatalf("flush never returned")
  }
  if saver.Dirty() {
    t.Fatalf("saver should be clean after flush")
  }

  // The hour-long timer must not produce a second save.
  gw.expectNoSave(t, 100*time.Millisecond)
}

func TestAutoSaverStopCancelsPendingSave(t *testing.T) {
  gw := newScriptedGateway()
  saver, _ := newTestSaver(gw, AutoSaverConfig{})

  if _, err := saver.Toggle("stress-management", "rest-time"); err != nil {
    t.Fatalf("toggle: %v", err)
  }
  saver.Stop()

  gw.expectNoSave(t, 100*time.Millisecond)
}

func TestAutoSaverFirstToggleOfDay(t *testing.T) {
  gw := newScriptedGateway()
  saved := make(chan *Record, 1)
  errs := make(chan error, 1)
  saver, store := newTestSaver(gw, AutoSaverConfig{
    OnSaved: func(rec *Record) { saved <- rec },
    OnError: func(err error) { errs <- err },
  })
  defer saver.Stop()

  if err := saver.Load(context.Background()); err != nil {
    t.Fatalf("load: %v", err)
  }

  checked, err := saver.Toggle("physical-health", "morning-exercise")
  if err != nil {
    t.Fatalf("toggle: %v", err)
  }
  if !checked {
    t.Fatalf("first toggle should check the item")
  }

  snap := store.Snapshot()
  stats := ComputeStats(snap.Items)
  if stats.CompletedItems != 1 {
    t.Fatalf("CompletedItems = %d, want 1", stats.CompletedItems)
  }
  if stats.TotalItems != TotalItems() {
    t.Fatalf("TotalItems = %d, want %d", stats.TotalItems, TotalItems())
  }

  call := gw.waitForSave(t)
  if len(call.snap.Items) != TotalItems() {
    t.Fatalf("save carries %d items, want the full map of %d", len(call.snap.Items), TotalItems())
  }
  for id, v := range call.snap.Items {
    if v != (id == "morning-exercise") {
      t.Fatalf("item %q = %v in saved snapshot", id, v)
    }
  }
  call.reply <- saveReply{rec: recordFor(call.snap)}

  select {
  case rec := <-saved:
    if rec.CompletedItems != 1 {
      t.Fatalf("confirmed record has %d completed items, want 1", rec.CompletedItems)
    }
  case <-time.After(2 * time.Second):
    t.Fatalf("OnSaved never fired")
  }

  select {
  case err := <-errs:
    t.Fatalf("unexpected OnError: %v", err)
  case <-time.After(50 * time.Millisecond):
  }

  gw.expectNoSave(t, 100*time.Millisecond)
  if saver.Dirty() {
    t.Fatalf("saver should be clean after the confirmed save")
  }
  if !store.Snapshot().Items["morning-exercise"] {
    t.Fatalf("confirmed save must not revert the toggle")
  }
}

func TestAutoSaverLoadInitializesFreshDay(t *testing.T) {
  gw := newScriptedGateway()
  saver, store := newTestSaver(gw, AutoSaverConfig{})
  defer saver.Stop()

  if err := saver.Load(context.Background()); err != nil {
    t.Fatalf("load: %v", err)
  }
  snap := store.Snapshot()
  if len(snap.Items) != TotalItems() {
    t.Fatalf("fresh day has %d items, want %d", len(snap.Items), TotalItems())
  }
  if saver.Dirty() {
    t.Fatalf("freshly loaded saver should be clean")
  }
}
