package checklist

import (
  "context"
  "sync"
  "time"
  "github.com/google/uuid"
  "github.com/centenniallife/wellness-backend/internal/logger"
)

const (
  DefaultToggleDelay       = 1 * time.Second
  DefaultReflectionDelay   = 2 * time.Second
)

// AutoSaverConfig carries the debounce windows and the UI-facing callbacks.
// Callbacks are invoked outside the saver's lock and may be nil.
type AutoSaverConfig struct {
  ToggleDelay       time.Duration
  ReflectionDelay   time.Duration
  OnSaved           func(rec *Record)
  OnError           func(err error)
  OnSignOut         func()
}

// AutoSaver coalesces bursts of local mutations into single saves and keeps
// the Store reconciled with durable state.
//
// Every mutation is applied to the Store immediately (optimistic update) and
// restarts the debounce timer; when the timer fires the latest snapshot is
// sent, never an intermediate one. Snapshots carry a monotonic version. An
// acknowledgment for a snapshot older than the newest sent snapshot, or older
// than the current mutation version, is dropped, so a late failure can never
// stomp a strictly newer optimistic toggle. A failure of the newest save
// restores the last confirmed snapshot verbatim.
type AutoSaver struct {
  mu                 sync.Mutex
  log                *logger.Logger
  store              *Store
  gateway            Gateway
  userID             uuid.UUID
  date               string
  cfg                AutoSaverConfig

  timer              *time.Timer
  version            uint64
  sentVersion        uint64
  confirmedVersion   uint64
  confirmed          Snapshot
  stopped            bool
}

func NewAutoSaver(log *logger.Logger, store *Store, gateway Gateway, userID uuid.UUID, date string, cfg AutoSaverConfig) *AutoSaver {
  if cfg.ToggleDelay <= 0 {
    cfg.ToggleDelay = DefaultToggleDelay
  }
  if cfg.ReflectionDelay <= 0 {
    cfg.ReflectionDelay = DefaultReflectionDelay
  }
  saverLog := log.With("component", "AutoSaver", "date", date)
  return &AutoSaver{
    log:       saverLog,
    store:     store,
    gateway:   gateway,
    userID:    userID,
    date:      date,
    cfg:       cfg,
    confirmed: store.Snapshot(),
  }
}

// Load replaces the store state with the remote record for the saver's date.
// An absent record initializes a fresh day.
func (as *AutoSaver) Load(ctx context.Context) error {
  rec, err := as.gateway.Fetch(ctx, as.userID, as.date)
  if err != nil {
    return err
  }
  as.mu.Lock()
  defer as.mu.Unlock()
  as.store.LoadRemote(rec)
  as.confirmed = as.store.Snapshot()
  as.confirmedVersion = as.version
  return nil
}

// Toggle applies the flip immediately and schedules a debounced save. The new
// completion value is returned synchronously.
func (as *AutoSaver) Toggle(categoryID, itemID string) (bool, error) {
  as.mu.Lock()
  defer as.mu.Unlock()
  newValue, err := as.store.Toggle(categoryID, itemID)
  if err != nil {
    return false, err
  }
  as.version++
  as.scheduleLocked(as.cfg.ToggleDelay)
  return newValue, nil
}

// SetReflectionField applies the edit immediately and schedules a save with
// the longer typing-oriented delay.
func (as *AutoSaver) SetReflectionField(field ReflectionField, text string) error {
  as.mu.Lock()
  defer as.mu.Unlock()
  if err := as.store.SetReflectionField(field, text); err != nil {
    return err
  }
  as.version++
  as.scheduleLocked(as.cfg.ReflectionDelay)
  return nil
}

// Dirty reports whether mutations exist that no confirmed save covers yet.
func (as *AutoSaver) Dirty() bool {
  as.mu.Lock()
  defer as.mu.Unlock()
  return as.version != as.confirmedVersion
}

// Flush cancels any pending timer and saves the current snapshot right away.
// Intended for date changes and logout, where waiting out the debounce window
// would risk losing the last mutation.
func (as *AutoSaver) Flush(ctx context.Context) error {
  as.mu.Lock()
  if as.stopped {
    as.mu.Unlock()
    return nil
  }
  if as.timer != nil {
    as.timer.Stop()
    as.timer = nil
  }
  snap := as.store.Snapshot()
  v := as.version
  as.sentVersion = v
  as.mu.Unlock()

  rec, err := as.gateway.Save(ctx, as.userID, as.date, snap)
  as.resolve(v, snap, rec, err)
  return err
}

// Stop clears pending timers. An in-flight save runs to completion but its
// result is no longer acted on.
func (as *AutoSaver) Stop() {
  as.mu.Lock()
  defer as.mu.Unlock()
  as.stopped = true
  if as.timer != nil {
    as.timer.Stop()
    as.timer = nil
  }
}

func (as *AutoSaver) scheduleLocked(delay time.Duration) {
  if as.stopped {
    return
  }
  if as.timer != nil {
    as.timer.Stop()
  }
  as.timer = time.AfterFunc(delay, as.timerFired)
}

func (as *AutoSaver) timerFired() {
  as.mu.Lock()
  if as.stopped {
    as.mu.Unlock()
    return
  }
  as.timer = nil
  snap := as.store.Snapshot()
  v := as.version
  as.sentVersion = v
  as.mu.Unlock()

  go func() {
    rec, err := as.gateway.Save(context.Background(), as.userID, as.date, snap)
    as.resolve(v, snap, rec, err)
  }()
}

func (as *AutoSaver) resolve(v uint64, snap Snapshot, rec *Record, err error) {
  var onSaved func(rec *Record)
  var onError func(err error)
  var onSignOut func()

  as.mu.Lock()
  switch {
  case as.stopped:
    // Session is gone; nothing left to reconcile.
  case v < as.sentVersion:
    // A newer snapshot is already on the wire; this acknowledgment is
    // superseded, success or failure.
    as.log.Debug("Dropping superseded save acknowledgment", "version", v, "sent_version", as.sentVersion)
  case err == nil:
    as.confirmed = snap
    as.confirmedVersion = v
    onSaved = as.cfg.OnSaved
  case KindOf(err) == KindUnauthenticated:
    // A stale session cannot safely retry; hard stop instead of revert.
    onSignOut = as.cfg.OnSignOut
  case v < as.version:
    // Mutations arrived after this snapshot was taken; reverting now would
    // stomp them, and the pending save will report its own outcome.
    as.log.Debug("Dropping stale save failure", "version", v, "current_version", as.version)
  default:
    as.store.Restore(as.confirmed)
    as.version++
    as.sentVersion = as.version
    as.confirmedVersion = as.version
    onError = as.cfg.OnError
  }
  as.mu.Unlock()

  if onSaved != nil {
    onSaved(rec)
  }
  if onError != nil {
    onError(err)
  }
  if onSignOut != nil {
    onSignOut()
  }
}
