package services

import (
  "context"
  "encoding/json"
  "errors"
  "testing"
  "time"
  "github.com/google/uuid"
  "gorm.io/datatypes"
  "github.com/centenniallife/wellness-backend/internal/checklist"
  "github.com/centenniallife/wellness-backend/internal/requestdata"
  "github.com/centenniallife/wellness-backend/internal/types"
)

// fakeChecklistService persists records in memory through the same model
// shapes the real service produces, so the gateway's mapping is exercised in
// both directions.
type fakeChecklistService struct {
  records      map[string]*types.DailyChecklist
  lastUserID   uuid.UUID
  getErr       error
  upsertErr    error
}

func (f *fakeChecklistService) GetChecklist(ctx context.Context, date string) (*types.DailyChecklist, error) {
  if f.getErr != nil {
    return nil, f.getErr
  }
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    return nil, errors.New("request data not set in context")
  }
  f.lastUserID = rd.UserID
  normalized, err := NormalizeDate(date)
  if err != nil {
    return nil, err
  }
  return f.records[normalized], nil
}

func (f *fakeChecklistService) UpsertChecklist(ctx context.Context, date string, items map[string]bool, reflection *checklist.Reflection) (*types.DailyChecklist, error) {
  if f.upsertErr != nil {
    return nil, f.upsertErr
  }
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    return nil, errors.New("request data not set in context")
  }
  f.lastUserID = rd.UserID
  normalized, err := NormalizeDate(date)
  if err != nil {
    return nil, err
  }

  stats := checklist.ComputeStats(items)
  data := make(datatypes.JSONMap, len(items))
  for id, completed := range items {
    data[id] = completed
  }
  record := &types.DailyChecklist{
    UserID:               rd.UserID,
    ChecklistDate:        types.Date(normalized),
    ChecklistData:        data,
    TotalItems:           stats.TotalItems,
    CompletedItems:       stats.CompletedItems,
    CompletionPercentage: stats.CompletionPercentage,
  }
  if reflection != nil {
    raw, mErr := json.Marshal(reflection)
    if mErr != nil {
      return nil, mErr
    }
    record.ReflectionData = datatypes.JSON(raw)
  }
  if f.records == nil {
    f.records = map[string]*types.DailyChecklist{}
  }
  f.records[normalized] = record
  return record, nil
}

func (f *fakeChecklistService) DeleteChecklist(ctx context.Context, date string) error {
  return nil
}

func (f *fakeChecklistService) RangeStats(ctx context.Context, days int) (*RangeStatsResult, error) {
  return nil, nil
}

func TestChecklistGatewayFetchAbsentDay(t *testing.T) {
  gw := NewChecklistGateway(testLogger(), &fakeChecklistService{})

  rec, err := gw.Fetch(context.Background(), uuid.New(), "2026-08-30")
  if err != nil {
    t.Fatalf("fetch: %v", err)
  }
  if rec != nil {
    t.Fatalf("absent day should fetch as nil, got %+v", rec)
  }
}

func TestChecklistGatewaySaveMapsRecordBothWays(t *testing.T) {
  fake := &fakeChecklistService{}
  gw := NewChecklistGateway(testLogger(), fake)
  snap := checklist.Snapshot{
    Items:      map[string]bool{"morning-exercise": true, "meditation": true, "reading": false},
    Reflection: checklist.Reflection{Achievements: "아침 운동 완료"},
  }

  saved, err := gw.Save(context.Background(), uuid.New(), "2026-08-30", snap)
  if err != nil {
    t.Fatalf("save: %v", err)
  }
  if !saved.Items["morning-exercise"] || !saved.Items["meditation"] || saved.Items["reading"] {
    t.Fatalf("saved record items mismatch: %+v", saved.Items)
  }
  if saved.CompletedItems != 2 {
    t.Fatalf("CompletedItems = %d, want 2", saved.CompletedItems)
  }
  if saved.Reflection.Achievements != "아침 운동 완료" {
    t.Fatalf("reflection lost in mapping: %+v", saved.Reflection)
  }

  fetched, err := gw.Fetch(context.Background(), uuid.New(), "2026-08-30")
  if err != nil {
    t.Fatalf("fetch: %v", err)
  }
  if fetched == nil || fetched.CompletedItems != 2 || !fetched.Items["meditation"] {
    t.Fatalf("fetched record mismatch: %+v", fetched)
  }
  if fetched.Reflection.Achievements != "아침 운동 완료" {
    t.Fatalf("reflection lost on read-back: %+v", fetched.Reflection)
  }
}

func TestChecklistGatewayClassifiesErrors(t *testing.T) {
  fake := &fakeChecklistService{}
  gw := NewChecklistGateway(testLogger(), fake)

  _, err := gw.Fetch(context.Background(), uuid.New(), "not-a-date")
  if checklist.KindOf(err) != checklist.KindValidation {
    t.Fatalf("malformed date classified as %v, want validation", checklist.KindOf(err))
  }

  fake.getErr = errors.New("connection refused")
  _, err = gw.Fetch(context.Background(), uuid.New(), "2026-08-30")
  if checklist.KindOf(err) != checklist.KindTransient {
    t.Fatalf("database failure classified as %v, want transient", checklist.KindOf(err))
  }
}

func TestAutoSaverThroughServiceGateway(t *testing.T) {
  fake := &fakeChecklistService{}
  gw := NewChecklistGateway(testLogger(), fake)
  store := checklist.NewStore()
  saved := make(chan *checklist.Record, 1)
  userID := uuid.New()
  saver := checklist.NewAutoSaver(testLogger(), store, gw, userID, "2026-08-30", checklist.AutoSaverConfig{
    ToggleDelay:     20 * time.Millisecond,
    ReflectionDelay: 30 * time.Millisecond,
    OnSaved:         func(rec *checklist.Record) { saved <- rec },
  })
  defer saver.Stop()

  if err := saver.Load(context.Background()); err != nil {
    t.Fatalf("load: %v", err)
  }
  if _, err := saver.Toggle("physical-health", "morning-exercise"); err != nil {
    t.Fatalf("toggle: %v", err)
  }

  select {
  case rec := <-saved:
    if rec.CompletedItems != 1 || !rec.Items["morning-exercise"] {
      t.Fatalf("confirmed record mismatch: %+v", rec)
    }
  case <-time.After(2 * time.Second):
    t.Fatalf("debounced save never confirmed")
  }
  if saver.Dirty() {
    t.Fatalf("saver should be clean after the confirmed save")
  }

  stored := fake.records["2026-08-30"]
  if stored == nil {
    t.Fatalf("no record persisted for the day")
  }
  if stored.UserID != userID || fake.lastUserID != userID {
    t.Fatalf("save ran under identity %s, want %s", stored.UserID, userID)
  }
  if stored.CompletedItems != 1 || len(stored.ChecklistData) != checklist.TotalItems() {
    t.Fatalf("persisted totals mismatch: %d completed of %d items", stored.CompletedItems, len(stored.ChecklistData))
  }
}
