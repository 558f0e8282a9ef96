package checklist

import (
  "testing"
)

func TestStoreToggleRoundTrip(t *testing.T) {
  s := NewStore()

  on, err := s.Toggle("physical-health", "morning-exercise")
  if err != nil {
    t.Fatalf("first toggle: %v", err)
  }
  if !on {
    t.Fatalf("first toggle should complete the item")
  }
  off, err := s.Toggle("physical-health", "morning-exercise")
  if err != nil {
    t.Fatalf("second toggle: %v", err)
  }
  if off {
    t.Fatalf("second toggle should uncomplete the item")
  }
  if s.Snapshot().Items["morning-exercise"] {
    t.Fatalf("item should be back to not completed after double toggle")
  }
}

func TestStoreToggleUnknown(t *testing.T) {
  s := NewStore()
  tests := []struct {
    name        string
    categoryID  string
    itemID      string
  }{
    {"unknown category", "no-such-category", "morning-exercise"},
    {"unknown item", "physical-health", "no-such-item"},
    {"item in wrong category", "mental-health", "morning-exercise"},
  }
  for _, tt := range tests {
    t.Run(tt.name, func(t *testing.T) {
      if _, err := s.Toggle(tt.categoryID, tt.itemID); err == nil {
        t.Fatalf("expected error for (%q, %q)", tt.categoryID, tt.itemID)
      }
    })
  }
}

func TestStoreLoadRemoteNil(t *testing.T) {
  s := NewStore()
  if _, err := s.Toggle("sleep", "regular-bedtime"); err != nil {
    t.Fatalf("toggle: %v", err)
  }
  if err := s.SetReflectionField(FieldAchievements, "운동 완료"); err != nil {
    t.Fatalf("set reflection: %v", err)
  }

  s.LoadRemote(nil)

  snap := s.Snapshot()
  if len(snap.Items) != TotalItems() {
    t.Fatalf("snapshot has %d items, want %d", len(snap.Items), TotalItems())
  }
  for id, completed := range snap.Items {
    if completed {
      t.Fatalf("item %q should be reset to not completed", id)
    }
  }
  if snap.Reflection != (Reflection{}) {
    t.Fatalf("reflection should be reset, got %+v", snap.Reflection)
  }
}

func TestStoreLoadRemoteDropsUnknownIDs(t *testing.T) {
  s := NewStore()
  s.LoadRemote(&Record{
    Items: map[string]bool{
      "meditation":    true,
      "retired-item":  true,
    },
    Reflection: Reflection{Achievements: "명상 완료"},
  })

  snap := s.Snapshot()
  if !snap.Items["meditation"] {
    t.Fatalf("known item should be loaded as completed")
  }
  if _, ok := snap.Items["retired-item"]; ok {
    t.Fatalf("unknown item id should not survive the load")
  }
  if snap.Reflection.Achievements != "명상 완료" {
    t.Fatalf("reflection not loaded: %+v", snap.Reflection)
  }
}

func TestSnapshotIsDetached(t *testing.T) {
  s := NewStore()
  snap := s.Snapshot()
  if _, err := s.Toggle("nutrition", "vegetable-intake"); err != nil {
    t.Fatalf("toggle: %v", err)
  }
  if snap.Items["vegetable-intake"] {
    t.Fatalf("mutating the store must not leak into an earlier snapshot")
  }
}

func TestRestoreReplacesWholeState(t *testing.T) {
  s := NewStore()
  if _, err := s.Toggle("exercise", "strength-training"); err != nil {
    t.Fatalf("toggle: %v", err)
  }
  if err := s.SetReflectionField(FieldTomorrowGoals, "내일은 수영"); err != nil {
    t.Fatalf("set reflection: %v", err)
  }
  saved := s.Snapshot()

  if _, err := s.Toggle("exercise", "flexibility"); err != nil {
    t.Fatalf("toggle: %v", err)
  }
  if err := s.SetReflectionField(FieldTomorrowGoals, "바뀐 목표"); err != nil {
    t.Fatalf("set reflection: %v", err)
  }

  s.Restore(saved)

  snap := s.Snapshot()
  if !snap.Items["strength-training"] || snap.Items["flexibility"] {
    t.Fatalf("restore did not bring back the saved item state: %+v", snap.Items)
  }
  if snap.Reflection.TomorrowGoals != "내일은 수영" {
    t.Fatalf("restore did not bring back the saved reflection: %+v", snap.Reflection)
  }
}

func TestSetReflectionFieldUnknown(t *testing.T) {
  s := NewStore()
  if err := s.SetReflectionField(ReflectionField("mood"), "x"); err == nil {
    t.Fatalf("expected error for unknown reflection field")
  }
}
