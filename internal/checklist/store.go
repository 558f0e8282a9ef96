package checklist

import (
  "fmt"
)

type ReflectionField string

const (
  FieldAchievements    ReflectionField = "achievements"
  FieldImprovements    ReflectionField = "improvements"
  FieldTomorrowGoals   ReflectionField = "tomorrowGoals"
)

type Reflection struct {
  Achievements    string    `json:"achievements"`
  Improvements    string    `json:"improvements"`
  TomorrowGoals   string    `json:"tomorrowGoals"`
}

// Snapshot is a detached copy of the store state at one point in time.
type Snapshot struct {
  Items        map[string]bool
  Reflection   Reflection
}

func (s Snapshot) Clone() Snapshot {
  items := make(map[string]bool, len(s.Items))
  for k, v := range s.Items {
    items[k] = v
  }
  return Snapshot{Items: items, Reflection: s.Reflection}
}

// Record is the gateway-facing shape of one (user, date) checklist row.
type Record struct {
  Items                  map[string]bool    `json:"checklist_data"`
  Reflection             Reflection         `json:"reflection_data"`
  TotalItems             int                `json:"total_items"`
  CompletedItems         int                `json:"completed_items"`
  CompletionPercentage   int                `json:"completion_percentage"`
}

// Store holds the current, possibly-unsaved checklist state for one user
// session and one date. It is the sole owner of that state; the gateway owns
// the last-confirmed-durable copy.
type Store struct {
  items        map[string]bool
  reflection   Reflection
}

func NewStore() *Store {
  s := &Store{}
  s.reset()
  return s
}

func (s *Store) reset() {
  s.items = make(map[string]bool, TotalItems())
  for _, category := range catalog {
    for _, it := range category.Items {
      s.items[it.ID] = false
    }
  }
  s.reflection = Reflection{}
}

// Toggle flips the completion flag for one item and returns the new value.
// An unknown (category, item) pair is a programming error and returns an
// error rather than silently no-opping.
func (s *Store) Toggle(categoryID, itemID string) (bool, error) {
  if _, ok := FindItem(categoryID, itemID); !ok {
    return false, fmt.Errorf("unknown checklist item %q in category %q", itemID, categoryID)
  }
  newValue := !s.items[itemID]
  s.items[itemID] = newValue
  return newValue, nil
}

// SetReflectionField overwrites one reflection field. Text is stored as given;
// length limits belong to the persistence layer.
func (s *Store) SetReflectionField(field ReflectionField, text string) error {
  switch field {
  case FieldAchievements:
    s.reflection.Achievements = text
  case FieldImprovements:
    s.reflection.Improvements = text
  case FieldTomorrowGoals:
    s.reflection.TomorrowGoals = text
  default:
    return fmt.Errorf("unknown reflection field %q", field)
  }
  return nil
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() Snapshot {
  return Snapshot{Items: s.items, Reflection: s.reflection}.Clone()
}

// Restore replaces the whole state with a previously taken snapshot.
func (s *Store) Restore(snap Snapshot) {
  restored := snap.Clone()
  s.items = restored.Items
  s.reflection = restored.Reflection
}

// LoadRemote replaces the state with a freshly fetched record. A nil record
// (first visit for the date) initializes every item to false and the
// reflection fields to empty strings.
func (s *Store) LoadRemote(rec *Record) {
  s.reset()
  if rec == nil {
    return
  }
  for id, completed := range rec.Items {
    if _, ok := s.items[id]; ok {
      s.items[id] = completed
    }
  }
  s.reflection = rec.Reflection
}
