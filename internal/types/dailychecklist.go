package types

import (
  "time"
  "github.com/google/uuid"
  "gorm.io/datatypes"
)

// DailyChecklist is the one-row-per-(user, date) persisted form of a day's
// wellness checklist. ChecklistData maps item id -> completed; the totals
// columns are derived from it on every write.
type DailyChecklist struct {
  ID                     uuid.UUID             `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  UserID                 uuid.UUID             `gorm:"uniqueIndex:idx_user_checklist_date;not null" json:"user_id"`
  User                   *User                 `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
  ChecklistDate          Date                  `gorm:"uniqueIndex:idx_user_checklist_date;type:date;not null;column:checklist_date" json:"checklist_date"`
  ChecklistData          datatypes.JSONMap     `gorm:"column:checklist_data" json:"checklist_data"`
  ReflectionData         datatypes.JSON        `gorm:"column:reflection_data" json:"reflection_data,omitempty"`
  TotalItems             int                   `gorm:"not null;default:0;column:total_items" json:"total_items"`
  CompletedItems         int                   `gorm:"not null;default:0;column:completed_items" json:"completed_items"`
  CompletionPercentage   int                   `gorm:"not null;default:0;column:completion_percentage" json:"completion_percentage"`
  CreatedAt              time.Time             `gorm:"not null;default:now()" json:"created_at"`
  UpdatedAt              time.Time             `gorm:"not null;default:now()" json:"updated_at"`
}

func (DailyChecklist) TableName() string {
  return "daily_wellness_checklist"
}
