package types

import (
  "time"
  "github.com/google/uuid"
  "gorm.io/datatypes"
)

type UserProfile struct {
  ID                  uuid.UUID         `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  UserID              uuid.UUID         `gorm:"uniqueIndex;not null" json:"user_id"`
  User                *User             `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
  Age                 *int              `gorm:"column:age" json:"age,omitempty"`
  Gender              string            `gorm:"column:gender" json:"gender,omitempty"`
  Height              *float64          `gorm:"column:height" json:"height,omitempty"`
  Weight              *float64          `gorm:"column:weight" json:"weight,omitempty"`
  ActivityLevel       string            `gorm:"column:activity_level" json:"activity_level,omitempty"`
  HealthGoals         datatypes.JSON    `gorm:"column:health_goals" json:"health_goals,omitempty"`
  MedicalConditions   datatypes.JSON    `gorm:"column:medical_conditions" json:"medical_conditions,omitempty"`
  CreatedAt           time.Time         `gorm:"not null;default:now()" json:"created_at"`
  UpdatedAt           time.Time         `gorm:"not null;default:now()" json:"updated_at"`
}

func (UserProfile) TableName() string {
  return "user_profile"
}
