package types

import (
  "time"
  "github.com/google/uuid"
)

type HealthRecord struct {
  ID                       uuid.UUID     `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  UserID                   uuid.UUID     `gorm:"index;not null" json:"user_id"`
  User                     *User         `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
  HeartRate                *int          `gorm:"column:heart_rate" json:"heart_rate,omitempty"`
  BloodPressureSystolic    *int          `gorm:"column:blood_pressure_systolic" json:"blood_pressure_systolic,omitempty"`
  BloodPressureDiastolic   *int          `gorm:"column:blood_pressure_diastolic" json:"blood_pressure_diastolic,omitempty"`
  Weight                   *float64      `gorm:"column:weight" json:"weight,omitempty"`
  Height                   *float64      `gorm:"column:height" json:"height,omitempty"`
  Steps                    *int          `gorm:"column:steps" json:"steps,omitempty"`
  SleepHours               *float64      `gorm:"column:sleep_hours" json:"sleep_hours,omitempty"`
  MoodRating               *int          `gorm:"column:mood_rating" json:"mood_rating,omitempty"`
  RecordedAt               time.Time     `gorm:"index;not null;column:recorded_at" json:"recorded_at"`
  CreatedAt                time.Time     `gorm:"not null;default:now()" json:"created_at"`
}

func (HealthRecord) TableName() string {
  return "health_record"
}
