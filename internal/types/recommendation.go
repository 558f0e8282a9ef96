package types

import (
  "time"
  "github.com/google/uuid"
)

type Recommendation struct {
  ID            uuid.UUID     `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  UserID        uuid.UUID     `gorm:"index;not null" json:"user_id"`
  User          *User         `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
  Title         string        `gorm:"not null;column:title" json:"title"`
  Description   string        `gorm:"not null;column:description" json:"description"`
  Category      string        `gorm:"not null;column:category" json:"category"`
  Priority      string        `gorm:"not null;column:priority" json:"priority"`
  Confidence    float64       `gorm:"not null;default:0;column:confidence" json:"confidence"`
  IsRead        bool          `gorm:"not null;default:false;column:is_read" json:"is_read"`
  CreatedAt     time.Time     `gorm:"not null;default:now()" json:"created_at"`
}

func (Recommendation) TableName() string {
  return "recommendation"
}
