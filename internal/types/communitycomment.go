package types

import (
  "time"
  "github.com/google/uuid"
)

type CommunityComment struct {
  ID          uuid.UUID         `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  PostID      uuid.UUID         `gorm:"index;not null" json:"post_id"`
  Post        *CommunityPost    `gorm:"constraint:OnDelete:CASCADE;foreignKey:PostID;references:ID" json:"-"`
  UserID      uuid.UUID         `gorm:"index;not null" json:"user_id"`
  User        *User             `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
  Content     string            `gorm:"not null;column:content" json:"content"`
  CreatedAt   time.Time         `gorm:"not null;default:now()" json:"created_at"`
  UpdatedAt   time.Time         `gorm:"not null;default:now()" json:"updated_at"`
}

func (CommunityComment) TableName() string {
  return "community_comment"
}
