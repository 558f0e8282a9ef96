package types

import (
  "time"
  "github.com/google/uuid"
)

type CommunityLike struct {
  ID          uuid.UUID         `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  PostID      uuid.UUID         `gorm:"uniqueIndex:idx_post_user_like;not null" json:"post_id"`
  Post        *CommunityPost    `gorm:"constraint:OnDelete:CASCADE;foreignKey:PostID;references:ID" json:"-"`
  UserID      uuid.UUID         `gorm:"uniqueIndex:idx_post_user_like;not null" json:"user_id"`
  User        *User             `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
  CreatedAt   time.Time         `gorm:"not null;default:now()" json:"created_at"`
}

func (CommunityLike) TableName() string {
  return "community_like"
}
