package types

import (
  "time"
  "github.com/google/uuid"
)

type CommunityPost struct {
  ID              uuid.UUID     `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  UserID          uuid.UUID     `gorm:"index;not null" json:"user_id"`
  User            *User         `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
  Title           string        `gorm:"not null;column:title" json:"title"`
  Content         string        `gorm:"not null;column:content" json:"content"`
  Category        string        `gorm:"index;not null;column:category" json:"category"`
  LikesCount      int           `gorm:"not null;default:0;column:likes_count" json:"likes_count"`
  CommentsCount   int           `gorm:"not null;default:0;column:comments_count" json:"comments_count"`
  CreatedAt       time.Time     `gorm:"not null;default:now()" json:"created_at"`
  UpdatedAt       time.Time     `gorm:"not null;default:now()" json:"updated_at"`
}

func (CommunityPost) TableName() string {
  return "community_post"
}
