package repos

import (
  "context"
  "errors"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/centenniallife/wellness-backend/internal/logger"
  "github.com/centenniallife/wellness-backend/internal/types"
)

type CommunityLikeRepo interface {
  Create(ctx context.Context, tx *gorm.DB, like *types.CommunityLike) (*types.CommunityLike, error)
  GetByPostAndUser(ctx context.Context, tx *gorm.DB, postID, userID uuid.UUID) (*types.CommunityLike, error)
  Delete(ctx context.Context, tx *gorm.DB, likeID uuid.UUID) error
}

type communityLikeRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewCommunityLikeRepo(db *gorm.DB, baseLog *logger.Logger) CommunityLikeRepo {
  repoLog := baseLog.With("repo", "CommunityLikeRepo")
  return &communityLikeRepo{db: db, log: repoLog}
}

func (clr *communityLikeRepo) Create(ctx context.Context, tx *gorm.DB, like *types.CommunityLike) (*types.CommunityLike, error) {
  transaction := tx
  if transaction == nil {
    transaction = clr.db
  }

  if err := transaction.WithContext(ctx).Create(like).Error; err != nil {
    return nil, err
  }
  return like, nil
}

func (clr *communityLikeRepo) GetByPostAndUser(ctx context.Context, tx *gorm.DB, postID, userID uuid.UUID) (*types.CommunityLike, error) {
  transaction := tx
  if transaction == nil {
    transaction = clr.db
  }

  var result types.CommunityLike
  if err := transaction.WithContext(ctx).
    Where("post_id = ? AND user_id = ?", postID, userID).
    First(&result).Error; err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, nil
    }
    return nil, err
  }
  return &result, nil
}

func (clr *communityLikeRepo) Delete(ctx context.Context, tx *gorm.DB, likeID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = clr.db
  }

  if err := transaction.WithContext(ctx).
    Unscoped().
    Where("id = ?", likeID).
    Delete(&types.CommunityLike{}).Error; err != nil {
    return err
  }
  return nil
}
