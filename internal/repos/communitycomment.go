package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/centenniallife/wellness-backend/internal/logger"
  "github.com/centenniallife/wellness-backend/internal/types"
)

type CommunityCommentRepo interface {
  Create(ctx context.Context, tx *gorm.DB, comments []*types.CommunityComment) ([]*types.CommunityComment, error)
  ListByPost(ctx context.Context, tx *gorm.DB, postID uuid.UUID) ([]*types.CommunityComment, error)
}

type communityCommentRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewCommunityCommentRepo(db *gorm.DB, baseLog *logger.Logger) CommunityCommentRepo {
  repoLog := baseLog.With("repo", "CommunityCommentRepo")
  return &communityCommentRepo{db: db, log: repoLog}
}

func (ccr *communityCommentRepo) Create(ctx context.Context, tx *gorm.DB, comments []*types.CommunityComment) ([]*types.CommunityComment, error) {
  transaction := tx
  if transaction == nil {
    transaction = ccr.db
  }

  if len(comments) == 0 {
    return []*types.CommunityComment{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&comments).Error; err != nil {
    return nil, err
  }
  return comments, nil
}

func (ccr *communityCommentRepo) ListByPost(ctx context.Context, tx *gorm.DB, postID uuid.UUID) ([]*types.CommunityComment, error) {
  transaction := tx
  if transaction == nil {
    transaction = ccr.db
  }

  var results []*types.CommunityComment
  if err := transaction.WithContext(ctx).
    Preload("User").
    Where("post_id = ?", postID).
    Order("created_at ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
