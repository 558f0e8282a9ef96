package repos

import (
  "context"
  "errors"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/centenniallife/wellness-backend/internal/logger"
  "github.com/centenniallife/wellness-backend/internal/types"
)

type CommunityPostRepo interface {
  Create(ctx context.Context, tx *gorm.DB, posts []*types.CommunityPost) ([]*types.CommunityPost, error)
  GetByID(ctx context.Context, tx *gorm.DB, postID uuid.UUID) (*types.CommunityPost, error)
  List(ctx context.Context, tx *gorm.DB, category string, limit int) ([]*types.CommunityPost, error)
  AddLikesCount(ctx context.Context, tx *gorm.DB, postID uuid.UUID, delta int) error
  AddCommentsCount(ctx context.Context, tx *gorm.DB, postID uuid.UUID, delta int) error
}

type communityPostRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewCommunityPostRepo(db *gorm.DB, baseLog *logger.Logger) CommunityPostRepo {
  repoLog := baseLog.With("repo", "CommunityPostRepo")
  return &communityPostRepo{db: db, log: repoLog}
}

func (cpr *communityPostRepo) Create(ctx context.Context, tx *gorm.DB, posts []*types.CommunityPost) ([]*types.CommunityPost, error) {
  transaction := tx
  if transaction == nil {
    transaction = cpr.db
  }

  if len(posts) == 0 {
    return []*types.CommunityPost{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&posts).Error; err != nil {
    return nil, err
  }
  return posts, nil
}

func (cpr *communityPostRepo) GetByID(ctx context.Context, tx *gorm.DB, postID uuid.UUID) (*types.CommunityPost, error) {
  transaction := tx
  if transaction == nil {
    transaction = cpr.db
  }

  var result types.CommunityPost
  if err := transaction.WithContext(ctx).
    Preload("User").
    Where("id = ?", postID).
    First(&result).Error; err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, nil
    }
    return nil, err
  }
  return &result, nil
}

func (cpr *communityPostRepo) List(ctx context.Context, tx *gorm.DB, category string, limit int) ([]*types.CommunityPost, error) {
  transaction := tx
  if transaction == nil {
    transaction = cpr.db
  }

  if limit <= 0 {
    limit = 20
  }

  query := transaction.WithContext(ctx).
    Preload("User").
    Order("created_at DESC").
    Limit(limit)
  if category != "" && category != "all" {
    query = query.Where("category = ?", category)
  }

  var results []*types.CommunityPost
  if err := query.Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (cpr *communityPostRepo) AddLikesCount(ctx context.Context, tx *gorm.DB, postID uuid.UUID, delta int) error {
  transaction := tx
  if transaction == nil {
    transaction = cpr.db
  }

  return transaction.WithContext(ctx).
    Model(&types.CommunityPost{}).
    Where("id = ?", postID).
    Update("likes_count", gorm.Expr("likes_count + ?", delta)).Error
}

func (cpr *communityPostRepo) AddCommentsCount(ctx context.Context, tx *gorm.DB, postID uuid.UUID, delta int) error {
  transaction := tx
  if transaction == nil {
    transaction = cpr.db
  }

  return transaction.WithContext(ctx).
    Model(&types.CommunityPost{}).
    Where("id = ?", postID).
    Update("comments_count", gorm.Expr("comments_count + ?", delta)).Error
}
