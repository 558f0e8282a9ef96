package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/centenniallife/wellness-backend/internal/logger"
  "github.com/centenniallife/wellness-backend/internal/types"
)

type RecommendationRepo interface {
  Create(ctx context.Context, tx *gorm.DB, recommendations []*types.Recommendation) ([]*types.Recommendation, error)
  ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.Recommendation, error)
  MarkRead(ctx context.Context, tx *gorm.DB, userID, recommendationID uuid.UUID) error
  DeleteByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
}

type recommendationRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewRecommendationRepo(db *gorm.DB, baseLog *logger.Logger) RecommendationRepo {
  repoLog := baseLog.With("repo", "RecommendationRepo")
  return &recommendationRepo{db: db, log: repoLog}
}

func (rr *recommendationRepo) Create(ctx context.Context, tx *gorm.DB, recommendations []*types.Recommendation) ([]*types.Recommendation, error) {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }

  if len(recommendations) == 0 {
    return []*types.Recommendation{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&recommendations).Error; err != nil {
    return nil, err
  }
  return recommendations, nil
}

func (rr *recommendationRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.Recommendation, error) {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }

  if limit <= 0 {
    limit = 20
  }

  var results []*types.Recommendation
  if err := transaction.WithContext(ctx).
    Where("user_id = ?", userID).
    Order("created_at DESC").
    Limit(limit).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (rr *recommendationRepo) MarkRead(ctx context.Context, tx *gorm.DB, userID, recommendationID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }

  result := transaction.WithContext(ctx).
    Model(&types.Recommendation{}).
    Where("id = ? AND user_id = ?", recommendationID, userID).
    Update("is_read", true)
  if result.Error != nil {
    return result.Error
  }
  if result.RowsAffected == 0 {
    return gorm.ErrRecordNotFound
  }
  return nil
}

func (rr *recommendationRepo) DeleteByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }

  if err := transaction.WithContext(ctx).
    Unscoped().
    Where("user_id = ?", userID).
    Delete(&types.Recommendation{}).Error; err != nil {
    return err
  }
  return nil
}
