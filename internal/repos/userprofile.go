package repos

import (
  "context"
  "errors"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "gorm.io/gorm/clause"
  "github.com/centenniallife/wellness-backend/internal/logger"
  "github.com/centenniallife/wellness-backend/internal/types"
)

type UserProfileRepo interface {
  GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.UserProfile, error)
  Upsert(ctx context.Context, tx *gorm.DB, profile *types.UserProfile) (*types.UserProfile, error)
}

type userProfileRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewUserProfileRepo(db *gorm.DB, baseLog *logger.Logger) UserProfileRepo {
  repoLog := baseLog.With("repo", "UserProfileRepo")
  return &userProfileRepo{db: db, log: repoLog}
}

func (upr *userProfileRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.UserProfile, error) {
  transaction := tx
  if transaction == nil {
    transaction = upr.db
  }

  var result types.UserProfile
  if err := transaction.WithContext(ctx).
    Where("user_id = ?", userID).
    First(&result).Error; err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, nil
    }
    return nil, err
  }
  return &result, nil
}

func (upr *userProfileRepo) Upsert(ctx context.Context, tx *gorm.DB, profile *types.UserProfile) (*types.UserProfile, error) {
  transaction := tx
  if transaction == nil {
    transaction = upr.db
  }

  if err := transaction.WithContext(ctx).
    Clauses(clause.OnConflict{
      Columns: []clause.Column{{Name: "user_id"}},
      DoUpdates: clause.AssignmentColumns([]string{
        "age", "gender", "height", "weight", "activity_level",
        "health_goals", "medical_conditions", "updated_at",
      }),
    }).
    Create(profile).Error; err != nil {
    return nil, err
  }
  return upr.GetByUserID(ctx, transaction, profile.UserID)
}
