package repos

import (
  "context"
  "time"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/centenniallife/wellness-backend/internal/logger"
  "github.com/centenniallife/wellness-backend/internal/types"
)

type HealthRecordRepo interface {
  Create(ctx context.Context, tx *gorm.DB, records []*types.HealthRecord) ([]*types.HealthRecord, error)
  ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.HealthRecord, error)
  GetLatestByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.HealthRecord, error)
  ListByUserSince(ctx context.Context, tx *gorm.DB, userID uuid.UUID, since time.Time) ([]*types.HealthRecord, error)
  DeleteByID(ctx context.Context, tx *gorm.DB, userID, recordID uuid.UUID) error
}

type healthRecordRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewHealthRecordRepo(db *gorm.DB, baseLog *logger.Logger) HealthRecordRepo {
  repoLog := baseLog.With("repo", "HealthRecordRepo")
  return &healthRecordRepo{db: db, log: repoLog}
}

func (hrr *healthRecordRepo) Create(ctx context.Context, tx *gorm.DB, records []*types.HealthRecord) ([]*types.HealthRecord, error) {
  transaction := tx
  if transaction == nil {
    transaction = hrr.db
  }

  if len(records) == 0 {
    return []*types.HealthRecord{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&records).Error; err != nil {
    return nil, err
  }
  return records, nil
}

func (hrr *healthRecordRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.HealthRecord, error) {
  transaction := tx
  if transaction == nil {
    transaction = hrr.db
  }

  if limit <= 0 {
    limit = 30
  }

  var results []*types.HealthRecord
  if err := transaction.WithContext(ctx).
    Where("user_id = ?", userID).
    Order("recorded_at DESC").
    Limit(limit).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (hrr *healthRecordRepo) GetLatestByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.HealthRecord, error) {
  records, err := hrr.ListByUser(ctx, tx, userID, 1)
  if err != nil {
    return nil, err
  }
  if len(records) == 0 {
    return nil, nil
  }
  return records[0], nil
}

func (hrr *healthRecordRepo) ListByUserSince(ctx context.Context, tx *gorm.DB, userID uuid.UUID, since time.Time) ([]*types.HealthRecord, error) {
  transaction := tx
  if transaction == nil {
    transaction = hrr.db
  }

  var results []*types.HealthRecord
  if err := transaction.WithContext(ctx).
    Where("user_id = ? AND recorded_at >= ?", userID, since).
    Order("recorded_at ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (hrr *healthRecordRepo) DeleteByID(ctx context.Context, tx *gorm.DB, userID, recordID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = hrr.db
  }

  if err := transaction.WithContext(ctx).
    Unscoped().
    Where("id = ? AND user_id = ?", recordID, userID).
    Delete(&types.HealthRecord{}).Error; err != nil {
    return err
  }
  return nil
}
