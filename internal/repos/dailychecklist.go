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

type DailyChecklistRepo interface {
  GetByUserAndDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, date string) (*types.DailyChecklist, error)
  GetRange(ctx context.Context, tx *gorm.DB, userID uuid.UUID, startDate, endDate string) ([]*types.DailyChecklist, error)
  GetRecent(ctx context.Context, tx *gorm.DB, userID uuid.UUID, upToDate string, limit int) ([]*types.DailyChecklist, error)
  Upsert(ctx context.Context, tx *gorm.DB, checklist *types.DailyChecklist) (*types.DailyChecklist, error)
  DeleteByUserAndDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, date string) error
}

type dailyChecklistRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewDailyChecklistRepo(db *gorm.DB, baseLog *logger.Logger) DailyChecklistRepo {
  repoLog := baseLog.With("repo", "DailyChecklistRepo")
  return &dailyChecklistRepo{db: db, log: repoLog}
}

func (dcr *dailyChecklistRepo) GetByUserAndDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, date string) (*types.DailyChecklist, error) {
  transaction := tx
  if transaction == nil {
    transaction = dcr.db
  }

  var result types.DailyChecklist
  if err := transaction.WithContext(ctx).
    Where("user_id = ? AND checklist_date = ?", userID, date).
    First(&result).Error; err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, nil
    }
    return nil, err
  }
  return &result, nil
}

func (dcr *dailyChecklistRepo) GetRange(ctx context.Context, tx *gorm.DB, userID uuid.UUID, startDate, endDate string) ([]*types.DailyChecklist, error) {
  transaction := tx
  if transaction == nil {
    transaction = dcr.db
  }

  var results []*types.DailyChecklist
  if err := transaction.WithContext(ctx).
    Where("user_id = ? AND checklist_date >= ? AND checklist_date <= ?", userID, startDate, endDate).
    Order("checklist_date ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (dcr *dailyChecklistRepo) GetRecent(ctx context.Context, tx *gorm.DB, userID uuid.UUID, upToDate string, limit int) ([]*types.DailyChecklist, error) {
  transaction := tx
  if transaction == nil {
    transaction = dcr.db
  }

  if limit <= 0 {
    limit = 30
  }

  var results []*types.DailyChecklist
  if err := transaction.WithContext(ctx).
    Where("user_id = ? AND checklist_date <= ?", userID, upToDate).
    Order("checklist_date DESC").
    Limit(limit).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

// Upsert writes the one record allowed per (user, date); the uniqueness
// constraint lives on idx_user_checklist_date.
func (dcr *dailyChecklistRepo) Upsert(ctx context.Context, tx *gorm.DB, checklist *types.DailyChecklist) (*types.DailyChecklist, error) {
  transaction := tx
  if transaction == nil {
    transaction = dcr.db
  }

  if err := transaction.WithContext(ctx).
    Clauses(clause.OnConflict{
      Columns: []clause.Column{{Name: "user_id"}, {Name: "checklist_date"}},
      DoUpdates: clause.AssignmentColumns([]string{
        "checklist_data", "reflection_data", "total_items",
        "completed_items", "completion_percentage", "updated_at",
      }),
    }).
    Create(checklist).Error; err != nil {
    return nil, err
  }
  return dcr.GetByUserAndDate(ctx, transaction, checklist.UserID, string(checklist.ChecklistDate))
}

func (dcr *dailyChecklistRepo) DeleteByUserAndDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, date string) error {
  transaction := tx
  if transaction == nil {
    transaction = dcr.db
  }

  if err := transaction.WithContext(ctx).
    Unscoped().
    Where("user_id = ? AND checklist_date = ?", userID, date).
    Delete(&types.DailyChecklist{}).Error; err != nil {
    return err
  }
  return nil
}
