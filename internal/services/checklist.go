package services

import (
  "context"
  "encoding/json"
  "errors"
  "fmt"
  "math"
  "time"
  "golang.org/x/sync/errgroup"
  "github.com/google/uuid"
  "gorm.io/datatypes"
  "gorm.io/gorm"
  "github.com/centenniallife/wellness-backend/internal/checklist"
  "github.com/centenniallife/wellness-backend/internal/logger"
  "github.com/centenniallife/wellness-backend/internal/repos"
  "github.com/centenniallife/wellness-backend/internal/requestdata"
  "github.com/centenniallife/wellness-backend/internal/types"
)

const checklistDateLayout = "2006-01-02"

// ErrInvalidDate marks malformed date input so transport layers can map it to
// a client error instead of a server one.
var ErrInvalidDate = errors.New("invalid date")

// streakThreshold is the completion percentage a day needs to count toward
// the consecutive-day streak.
const streakThreshold = 50

type DayCompletion struct {
  Date                   string    `json:"date"`
  CompletedItems         int       `json:"completed_items"`
  TotalItems             int       `json:"total_items"`
  CompletionPercentage   int       `json:"completion_percentage"`
}

type ChecklistService interface {
  GetChecklist(ctx context.Context, date string) (*types.DailyChecklist, error)
  UpsertChecklist(ctx context.Context, date string, items map[string]bool, reflection *checklist.Reflection) (*types.DailyChecklist, error)
  DeleteChecklist(ctx context.Context, date string) error
  RangeStats(ctx context.Context, days int) (*RangeStatsResult, error)
}

type checklistService struct {
  db              *gorm.DB
  log             *logger.Logger
  checklistRepo   repos.DailyChecklistRepo
}

func NewChecklistService(db *gorm.DB, log *logger.Logger, checklistRepo repos.DailyChecklistRepo) ChecklistService {
  serviceLog := log.With("service", "ChecklistService")
  return &checklistService{db: db, log: serviceLog, checklistRepo: checklistRepo}
}

// NormalizeDate validates a yyyy-mm-dd date string, defaulting empty input to
// today in the server's timezone.
func NormalizeDate(date string) (string, error) {
  if date == "" {
    return time.Now().Format(checklistDateLayout), nil
  }
  parsed, err := time.Parse(checklistDateLayout, date)
  if err != nil {
    return "", fmt.Errorf("Invalid date %q, expected yyyy-mm-dd: %w", date, ErrInvalidDate)
  }
  return parsed.Format(checklistDateLayout), nil
}

func (cs *checklistService) GetChecklist(ctx context.Context, date string) (*types.DailyChecklist, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    cs.log.Warn("Request data not set in context")
    return nil, fmt.Errorf("Request data not set in context")
  }
  normalized, err := NormalizeDate(date)
  if err != nil {
    return nil, err
  }
  record, err := cs.checklistRepo.GetByUserAndDate(ctx, nil, rd.UserID, normalized)
  if err != nil {
    return nil, fmt.Errorf("Failed to load daily checklist: %w", err)
  }
  return record, nil
}

// UpsertChecklist persists one day's checklist state. The totals columns are
// always recomputed here from the item map; client-sent totals are ignored.
func (cs *checklistService) UpsertChecklist(ctx context.Context, date string, items map[string]bool, reflection *checklist.Reflection) (*types.DailyChecklist, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    cs.log.Warn("Request data not set in context")
    return nil, fmt.Errorf("Request data not set in context")
  }
  normalized, err := NormalizeDate(date)
  if err != nil {
    return nil, err
  }

  stats := checklist.ComputeStats(items)

  checklistData := make(datatypes.JSONMap, len(items))
  for id, completed := range items {
    if _, ok := checklist.ItemByID(id); !ok {
      continue
    }
    checklistData[id] = completed
  }

  record := &types.DailyChecklist{
    ID:                   uuid.New(),
    UserID:               rd.UserID,
    ChecklistDate:        types.Date(normalized),
    ChecklistData:        checklistData,
    TotalItems:           stats.TotalItems,
    CompletedItems:       stats.CompletedItems,
    CompletionPercentage: stats.CompletionPercentage,
  }
  if reflection != nil {
    raw, mErr := json.Marshal(reflection)
    if mErr != nil {
      return nil, fmt.Errorf("Failed to encode reflection: %w", mErr)
    }
    record.ReflectionData = datatypes.JSON(raw)
  }

  saved, err := cs.checklistRepo.Upsert(ctx, nil, record)
  if err != nil {
    return nil, fmt.Errorf("Failed to upsert daily checklist: %w", err)
  }
  return saved, nil
}

func (cs *checklistService) DeleteChecklist(ctx context.Context, date string) error {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    cs.log.Warn("Request data not set in context")
    return fmt.Errorf("Request data not set in context")
  }
  normalized, err := NormalizeDate(date)
  if err != nil {
    return err
  }
  if err := cs.checklistRepo.DeleteByUserAndDate(ctx, nil, rd.UserID, normalized); err != nil {
    return fmt.Errorf("Failed to delete daily checklist: %w", err)
  }
  return nil
}

type RangeStatsResult struct {
  Days                  int                 `json:"days"`
  Streak                int                 `json:"streak"`
  AverageCompletion     int                 `json:"average_completion"`
  BestDay               *DayCompletion      `json:"best_day,omitempty"`
  Series                []DayCompletion     `json:"series"`
}

// RangeStats summarizes the trailing window and the current streak. The two
// queries are independent, so they run concurrently.
func (cs *checklistService) RangeStats(ctx context.Context, days int) (*RangeStatsResult, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    cs.log.Warn("Request data not set in context")
    return nil, fmt.Errorf("Request data not set in context")
  }
  if days <= 0 {
    days = 7
  }

  today := time.Now().Format(checklistDateLayout)
  startDate := time.Now().AddDate(0, 0, -(days - 1)).Format(checklistDateLayout)

  var rangeRecords []*types.DailyChecklist
  var recentRecords []*types.DailyChecklist

  g, gCtx := errgroup.WithContext(ctx)
  g.Go(func() error {
    records, err := cs.checklistRepo.GetRange(gCtx, nil, rd.UserID, startDate, today)
    if err != nil {
      return fmt.Errorf("Failed to load checklist range: %w", err)
    }
    rangeRecords = records
    return nil
  })
  g.Go(func() error {
    records, err := cs.checklistRepo.GetRecent(gCtx, nil, rd.UserID, today, 365)
    if err != nil {
      return fmt.Errorf("Failed to load recent checklists: %w", err)
    }
    recentRecords = records
    return nil
  })
  if err := g.Wait(); err != nil {
    return nil, err
  }

  result := &RangeStatsResult{
    Days:   days,
    Series: []DayCompletion{},
  }

  completionSum := 0
  for _, record := range rangeRecords {
    if record == nil {
      continue
    }
    point := DayCompletion{
      Date:                 string(record.ChecklistDate),
      CompletedItems:       record.CompletedItems,
      TotalItems:           record.TotalItems,
      CompletionPercentage: record.CompletionPercentage,
    }
    result.Series = append(result.Series, point)
    completionSum += record.CompletionPercentage
    if result.BestDay == nil || point.CompletionPercentage > result.BestDay.CompletionPercentage {
      best := point
      result.BestDay = &best
    }
  }
  if len(result.Series) > 0 {
    result.AverageCompletion = int(math.Round(float64(completionSum) / float64(len(result.Series))))
  }
  result.Streak = computeStreak(time.Now(), recentRecords)
  return result, nil
}

// computeStreak counts consecutive days ending at today whose completion met
// the streak threshold. A today row that is absent or still below threshold
// does not break a streak carried from yesterday.
func computeStreak(now time.Time, records []*types.DailyChecklist) int {
  byDate := make(map[string]int, len(records))
  for _, record := range records {
    if record != nil {
      byDate[string(record.ChecklistDate)] = record.CompletionPercentage
    }
  }

  cursor := now
  if pct, ok := byDate[cursor.Format(checklistDateLayout)]; !ok || pct < streakThreshold {
    cursor = cursor.AddDate(0, 0, -1)
  }
  streak := 0
  for {
    pct, ok := byDate[cursor.Format(checklistDateLayout)]
    if !ok || pct < streakThreshold {
      break
    }
    streak++
    cursor = cursor.AddDate(0, 0, -1)
  }
  return streak
}
