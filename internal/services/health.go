package services

import (
  "context"
  "fmt"
  "math"
  "time"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/centenniallife/wellness-backend/internal/logger"
  "github.com/centenniallife/wellness-backend/internal/repos"
  "github.com/centenniallife/wellness-backend/internal/requestdata"
  "github.com/centenniallife/wellness-backend/internal/types"
)

// HealthInput carries one manual measurement entry. At least one metric must
// be present.
type HealthInput struct {
  HeartRate                *int        `json:"heart_rate"`
  BloodPressureSystolic    *int        `json:"blood_pressure_systolic"`
  BloodPressureDiastolic   *int        `json:"blood_pressure_diastolic"`
  Weight                   *float64    `json:"weight"`
  Height                   *float64    `json:"height"`
  Steps                    *int        `json:"steps"`
  SleepHours               *float64    `json:"sleep_hours"`
  MoodRating               *int        `json:"mood_rating"`
  RecordedAt               *time.Time  `json:"recorded_at"`
}

type HealthDayPoint struct {
  Date           string      `json:"date"`
  Steps          int         `json:"steps"`
  SleepHours     float64     `json:"sleep_hours"`
  MoodRating     float64     `json:"mood_rating"`
}

// HealthStats summarizes the trailing window: averages over present metrics
// plus a per-day series for charting.
type HealthStats struct {
  Days              int                   `json:"days"`
  RecordCount       int                   `json:"record_count"`
  AvgHeartRate      *float64              `json:"avg_heart_rate,omitempty"`
  AvgSystolic       *float64              `json:"avg_systolic,omitempty"`
  AvgDiastolic      *float64              `json:"avg_diastolic,omitempty"`
  AvgSleepHours     *float64              `json:"avg_sleep_hours,omitempty"`
  AvgSteps          *float64              `json:"avg_steps,omitempty"`
  AvgMoodRating     *float64              `json:"avg_mood_rating,omitempty"`
  LatestWeight      *float64              `json:"latest_weight,omitempty"`
  Series            []HealthDayPoint      `json:"series"`
}

type HealthService interface {
  RecordHealthData(ctx context.Context, input *HealthInput) (*types.HealthRecord, error)
  ListHealthData(ctx context.Context, limit int) ([]*types.HealthRecord, error)
  GetLatest(ctx context.Context) (*types.HealthRecord, error)
  GetStats(ctx context.Context, days int) (*HealthStats, error)
  DeleteRecord(ctx context.Context, recordID uuid.UUID) error
}

type healthService struct {
  db           *gorm.DB
  log          *logger.Logger
  healthRepo   repos.HealthRecordRepo
}

func NewHealthService(db *gorm.DB, log *logger.Logger, healthRepo repos.HealthRecordRepo) HealthService {
  serviceLog := log.With("service", "HealthService")
  return &healthService{db: db, log: serviceLog, healthRepo: healthRepo}
}

func (hs *healthService) RecordHealthData(ctx context.Context, input *HealthInput) (*types.HealthRecord, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    hs.log.Warn("Request data not set in context")
    return nil, fmt.Errorf("Request data not set in context")
  }
  if input == nil {
    return nil, fmt.Errorf("No health data given")
  }
  if input.HeartRate == nil && input.BloodPressureSystolic == nil && input.BloodPressureDiastolic == nil &&
    input.Weight == nil && input.Height == nil && input.Steps == nil &&
    input.SleepHours == nil && input.MoodRating == nil {
    return nil, fmt.Errorf("At least one health metric is required")
  }
  if (input.BloodPressureSystolic == nil) != (input.BloodPressureDiastolic == nil) {
    return nil, fmt.Errorf("Blood pressure requires both systolic and diastolic values")
  }
  if input.MoodRating != nil && (*input.MoodRating < 1 || *input.MoodRating > 10) {
    return nil, fmt.Errorf("Mood rating must be between 1 and 10")
  }
  if input.SleepHours != nil && (*input.SleepHours < 0 || *input.SleepHours > 24) {
    return nil, fmt.Errorf("Sleep hours must be between 0 and 24")
  }

  recordedAt := time.Now()
  if input.RecordedAt != nil {
    recordedAt = *input.RecordedAt
  }

  record := &types.HealthRecord{
    ID:                     uuid.New(),
    UserID:                 rd.UserID,
    HeartRate:              input.HeartRate,
    BloodPressureSystolic:  input.BloodPressureSystolic,
    BloodPressureDiastolic: input.BloodPressureDiastolic,
    Weight:                 input.Weight,
    Height:                 input.Height,
    Steps:                  input.Steps,
    SleepHours:             input.SleepHours,
    MoodRating:             input.MoodRating,
    RecordedAt:             recordedAt,
  }
  created, err := hs.healthRepo.Create(ctx, nil, []*types.HealthRecord{record})
  if err != nil {
    return nil, fmt.Errorf("Failed to create health record: %w", err)
  }
  return created[0], nil
}

func (hs *healthService) ListHealthData(ctx context.Context, limit int) ([]*types.HealthRecord, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    hs.log.Warn("Request data not set in context")
    return nil, fmt.Errorf("Request data not set in context")
  }
  records, err := hs.healthRepo.ListByUser(ctx, nil, rd.UserID, limit)
  if err != nil {
    return nil, fmt.Errorf("Failed to list health records: %w", err)
  }
  return records, nil
}

func (hs *healthService) GetLatest(ctx context.Context) (*types.HealthRecord, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    hs.log.Warn("Request data not set in context")
    return nil, fmt.Errorf("Request data not set in context")
  }
  record, err := hs.healthRepo.GetLatestByUser(ctx, nil, rd.UserID)
  if err != nil {
    return nil, fmt.Errorf("Failed to load latest health record: %w", err)
  }
  return record, nil
}

func (hs *healthService) GetStats(ctx context.Context, days int) (*HealthStats, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    hs.log.Warn("Request data not set in context")
    return nil, fmt.Errorf("Request data not set in context")
  }
  if days <= 0 {
    days = 7
  }
  since := time.Now().AddDate(0, 0, -days)
  records, err := hs.healthRepo.ListByUserSince(ctx, nil, rd.UserID, since)
  if err != nil {
    return nil, fmt.Errorf("Failed to load health records for stats: %w", err)
  }
  return buildHealthStats(days, records), nil
}

func (hs *healthService) DeleteRecord(ctx context.Context, recordID uuid.UUID) error {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    hs.log.Warn("Request data not set in context")
    return fmt.Errorf("Request data not set in context")
  }
  if err := hs.healthRepo.DeleteByID(ctx, nil, rd.UserID, recordID); err != nil {
    return fmt.Errorf("Failed to delete health record: %w", err)
  }
  return nil
}

func buildHealthStats(days int, records []*types.HealthRecord) *HealthStats {
  stats := &HealthStats{
    Days:        days,
    RecordCount: len(records),
    Series:      []HealthDayPoint{},
  }

  var heartSum, systolicSum, diastolicSum, sleepSum, stepsSum, moodSum float64
  var heartN, systolicN, diastolicN, sleepN, stepsN, moodN int

  type dayAgg struct {
    steps        int
    sleepSum     float64
    sleepN       int
    moodSum      float64
    moodN        int
  }
  byDay := make(map[string]*dayAgg)
  dayOrder := []string{}

  for _, record := range records {
    if record == nil {
      continue
    }
    if record.HeartRate != nil {
      heartSum += float64(*record.HeartRate)
      heartN++
    }
    if record.BloodPressureSystolic != nil {
      systolicSum += float64(*record.BloodPressureSystolic)
      systolicN++
    }
    if record.BloodPressureDiastolic != nil {
      diastolicSum += float64(*record.BloodPressureDiastolic)
      diastolicN++
    }
    if record.SleepHours != nil {
      sleepSum += *record.SleepHours
      sleepN++
    }
    if record.Steps != nil {
      stepsSum += float64(*record.Steps)
      stepsN++
    }
    if record.MoodRating != nil {
      moodSum += float64(*record.MoodRating)
      moodN++
    }
    if record.Weight != nil {
      stats.LatestWeight = record.Weight
    }

    day := record.RecordedAt.Format("2006-01-02")
    agg, ok := byDay[day]
    if !ok {
      agg = &dayAgg{}
      byDay[day] = agg
      dayOrder = append(dayOrder, day)
    }
    if record.Steps != nil {
      agg.steps += *record.Steps
    }
    if record.SleepHours != nil {
      agg.sleepSum += *record.SleepHours
      agg.sleepN++
    }
    if record.MoodRating != nil {
      agg.moodSum += float64(*record.MoodRating)
      agg.moodN++
    }
  }

  round1 := func(v float64) float64 {
    return math.Round(v*10) / 10
  }
  avg := func(sum float64, n int) *float64 {
    if n == 0 {
      return nil
    }
    v := round1(sum / float64(n))
    return &v
  }
  stats.AvgHeartRate = avg(heartSum, heartN)
  stats.AvgSystolic = avg(systolicSum, systolicN)
  stats.AvgDiastolic = avg(diastolicSum, diastolicN)
  stats.AvgSleepHours = avg(sleepSum, sleepN)
  stats.AvgSteps = avg(stepsSum, stepsN)
  stats.AvgMoodRating = avg(moodSum, moodN)

  for _, day := range dayOrder {
    agg := byDay[day]
    point := HealthDayPoint{Date: day, Steps: agg.steps}
    if agg.sleepN > 0 {
      point.SleepHours = round1(agg.sleepSum / float64(agg.sleepN))
    }
    if agg.moodN > 0 {
      point.MoodRating = round1(agg.moodSum / float64(agg.moodN))
    }
    stats.Series = append(stats.Series, point)
  }
  return stats
}
