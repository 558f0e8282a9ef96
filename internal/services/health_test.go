package services

import (
  "testing"
  "time"
  "github.com/centenniallife/wellness-backend/internal/types"
)

func intPtr(v int) *int             { return &v }
func floatPtr(v float64) *float64   { return &v }

func healthRecordAt(day string, mutate func(r *types.HealthRecord)) *types.HealthRecord {
  recordedAt, _ := time.Parse("2006-01-02", day)
  record := &types.HealthRecord{RecordedAt: recordedAt}
  if mutate != nil {
    mutate(record)
  }
  return record
}

func TestBuildHealthStatsEmpty(t *testing.T) {
  stats := buildHealthStats(7, nil)
  if stats.Days != 7 || stats.RecordCount != 0 {
    t.Fatalf("empty stats header mismatch: %+v", stats)
  }
  if stats.AvgHeartRate != nil || stats.AvgSleepHours != nil || stats.AvgMoodRating != nil || stats.LatestWeight != nil {
    t.Fatalf("empty stats should carry no averages: %+v", stats)
  }
  if len(stats.Series) != 0 {
    t.Fatalf("empty stats series = %v, want empty", stats.Series)
  }
}

func TestBuildHealthStatsAverages(t *testing.T) {
  records := []*types.HealthRecord{
    healthRecordAt("2026-08-28", func(r *types.HealthRecord) {
      r.HeartRate = intPtr(60)
      r.BloodPressureSystolic = intPtr(120)
      r.BloodPressureDiastolic = intPtr(80)
      r.SleepHours = floatPtr(7.25)
      r.Weight = floatPtr(70.5)
    }),
    healthRecordAt("2026-08-29", func(r *types.HealthRecord) {
      r.HeartRate = intPtr(65)
      r.Steps = intPtr(8000)
      r.MoodRating = intPtr(7)
    }),
    healthRecordAt("2026-08-30", func(r *types.HealthRecord) {
      r.SleepHours = floatPtr(6.5)
      r.Weight = floatPtr(69.8)
      r.MoodRating = intPtr(8)
    }),
  }

  stats := buildHealthStats(7, records)
  if stats.RecordCount != 3 {
    t.Fatalf("RecordCount = %d, want 3", stats.RecordCount)
  }
  if stats.AvgHeartRate == nil || *stats.AvgHeartRate != 62.5 {
    t.Fatalf("AvgHeartRate = %v, want 62.5", stats.AvgHeartRate)
  }
  if stats.AvgSystolic == nil || *stats.AvgSystolic != 120 {
    t.Fatalf("AvgSystolic = %v, want 120 over the single reading", stats.AvgSystolic)
  }
  // 7.25 + 6.5 averages to 6.875 and rounds to one decimal.
  if stats.AvgSleepHours == nil || *stats.AvgSleepHours != 6.9 {
    t.Fatalf("AvgSleepHours = %v, want 6.9", stats.AvgSleepHours)
  }
  if stats.AvgSteps == nil || *stats.AvgSteps != 8000 {
    t.Fatalf("AvgSteps = %v, want 8000", stats.AvgSteps)
  }
  if stats.AvgMoodRating == nil || *stats.AvgMoodRating != 7.5 {
    t.Fatalf("AvgMoodRating = %v, want 7.5", stats.AvgMoodRating)
  }
  if stats.LatestWeight == nil || *stats.LatestWeight != 69.8 {
    t.Fatalf("LatestWeight = %v, want the most recent reading 69.8", stats.LatestWeight)
  }
}

func TestBuildHealthStatsSeriesAggregatesPerDay(t *testing.T) {
  records := []*types.HealthRecord{
    healthRecordAt("2026-08-29", func(r *types.HealthRecord) {
      r.Steps = intPtr(3000)
      r.SleepHours = floatPtr(7.0)
      r.MoodRating = intPtr(6)
    }),
    healthRecordAt("2026-08-29", func(r *types.HealthRecord) {
      r.Steps = intPtr(4500)
      r.MoodRating = intPtr(9)
    }),
    healthRecordAt("2026-08-30", func(r *types.HealthRecord) {
      r.Steps = intPtr(2000)
    }),
  }

  stats := buildHealthStats(7, records)
  if len(stats.Series) != 2 {
    t.Fatalf("series has %d days, want 2", len(stats.Series))
  }

  first := stats.Series[0]
  if first.Date != "2026-08-29" {
    t.Fatalf("first series day = %q, want 2026-08-29", first.Date)
  }
  if first.Steps != 7500 {
    t.Fatalf("same-day steps = %d, want summed 7500", first.Steps)
  }
  if first.SleepHours != 7.0 {
    t.Fatalf("same-day sleep = %v, want 7.0", first.SleepHours)
  }
  if first.MoodRating != 7.5 {
    t.Fatalf("same-day mood = %v, want averaged 7.5", first.MoodRating)
  }

  second := stats.Series[1]
  if second.Date != "2026-08-30" || second.Steps != 2000 {
    t.Fatalf("second series day mismatch: %+v", second)
  }
  if second.SleepHours != 0 || second.MoodRating != 0 {
    t.Fatalf("absent metrics should stay zero in the series: %+v", second)
  }
}
