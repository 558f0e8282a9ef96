package services

import (
  "testing"
  "time"
  "github.com/centenniallife/wellness-backend/internal/types"
)

func dayOffset(now time.Time, offset int) string {
  return now.AddDate(0, 0, offset).Format(checklistDateLayout)
}

func checklistDay(date string, pct int) *types.DailyChecklist {
  return &types.DailyChecklist{ChecklistDate: types.Date(date), CompletionPercentage: pct}
}

func TestComputeStreak(t *testing.T) {
  now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

  tests := []struct {
    name      string
    records   []*types.DailyChecklist
    want      int
  }{
    {
      name:    "no records",
      records: nil,
      want:    0,
    },
    {
      name: "today only above threshold",
      records: []*types.DailyChecklist{
        checklistDay(dayOffset(now, 0), 80),
      },
      want: 1,
    },
    {
      name: "three consecutive days",
      records: []*types.DailyChecklist{
        checklistDay(dayOffset(now, 0), 60),
        checklistDay(dayOffset(now, -1), 75),
        checklistDay(dayOffset(now, -2), 50),
      },
      want: 3,
    },
    {
      name: "gap breaks streak",
      records: []*types.DailyChecklist{
        checklistDay(dayOffset(now, 0), 60),
        checklistDay(dayOffset(now, -2), 90),
      },
      want: 1,
    },
    {
      name: "today below threshold keeps yesterday streak",
      records: []*types.DailyChecklist{
        checklistDay(dayOffset(now, 0), 20),
        checklistDay(dayOffset(now, -1), 70),
        checklistDay(dayOffset(now, -2), 70),
      },
      want: 2,
    },
    {
      name: "today missing keeps yesterday streak",
      records: []*types.DailyChecklist{
        checklistDay(dayOffset(now, -1), 55),
        checklistDay(dayOffset(now, -2), 55),
      },
      want: 2,
    },
    {
      name: "below threshold day breaks streak",
      records: []*types.DailyChecklist{
        checklistDay(dayOffset(now, 0), 60),
        checklistDay(dayOffset(now, -1), 40),
        checklistDay(dayOffset(now, -2), 90),
      },
      want: 1,
    },
  }

  for _, tt := range tests {
    t.Run(tt.name, func(t *testing.T) {
      if got := computeStreak(now, tt.records); got != tt.want {
        t.Fatalf("computeStreak() = %d, want %d", got, tt.want)
      }
    })
  }
}

func TestComputeStreakWithScannedDates(t *testing.T) {
  now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

  // Date columns come back from the driver as time.Time; the streak lookup
  // must still hit after those values pass through Date.Scan.
  records := []*types.DailyChecklist{}
  for offset := 0; offset >= -2; offset-- {
    var scanned types.Date
    if err := scanned.Scan(now.AddDate(0, 0, offset)); err != nil {
      t.Fatalf("scan: %v", err)
    }
    records = append(records, &types.DailyChecklist{
      ChecklistDate:        scanned,
      CompletionPercentage: 100,
    })
  }

  if got := computeStreak(now, records); got != 3 {
    t.Fatalf("computeStreak() = %d, want 3", got)
  }
}

func TestNormalizeDate(t *testing.T) {
  tests := []struct {
    name      string
    input     string
    want      string
    wantErr   bool
  }{
    {"valid date", "2026-08-30", "2026-08-30", false},
    {"empty defaults to today", "", time.Now().Format(checklistDateLayout), false},
    {"garbage", "not-a-date", "", true},
    {"wrong layout", "30/08/2026", "", true},
    {"month out of range", "2026-13-01", "", true},
  }
  for _, tt := range tests {
    t.Run(tt.name, func(t *testing.T) {
      got, err := NormalizeDate(tt.input)
      if tt.wantErr {
        if err == nil {
          t.Fatalf("NormalizeDate(%q) expected error", tt.input)
        }
        return
      }
      if err != nil {
        t.Fatalf("NormalizeDate(%q): %v", tt.input, err)
      }
      if got != tt.want {
        t.Fatalf("NormalizeDate(%q) = %q, want %q", tt.input, got, tt.want)
      }
    })
  }
}

func TestAverageCompletion(t *testing.T) {
  if got := averageCompletion(nil); got != 0 {
    t.Fatalf("averageCompletion(nil) = %d, want 0", got)
  }
  records := []*types.DailyChecklist{
    checklistDay("2026-08-28", 40),
    checklistDay("2026-08-29", 60),
    checklistDay("2026-08-30", 80),
  }
  if got := averageCompletion(records); got != 60 {
    t.Fatalf("averageCompletion() = %d, want 60", got)
  }

  halfUp := []*types.DailyChecklist{
    checklistDay("2026-08-29", 50),
    checklistDay("2026-08-30", 51),
  }
  if got := averageCompletion(halfUp); got != 51 {
    t.Fatalf("averageCompletion() = %d, want 51 (50.5 rounds up)", got)
  }
}
