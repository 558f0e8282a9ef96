package services

import (
  "context"
  "errors"
  "strings"
  "testing"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/centenniallife/wellness-backend/internal/repos"
  "github.com/centenniallife/wellness-backend/internal/requestdata"
  "github.com/centenniallife/wellness-backend/internal/types"
)

type fakeChecklistRepo struct {
  repos.DailyChecklistRepo
  recent   []*types.DailyChecklist
}

func (f *fakeChecklistRepo) GetRecent(ctx context.Context, tx *gorm.DB, userID uuid.UUID, upToDate string, limit int) ([]*types.DailyChecklist, error) {
  return f.recent, nil
}

type fakeHealthRepo struct {
  repos.HealthRecordRepo
  latest   *types.HealthRecord
}

func (f *fakeHealthRepo) GetLatestByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.HealthRecord, error) {
  return f.latest, nil
}

type fakeProfileRepo struct {
  repos.UserProfileRepo
  profile   *types.UserProfile
}

func (f *fakeProfileRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.UserProfile, error) {
  return f.profile, nil
}

func authedContext() context.Context {
  return requestdata.WithRequestData(context.Background(), &requestdata.RequestData{UserID: uuid.New()})
}

func TestFallbackInsightTiers(t *testing.T) {
  tests := []struct {
    name            string
    avgCompletion   int
    wantContains    string
  }{
    {"excellent", 85, "훌륭합니다"},
    {"steady", 60, "좋은 흐름"},
    {"starting", 10, "시작이 반"},
    {"empty", 0, "꾸준한 기록"},
  }
  for _, tt := range tests {
    t.Run(tt.name, func(t *testing.T) {
      got := fallbackInsight(tt.avgCompletion)
      if !strings.Contains(got, tt.wantContains) {
        t.Fatalf("fallbackInsight(%d) = %q, want it to contain %q", tt.avgCompletion, got, tt.wantContains)
      }
    })
  }
}

func newTestInsightService(ai AIClient, recent []*types.DailyChecklist) InsightService {
  return NewInsightService(
    nil,
    testLogger(),
    &fakeChecklistRepo{recent: recent},
    &fakeHealthRepo{},
    &fakeProfileRepo{},
    ai,
  )
}

func TestGenerateInsightsWithoutAIClient(t *testing.T) {
  svc := newTestInsightService(nil, []*types.DailyChecklist{checklistDay("2026-08-30", 90)})

  result, err := svc.GenerateInsights(authedContext())
  if err != nil {
    t.Fatalf("GenerateInsights: %v", err)
  }
  if result.Source != "fallback" {
    t.Fatalf("source = %q, want fallback", result.Source)
  }
  if result.Insights == "" {
    t.Fatalf("fallback insight should not be empty")
  }
}

func TestGenerateInsightsFallsBackOnAIError(t *testing.T) {
  svc := newTestInsightService(&fakeAIClient{err: errors.New("timeout")}, nil)

  result, err := svc.GenerateInsights(authedContext())
  if err != nil {
    t.Fatalf("GenerateInsights: %v", err)
  }
  if result.Source != "fallback" {
    t.Fatalf("source = %q, want fallback after AI failure", result.Source)
  }
}

func TestGenerateInsightsUsesAIContent(t *testing.T) {
  svc := newTestInsightService(&fakeAIClient{content: "수면 리듬이 좋아지고 있어요."}, nil)

  result, err := svc.GenerateInsights(authedContext())
  if err != nil {
    t.Fatalf("GenerateInsights: %v", err)
  }
  if result.Source != "ai" {
    t.Fatalf("source = %q, want ai", result.Source)
  }
  if result.Insights != "수면 리듬이 좋아지고 있어요." {
    t.Fatalf("insights = %q", result.Insights)
  }
}

func TestGenerateInsightsRequiresRequestData(t *testing.T) {
  svc := newTestInsightService(nil, nil)
  if _, err := svc.GenerateInsights(context.Background()); err == nil {
    t.Fatalf("expected error without request data in context")
  }
}

func TestBuildInsightPromptIncludesHealthData(t *testing.T) {
  heartRate := 72
  sleep := 7.5
  prompt := buildInsightPrompt(
    []*types.DailyChecklist{checklistDay("2026-08-30", 60)},
    &types.HealthRecord{HeartRate: &heartRate, SleepHours: &sleep},
    nil,
    60,
  )
  if !strings.Contains(prompt, "72 bpm") {
    t.Fatalf("prompt missing heart rate: %q", prompt)
  }
  if !strings.Contains(prompt, "7.5시간") {
    t.Fatalf("prompt missing sleep hours: %q", prompt)
  }
  if !strings.Contains(prompt, "2026-08-30") {
    t.Fatalf("prompt missing checklist day: %q", prompt)
  }
}
