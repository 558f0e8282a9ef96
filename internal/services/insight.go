package services

import (
  "context"
  "fmt"
  "strings"
  "time"
  "gorm.io/gorm"
  "github.com/centenniallife/wellness-backend/internal/logger"
  "github.com/centenniallife/wellness-backend/internal/repos"
  "github.com/centenniallife/wellness-backend/internal/requestdata"
  "github.com/centenniallife/wellness-backend/internal/types"
)

// aiTimeout bounds one insight generation round trip; past it the canned
// Korean guidance ships instead of an error page.
const aiTimeout = 25 * time.Second

type InsightResult struct {
  Insights      string    `json:"insights"`
  Source        string    `json:"source"`
  GeneratedAt   string    `json:"generated_at"`
}

type InsightService interface {
  GenerateInsights(ctx context.Context) (*InsightResult, error)
}

type insightService struct {
  db              *gorm.DB
  log             *logger.Logger
  checklistRepo   repos.DailyChecklistRepo
  healthRepo      repos.HealthRecordRepo
  profileRepo     repos.UserProfileRepo
  aiClient        AIClient
}

// NewInsightService accepts a nil aiClient; the service then always serves
// the fallback guidance.
func NewInsightService(
  db *gorm.DB,
  log *logger.Logger,
  checklistRepo repos.DailyChecklistRepo,
  healthRepo repos.HealthRecordRepo,
  profileRepo repos.UserProfileRepo,
  aiClient AIClient,
) InsightService {
  serviceLog := log.With("service", "InsightService")
  return &insightService{
    db:            db,
    log:           serviceLog,
    checklistRepo: checklistRepo,
    healthRepo:    healthRepo,
    profileRepo:   profileRepo,
    aiClient:      aiClient,
  }
}

const insightSystemPrompt = "당신은 건강한 장수를 돕는 웰니스 코치입니다. " +
  "사용자의 최근 체크리스트 완성도와 건강 기록을 바탕으로 따뜻하고 구체적인 조언을 " +
  "한국어로 3-4문장으로 작성하세요. 의학적 진단은 하지 마세요."

func fallbackInsight(avgCompletion int) string {
  switch {
  case avgCompletion >= 80:
    return "훌륭합니다! 최근 체크리스트 완성도가 매우 높네요. 꾸준함이 건강한 100세를 만드는 가장 확실한 길입니다. 지금의 리듬을 유지하면서 수면과 회복에도 신경 써 주세요."
  case avgCompletion >= 50:
    return "좋은 흐름을 유지하고 계세요. 절반 이상의 항목을 꾸준히 실천하고 있습니다. 완성도가 낮은 카테고리를 하나 골라 이번 주에 집중해 보면 어떨까요?"
  case avgCompletion > 0:
    return "시작이 반입니다. 아직 완성도가 낮지만 기록을 남기고 있다는 것 자체가 중요한 습관입니다. 우선순위가 높은 항목 두세 가지부터 매일 실천해 보세요."
  default:
    return "꾸준한 기록이 건강한 습관의 시작입니다. 오늘 체크리스트에서 가장 쉬운 항목 하나부터 완료해 보세요. 작은 성공이 쌓이면 큰 변화가 됩니다."
  }
}

func (is *insightService) GenerateInsights(ctx context.Context) (*InsightResult, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    is.log.Warn("Request data not set in context")
    return nil, fmt.Errorf("Request data not set in context")
  }

  today := time.Now().Format(checklistDateLayout)
  recent, err := is.checklistRepo.GetRecent(ctx, nil, rd.UserID, today, 7)
  if err != nil {
    return nil, fmt.Errorf("Failed to load recent checklists: %w", err)
  }
  latestHealth, err := is.healthRepo.GetLatestByUser(ctx, nil, rd.UserID)
  if err != nil {
    return nil, fmt.Errorf("Failed to load latest health record: %w", err)
  }
  profile, err := is.profileRepo.GetByUserID(ctx, nil, rd.UserID)
  if err != nil {
    return nil, fmt.Errorf("Failed to load user profile: %w", err)
  }

  avgCompletion := averageCompletion(recent)

  result := &InsightResult{
    GeneratedAt: time.Now().Format(time.RFC3339),
  }

  if is.aiClient == nil {
    result.Insights = fallbackInsight(avgCompletion)
    result.Source = "fallback"
    return result, nil
  }

  aiCtx, cancel := context.WithTimeout(ctx, aiTimeout)
  defer cancel()

  content, aiErr := is.aiClient.Complete(aiCtx, insightSystemPrompt, buildInsightPrompt(recent, latestHealth, profile, avgCompletion))
  if aiErr != nil {
    is.log.Warn("AI insight generation failed, serving fallback", "error", aiErr)
    result.Insights = fallbackInsight(avgCompletion)
    result.Source = "fallback"
    return result, nil
  }
  result.Insights = content
  result.Source = "ai"
  return result, nil
}

func buildInsightPrompt(recent []*types.DailyChecklist, latestHealth *types.HealthRecord, profile *types.UserProfile, avgCompletion int) string {
  var sb strings.Builder

  fmt.Fprintf(&sb, "최근 %d일간 평균 체크리스트 완성도: %d%%\n", len(recent), avgCompletion)
  for _, record := range recent {
    fmt.Fprintf(&sb, "- %s: %d%% (%d/%d 항목)\n",
      record.ChecklistDate, record.CompletionPercentage, record.CompletedItems, record.TotalItems)
  }

  if latestHealth != nil {
    sb.WriteString("최근 건강 기록:\n")
    if latestHealth.HeartRate != nil {
      fmt.Fprintf(&sb, "- 심박수: %d bpm\n", *latestHealth.HeartRate)
    }
    if latestHealth.BloodPressureSystolic != nil && latestHealth.BloodPressureDiastolic != nil {
      fmt.Fprintf(&sb, "- 혈압: %d/%d mmHg\n", *latestHealth.BloodPressureSystolic, *latestHealth.BloodPressureDiastolic)
    }
    if latestHealth.SleepHours != nil {
      fmt.Fprintf(&sb, "- 수면: %.1f시간\n", *latestHealth.SleepHours)
    }
    if latestHealth.Steps != nil {
      fmt.Fprintf(&sb, "- 걸음 수: %d보\n", *latestHealth.Steps)
    }
    if latestHealth.MoodRating != nil {
      fmt.Fprintf(&sb, "- 기분 점수: %d/10\n", *latestHealth.MoodRating)
    }
  }

  if profile != nil {
    if profile.Age != nil {
      fmt.Fprintf(&sb, "사용자 나이: %d세\n", *profile.Age)
    }
    if profile.ActivityLevel != "" {
      fmt.Fprintf(&sb, "활동 수준: %s\n", profile.ActivityLevel)
    }
  }

  return sb.String()
}
