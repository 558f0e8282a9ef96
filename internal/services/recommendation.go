package services

import (
  "context"
  "encoding/json"
  "errors"
  "fmt"
  "math"
  "strings"
  "time"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/centenniallife/wellness-backend/internal/logger"
  "github.com/centenniallife/wellness-backend/internal/repos"
  "github.com/centenniallife/wellness-backend/internal/requestdata"
  "github.com/centenniallife/wellness-backend/internal/types"
)

// maxRecommendations caps one generation batch.
const maxRecommendations = 4

type RecommendationService interface {
  ListRecommendations(ctx context.Context, limit int) ([]*types.Recommendation, error)
  GenerateRecommendations(ctx context.Context) ([]*types.Recommendation, error)
  MarkRead(ctx context.Context, recommendationID uuid.UUID) error
}

type recommendationService struct {
  db                   *gorm.DB
  log                  *logger.Logger
  recommendationRepo   repos.RecommendationRepo
  checklistRepo        repos.DailyChecklistRepo
  healthRepo           repos.HealthRecordRepo
  aiClient             AIClient
}

func NewRecommendationService(
  db *gorm.DB,
  log *logger.Logger,
  recommendationRepo repos.RecommendationRepo,
  checklistRepo repos.DailyChecklistRepo,
  healthRepo repos.HealthRecordRepo,
  aiClient AIClient,
) RecommendationService {
  serviceLog := log.With("service", "RecommendationService")
  return &recommendationService{
    db:                 db,
    log:                serviceLog,
    recommendationRepo: recommendationRepo,
    checklistRepo:      checklistRepo,
    healthRepo:         healthRepo,
    aiClient:           aiClient,
  }
}

const recommendationSystemPrompt = "당신은 건강한 장수를 돕는 웰니스 코치입니다. " +
  "사용자 데이터를 바탕으로 실천 가능한 건강 추천을 JSON 배열로만 응답하세요. " +
  `각 항목은 {"title","description","category","priority","confidence"} 키를 가지며 ` +
  `category는 exercise/nutrition/sleep/mental/social 중 하나, priority는 high/medium/low, ` +
  "confidence는 0과 1 사이 숫자입니다. 최대 4개까지만 작성하세요."

type recommendationPayload struct {
  Title         string     `json:"title"`
  Description   string     `json:"description"`
  Category      string     `json:"category"`
  Priority      string     `json:"priority"`
  Confidence    float64    `json:"confidence"`
}

func defaultRecommendations(userID uuid.UUID) []*types.Recommendation {
  defaults := []recommendationPayload{
    {
      Title:       "매일 30분 걷기",
      Description: "가벼운 걷기부터 시작해 심혈관 건강의 기초를 다져 보세요. 식후 산책이 혈당 관리에도 도움이 됩니다.",
      Category:    "exercise",
      Priority:    "high",
      Confidence:  0.9,
    },
    {
      Title:       "취침 시간 고정하기",
      Description: "매일 같은 시간에 잠들면 수면의 질이 올라갑니다. 취침 1시간 전에는 화면을 멀리해 보세요.",
      Category:    "sleep",
      Priority:    "high",
      Confidence:  0.85,
    },
    {
      Title:       "채소 한 접시 추가",
      Description: "끼니마다 색이 다른 채소를 한 가지씩 더해 보세요. 장 건강과 면역력에 좋은 영향을 줍니다.",
      Category:    "nutrition",
      Priority:    "medium",
      Confidence:  0.8,
    },
    {
      Title:       "가까운 사람에게 연락하기",
      Description: "일주일에 한 번 이상 가족이나 친구에게 먼저 연락해 보세요. 사회적 연결은 장수와 깊은 관련이 있습니다.",
      Category:    "social",
      Priority:    "medium",
      Confidence:  0.75,
    },
  }
  recommendations := make([]*types.Recommendation, 0, len(defaults))
  for _, payload := range defaults {
    recommendations = append(recommendations, recommendationFromPayload(userID, payload))
  }
  return recommendations
}

func recommendationFromPayload(userID uuid.UUID, payload recommendationPayload) *types.Recommendation {
  return &types.Recommendation{
    ID:          uuid.New(),
    UserID:      userID,
    Title:       payload.Title,
    Description: payload.Description,
    Category:    payload.Category,
    Priority:    payload.Priority,
    Confidence:  payload.Confidence,
  }
}

func (rs *recommendationService) ListRecommendations(ctx context.Context, limit int) ([]*types.Recommendation, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    rs.log.Warn("Request data not set in context")
    return nil, fmt.Errorf("Request data not set in context")
  }
  recommendations, err := rs.recommendationRepo.ListByUser(ctx, nil, rd.UserID, limit)
  if err != nil {
    return nil, fmt.Errorf("Failed to list recommendations: %w", err)
  }
  return recommendations, nil
}

// GenerateRecommendations replaces the user's current batch. Without an AI
// client, without user data, or on AI failure the curated defaults ship.
func (rs *recommendationService) GenerateRecommendations(ctx context.Context) ([]*types.Recommendation, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    rs.log.Warn("Request data not set in context")
    return nil, fmt.Errorf("Request data not set in context")
  }

  today := time.Now().Format(checklistDateLayout)
  recent, err := rs.checklistRepo.GetRecent(ctx, nil, rd.UserID, today, 7)
  if err != nil {
    return nil, fmt.Errorf("Failed to load recent checklists: %w", err)
  }
  latestHealth, err := rs.healthRepo.GetLatestByUser(ctx, nil, rd.UserID)
  if err != nil {
    return nil, fmt.Errorf("Failed to load latest health record: %w", err)
  }

  recommendations := rs.buildRecommendations(ctx, rd.UserID, recent, latestHealth)

  err = rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if dErr := rs.recommendationRepo.DeleteByUser(ctx, tx, rd.UserID); dErr != nil {
      return fmt.Errorf("Failed to clear previous recommendations: %w", dErr)
    }
    if _, cErr := rs.recommendationRepo.Create(ctx, tx, recommendations); cErr != nil {
      return fmt.Errorf("Failed to create recommendations: %w", cErr)
    }
    return nil
  })
  if err != nil {
    return nil, err
  }
  return recommendations, nil
}

func (rs *recommendationService) buildRecommendations(ctx context.Context, userID uuid.UUID, recent []*types.DailyChecklist, latestHealth *types.HealthRecord) []*types.Recommendation {
  if rs.aiClient == nil || (len(recent) == 0 && latestHealth == nil) {
    return defaultRecommendations(userID)
  }

  aiCtx, cancel := context.WithTimeout(ctx, aiTimeout)
  defer cancel()

  content, err := rs.aiClient.Complete(aiCtx, recommendationSystemPrompt, buildInsightPrompt(recent, latestHealth, nil, averageCompletion(recent)))
  if err != nil {
    rs.log.Warn("AI recommendation generation failed, serving defaults", "error", err)
    return defaultRecommendations(userID)
  }
  parsed, pErr := parseRecommendationPayloads(content)
  if pErr != nil || len(parsed) == 0 {
    rs.log.Warn("Failed to parse AI recommendations, serving defaults", "error", pErr)
    return defaultRecommendations(userID)
  }

  if len(parsed) > maxRecommendations {
    parsed = parsed[:maxRecommendations]
  }
  recommendations := make([]*types.Recommendation, 0, len(parsed))
  for _, payload := range parsed {
    if strings.TrimSpace(payload.Title) == "" || strings.TrimSpace(payload.Description) == "" {
      continue
    }
    recommendations = append(recommendations, recommendationFromPayload(userID, payload))
  }
  if len(recommendations) == 0 {
    return defaultRecommendations(userID)
  }
  return recommendations
}

// parseRecommendationPayloads tolerates models that wrap the JSON array in
// markdown fences or prose.
func parseRecommendationPayloads(content string) ([]recommendationPayload, error) {
  start := strings.Index(content, "[")
  end := strings.LastIndex(content, "]")
  if start == -1 || end == -1 || end < start {
    return nil, fmt.Errorf("no JSON array found in AI response")
  }
  var payloads []recommendationPayload
  if err := json.Unmarshal([]byte(content[start:end+1]), &payloads); err != nil {
    return nil, fmt.Errorf("Failed to decode AI recommendations: %w", err)
  }
  return payloads, nil
}

func averageCompletion(records []*types.DailyChecklist) int {
  if len(records) == 0 {
    return 0
  }
  sum := 0
  for _, record := range records {
    sum += record.CompletionPercentage
  }
  return int(math.Round(float64(sum) / float64(len(records))))
}

func (rs *recommendationService) MarkRead(ctx context.Context, recommendationID uuid.UUID) error {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    rs.log.Warn("Request data not set in context")
    return fmt.Errorf("Request data not set in context")
  }
  if err := rs.recommendationRepo.MarkRead(ctx, nil, rd.UserID, recommendationID); err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return fmt.Errorf("Recommendation not found")
    }
    return fmt.Errorf("Failed to mark recommendation read: %w", err)
  }
  return nil
}
