package checklist

type Priority string

const (
  PriorityHigh    Priority = "high"
  PriorityMedium  Priority = "medium"
  PriorityLow     Priority = "low"
)

// Item is one user-toggleable wellness task. Everything but the runtime
// completion flag (kept in Store, not here) is immutable.
type Item struct {
  ID        string
  Text      string
  Priority  Priority
  Points    int
}

// Category is a fixed grouping of items. The catalog holds exactly ten of
// these; they are never created or destroyed at runtime.
type Category struct {
  ID      string
  Name    string
  Icon    string
  Color   string
  Items   []Item
}

// Point values follow the priority tier: a daily habit worth pushing hard for
// earns more than a nice-to-have.
const (
  pointsHigh   = 15
  pointsMedium = 10
  pointsLow    = 5
)

func item(id, text string, priority Priority) Item {
  points := pointsLow
  switch priority {
  case PriorityHigh:
    points = pointsHigh
  case PriorityMedium:
    points = pointsMedium
  }
  return Item{ID: id, Text: text, Priority: priority, Points: points}
}

var catalog = []Category{
  {
    ID:    "physical-health",
    Name:  "신체 건강",
    Icon:  "💪",
    Color: "bg-red-50 border-red-200",
    Items: []Item{
      item("morning-exercise", "아침 체조 또는 스트레칭 (10-15분)", PriorityHigh),
      item("cardio-exercise", "30분 이상 중강도 운동 (걷기, 수영, 자전거 등)", PriorityHigh),
      item("water-intake", "8잔 이상의 물 섭취", PriorityMedium),
      item("balanced-meals", "균형 잡힌 식사 3회 (채소, 단백질, 전곡류 포함)", PriorityHigh),
      item("medication", "복용 약물 체크 및 섭취", PriorityHigh),
      item("health-monitoring", "혈압/혈당 측정 (해당 시)", PriorityMedium),
      item("quality-sleep", "충분한 수면 (7-8시간 목표)", PriorityHigh),
    },
  },
  {
    ID:    "mental-health",
    Name:  "정신 건강",
    Icon:  "🧠",
    Color: "bg-blue-50 border-blue-200",
    Items: []Item{
      item("meditation", "명상 또는 마음 챙김 실천 (15-20분)", PriorityHigh),
      item("gratitude-journal", "감사일기 작성", PriorityMedium),
      item("stress-management", "스트레스 관리 기법 실천 (심호흡, 점진적 근육 이완 등)", PriorityHigh),
      item("positive-thoughts", "하루 3가지 긍정적인 일 찾기", PriorityMedium),
      item("self-affirmation", "자기 긍정 확언 실천", PriorityLow),
    },
  },
  {
    ID:    "nutrition",
    Name:  "영양",
    Icon:  "🥗",
    Color: "bg-green-50 border-green-200",
    Items: []Item{
      item("vegetable-intake", "다양한 색깔의 채소 5가지 이상 섭취", PriorityHigh),
      item("protein-intake", "양질의 단백질 섭취 (생선, 닭고기, 콩류 등)", PriorityHigh),
      item("whole-grains", "전곡류 섭취 (현미, 통밀 등)", PriorityMedium),
      item("healthy-fats", "건강한 지방 섭취 (견과류, 올리브오일 등)", PriorityMedium),
      item("limit-processed", "가공식품 및 설탕 섭취 제한", PriorityHigh),
    },
  },
  {
    ID:    "exercise",
    Name:  "운동",
    Icon:  "🏃",
    Color: "bg-orange-50 border-orange-200",
    Items: []Item{
      item("strength-training", "근력 운동 (30분 이상)", PriorityHigh),
      item("flexibility", "유연성 운동 (요가, 스트레칭)", PriorityMedium),
      item("balance-training", "균형감각 훈련", PriorityMedium),
      item("outdoor-activity", "야외 활동 참여", PriorityLow),
      item("active-lifestyle", "일상 생활에서 활동량 늘리기 (계단 이용 등)", PriorityMedium),
    },
  },
  {
    ID:    "sleep",
    Name:  "수면",
    Icon:  "😴",
    Color: "bg-purple-50 border-purple-200",
    Items: []Item{
      item("regular-bedtime", "규칙적인 취침 시간 유지", PriorityHigh),
      item("sleep-environment", "수면 환경 최적화 (어둡고 시원하게)", PriorityMedium),
      item("no-screens", "취침 1시간 전 전자기기 사용 금지", PriorityHigh),
      item("relaxation", "잠들기 전 이완 활동 (독서, 음악 등)", PriorityMedium),
      item("sleep-quality", "수면의 질 자가 평가", PriorityLow),
    },
  },
  {
    ID:    "social-connection",
    Name:  "사회적 연결",
    Icon:  "👥",
    Color: "bg-pink-50 border-pink-200",
    Items: []Item{
      item("family-contact", "가족/친구와 연락 (전화, 문자, 이메일 등)", PriorityHigh),
      item("face-to-face", "대면 만남 계획 또는 실행 (주 1-2회)", PriorityMedium),
      item("new-connections", "새로운 사회적 연결 모색 (동호회, 봉사활동 등)", PriorityLow),
      item("community-participate", "지역 사회 활동 참여", PriorityLow),
      item("helping-others", "타인을 도울 수 있는 기회 찾기", PriorityMedium),
    },
  },
  {
    ID:    "cognitive-function",
    Name:  "인지 기능",
    Icon:  "🧩",
    Color: "bg-indigo-50 border-indigo-200",
    Items: []Item{
      item("learning", "새로운 기술/지식 학습 (30분-1시간)", PriorityHigh),
      item("reading", "독서 (30분 이상)", PriorityHigh),
      item("brain-games", "두뇌 훈련 게임 또는 퍼즐", PriorityMedium),
      item("creative-activity", "창의적 활동 (그림, 음악, 글쓰기 등)", PriorityLow),
      item("memory-exercise", "기억력 훈련 (일기 쓰기, 암송 등)", PriorityMedium),
    },
  },
  {
    ID:    "financial-stability",
    Name:  "재정 안정",
    Icon:  "💰",
    Color: "bg-yellow-50 border-yellow-200",
    Items: []Item{
      item("expense-tracking", "일일 지출 기록", PriorityHigh),
      item("budget-check", "예산 대비 지출 확인", PriorityHigh),
      item("investment-review", "투자 포트폴리오 점검 (주 1회)", PriorityMedium),
      item("financial-goal", "재정 목표 진행 상황 검토 (월 1회)", PriorityLow),
      item("financial-education", "재정 관리 교육 콘텐츠 학습", PriorityLow),
    },
  },
  {
    ID:    "purpose",
    Name:  "목적 의식",
    Icon:  "🎯",
    Color: "bg-teal-50 border-teal-200",
    Items: []Item{
      item("goal-review", "개인 성장 목표 점검 및 조정", PriorityMedium),
      item("volunteer-plan", "자원봉사 또는 사회 공헌 활동 계획", PriorityLow),
      item("hobby-engage", "즐거운 취미 활동 (1시간 이상)", PriorityMedium),
      item("new-experience", "새로운 경험 계획 (월 1회 이상)", PriorityLow),
      item("meaningful-activity", "의미 있는 활동 참여", PriorityMedium),
    },
  },
  {
    ID:    "stress-management",
    Name:  "스트레스 관리",
    Icon:  "🧘",
    Color: "bg-gray-50 border-gray-200",
    Items: []Item{
      item("work-life-balance", "업무 시간과 개인 시간 구분 짓기", PriorityHigh),
      item("rest-time", "휴식과 회복 시간 확보", PriorityHigh),
      item("schedule-review", "주간 일정 검토 및 조정", PriorityMedium),
      item("breathing-exercise", "긴장 완화를 위한 호흡 운동", PriorityMedium),
      item("stress-level", "스트레스 레벨 자가 체크", PriorityLow),
    },
  },
}

var itemsByID = func() map[string]Item {
  m := make(map[string]Item)
  for _, category := range catalog {
    for _, it := range category.Items {
      m[it.ID] = it
    }
  }
  return m
}()

// Catalog returns the fixed ten-category catalog. Callers must treat the
// returned slice as read-only.
func Catalog() []Category {
  return catalog
}

func TotalItems() int {
  total := 0
  for _, category := range catalog {
    total += len(category.Items)
  }
  return total
}

// ItemByID looks an item up without knowing its category.
func ItemByID(itemID string) (Item, bool) {
  it, ok := itemsByID[itemID]
  return it, ok
}

func FindCategory(categoryID string) (Category, bool) {
  for _, category := range catalog {
    if category.ID == categoryID {
      return category, true
    }
  }
  return Category{}, false
}

func FindItem(categoryID, itemID string) (Item, bool) {
  category, ok := FindCategory(categoryID)
  if !ok {
    return Item{}, false
  }
  for _, it := range category.Items {
    if it.ID == itemID {
      return it, true
    }
  }
  return Item{}, false
}
