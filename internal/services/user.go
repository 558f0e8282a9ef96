package services

import (
  "context"
  "encoding/json"
  "fmt"
  "strings"
  "github.com/google/uuid"
  "gorm.io/datatypes"
  "gorm.io/gorm"
  "github.com/centenniallife/wellness-backend/internal/logger"
  "github.com/centenniallife/wellness-backend/internal/repos"
  "github.com/centenniallife/wellness-backend/internal/requestdata"
  "github.com/centenniallife/wellness-backend/internal/types"
)

// ProfileInput is the mutable slice of a user profile. Nil pointers mean
// "leave unchanged"; slices replace the stored JSON arrays wholesale.
type ProfileInput struct {
  Age                 *int        `json:"age"`
  Gender              *string     `json:"gender"`
  Height              *float64    `json:"height"`
  Weight              *float64    `json:"weight"`
  ActivityLevel       *string     `json:"activity_level"`
  HealthGoals         []string    `json:"health_goals"`
  MedicalConditions   []string    `json:"medical_conditions"`
}

type UserService interface {
  GetMe(ctx context.Context) (*types.User, error)
  GetProfile(ctx context.Context) (*types.UserProfile, error)
  UpsertProfile(ctx context.Context, input *ProfileInput) (*types.UserProfile, error)
}

type userService struct {
  db            *gorm.DB
  log           *logger.Logger
  userRepo      repos.UserRepo
  profileRepo   repos.UserProfileRepo
}

var validActivityLevels = map[string]struct{}{
  "sedentary":    {},
  "light":        {},
  "moderate":     {},
  "active":       {},
  "very_active":  {},
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, profileRepo repos.UserProfileRepo) UserService {
  serviceLog := log.With("service", "UserService")
  return &userService{
    db:          db,
    log:         serviceLog,
    userRepo:    userRepo,
    profileRepo: profileRepo,
  }
}

func (us *userService) GetMe(ctx context.Context) (*types.User, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    us.log.Warn("Request data not set in context")
    return nil, fmt.Errorf("Request data not set in context")
  }
  users, err := us.userRepo.GetByIDs(ctx, nil, []uuid.UUID{rd.UserID})
  if err != nil {
    return nil, fmt.Errorf("Failed to load user: %w", err)
  }
  if len(users) == 0 {
    return nil, fmt.Errorf("User not found")
  }
  return users[0], nil
}

func (us *userService) GetProfile(ctx context.Context) (*types.UserProfile, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    us.log.Warn("Request data not set in context")
    return nil, fmt.Errorf("Request data not set in context")
  }
  profile, err := us.profileRepo.GetByUserID(ctx, nil, rd.UserID)
  if err != nil {
    return nil, fmt.Errorf("Failed to load user profile: %w", err)
  }
  if profile == nil {
    return &types.UserProfile{UserID: rd.UserID}, nil
  }
  return profile, nil
}

func (us *userService) UpsertProfile(ctx context.Context, input *ProfileInput) (*types.UserProfile, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    us.log.Warn("Request data not set in context")
    return nil, fmt.Errorf("Request data not set in context")
  }
  if input == nil {
    return nil, fmt.Errorf("No profile fields given")
  }
  if input.Age != nil && (*input.Age < 0 || *input.Age > 150) {
    return nil, fmt.Errorf("Age out of range")
  }
  if input.ActivityLevel != nil {
    level := strings.ToLower(strings.TrimSpace(*input.ActivityLevel))
    if _, ok := validActivityLevels[level]; !ok {
      return nil, fmt.Errorf("Unknown activity level %q", *input.ActivityLevel)
    }
    input.ActivityLevel = &level
  }

  var result *types.UserProfile
  err := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    existing, gErr := us.profileRepo.GetByUserID(ctx, tx, rd.UserID)
    if gErr != nil {
      return fmt.Errorf("Failed to load existing profile: %w", gErr)
    }
    profile := existing
    if profile == nil {
      profile = &types.UserProfile{ID: uuid.New(), UserID: rd.UserID}
    }
    if input.Age != nil {
      profile.Age = input.Age
    }
    if input.Gender != nil {
      profile.Gender = strings.TrimSpace(*input.Gender)
    }
    if input.Height != nil {
      profile.Height = input.Height
    }
    if input.Weight != nil {
      profile.Weight = input.Weight
    }
    if input.ActivityLevel != nil {
      profile.ActivityLevel = *input.ActivityLevel
    }
    if input.HealthGoals != nil {
      raw, mErr := json.Marshal(input.HealthGoals)
      if mErr != nil {
        return fmt.Errorf("Failed to encode health goals: %w", mErr)
      }
      profile.HealthGoals = datatypes.JSON(raw)
    }
    if input.MedicalConditions != nil {
      raw, mErr := json.Marshal(input.MedicalConditions)
      if mErr != nil {
        return fmt.Errorf("Failed to encode medical conditions: %w", mErr)
      }
      profile.MedicalConditions = datatypes.JSON(raw)
    }
    saved, uErr := us.profileRepo.Upsert(ctx, tx, profile)
    if uErr != nil {
      return fmt.Errorf("Failed to upsert user profile: %w", uErr)
    }
    result = saved
    return nil
  })
  if err != nil {
    return nil, err
  }
  return result, nil
}
