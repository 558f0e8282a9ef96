package services

import (
  "context"
  "fmt"
  "strings"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/centenniallife/wellness-backend/internal/logger"
  "github.com/centenniallife/wellness-backend/internal/repos"
  "github.com/centenniallife/wellness-backend/internal/requestdata"
  "github.com/centenniallife/wellness-backend/internal/types"
)

type CommunityService interface {
  CreatePost(ctx context.Context, title, content, category string) (*types.CommunityPost, error)
  ListPosts(ctx context.Context, category string, limit int) ([]*types.CommunityPost, error)
  GetPost(ctx context.Context, postID uuid.UUID) (*types.CommunityPost, error)
  ToggleLike(ctx context.Context, postID uuid.UUID) (bool, error)
  AddComment(ctx context.Context, postID uuid.UUID, content string) (*types.CommunityComment, error)
  ListComments(ctx context.Context, postID uuid.UUID) ([]*types.CommunityComment, error)
}

type communityService struct {
  db            *gorm.DB
  log           *logger.Logger
  postRepo      repos.CommunityPostRepo
  commentRepo   repos.CommunityCommentRepo
  likeRepo      repos.CommunityLikeRepo
  runTx         func(ctx context.Context, fn func(tx *gorm.DB) error) error
}

var validPostCategories = map[string]struct{}{
  "general":     {},
  "exercise":    {},
  "nutrition":   {},
  "sleep":       {},
  "mental":      {},
  "success":     {},
  "question":    {},
}

func NewCommunityService(
  db *gorm.DB,
  log *logger.Logger,
  postRepo repos.CommunityPostRepo,
  commentRepo repos.CommunityCommentRepo,
  likeRepo repos.CommunityLikeRepo,
) CommunityService {
  serviceLog := log.With("service", "CommunityService")
  return &communityService{
    db:          db,
    log:         serviceLog,
    postRepo:    postRepo,
    commentRepo: commentRepo,
    likeRepo:    likeRepo,
    runTx: func(ctx context.Context, fn func(tx *gorm.DB) error) error {
      return db.WithContext(ctx).Transaction(fn)
    },
  }
}

func (cs *communityService) CreatePost(ctx context.Context, title, content, category string) (*types.CommunityPost, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    cs.log.Warn("Request data not set in context")
    return nil, fmt.Errorf("Request data not set in context")
  }
  title = strings.TrimSpace(title)
  content = strings.TrimSpace(content)
  category = strings.ToLower(strings.TrimSpace(category))
  if title == "" {
    return nil, fmt.Errorf("Post title is required")
  }
  if content == "" {
    return nil, fmt.Errorf("Post content is required")
  }
  if category == "" {
    category = "general"
  }
  if _, ok := validPostCategories[category]; !ok {
    return nil, fmt.Errorf("Unknown post category %q", category)
  }

  post := &types.CommunityPost{
    ID:       uuid.New(),
    UserID:   rd.UserID,
    Title:    title,
    Content:  content,
    Category: category,
  }
  if _, err := cs.postRepo.Create(ctx, nil, []*types.CommunityPost{post}); err != nil {
    return nil, fmt.Errorf("Failed to create community post: %w", err)
  }
  return post, nil
}

func (cs *communityService) ListPosts(ctx context.Context, category string, limit int) ([]*types.CommunityPost, error) {
  posts, err := cs.postRepo.List(ctx, nil, strings.ToLower(strings.TrimSpace(category)), limit)
  if err != nil {
    return nil, fmt.Errorf("Failed to list community posts: %w", err)
  }
  return posts, nil
}

func (cs *communityService) GetPost(ctx context.Context, postID uuid.UUID) (*types.CommunityPost, error) {
  post, err := cs.postRepo.GetByID(ctx, nil, postID)
  if err != nil {
    return nil, fmt.Errorf("Failed to load community post: %w", err)
  }
  if post == nil {
    return nil, fmt.Errorf("Post not found")
  }
  return post, nil
}

// ToggleLike flips the caller's like on a post and keeps the denormalized
// counter in step inside one transaction. Returns the resulting liked state.
func (cs *communityService) ToggleLike(ctx context.Context, postID uuid.UUID) (bool, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    cs.log.Warn("Request data not set in context")
    return false, fmt.Errorf("Request data not set in context")
  }

  liked := false
  err := cs.runTx(ctx, func(tx *gorm.DB) error {
    post, pErr := cs.postRepo.GetByID(ctx, tx, postID)
    if pErr != nil {
      return fmt.Errorf("Failed to load community post: %w", pErr)
    }
    if post == nil {
      return fmt.Errorf("Post not found")
    }
    existing, lErr := cs.likeRepo.GetByPostAndUser(ctx, tx, postID, rd.UserID)
    if lErr != nil {
      return fmt.Errorf("Failed to check existing like: %w", lErr)
    }
    if existing != nil {
      if dErr := cs.likeRepo.Delete(ctx, tx, existing.ID); dErr != nil {
        return fmt.Errorf("Failed to remove like: %w", dErr)
      }
      if uErr := cs.postRepo.AddLikesCount(ctx, tx, postID, -1); uErr != nil {
        return fmt.Errorf("Failed to decrement likes count: %w", uErr)
      }
      liked = false
      return nil
    }
    like := &types.CommunityLike{ID: uuid.New(), PostID: postID, UserID: rd.UserID}
    if _, cErr := cs.likeRepo.Create(ctx, tx, like); cErr != nil {
      return fmt.Errorf("Failed to create like: %w", cErr)
    }
    if uErr := cs.postRepo.AddLikesCount(ctx, tx, postID, 1); uErr != nil {
      return fmt.Errorf("Failed to increment likes count: %w", uErr)
    }
    liked = true
    return nil
  })
  if err != nil {
    return false, err
  }
  return liked, nil
}

func (cs *communityService) AddComment(ctx context.Context, postID uuid.UUID, content string) (*types.CommunityComment, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    cs.log.Warn("Request data not set in context")
    return nil, fmt.Errorf("Request data not set in context")
  }
  content = strings.TrimSpace(content)
  if content == "" {
    return nil, fmt.Errorf("Comment content is required")
  }

  var comment *types.CommunityComment
  err := cs.runTx(ctx, func(tx *gorm.DB) error {
    post, pErr := cs.postRepo.GetByID(ctx, tx, postID)
    if pErr != nil {
      return fmt.Errorf("Failed to load community post: %w", pErr)
    }
    if post == nil {
      return fmt.Errorf("Post not found")
    }
    comment = &types.CommunityComment{
      ID:      uuid.New(),
      PostID:  postID,
      UserID:  rd.UserID,
      Content: content,
    }
    if _, cErr := cs.commentRepo.Create(ctx, tx, []*types.CommunityComment{comment}); cErr != nil {
      return fmt.Errorf("Failed to create comment: %w", cErr)
    }
    if uErr := cs.postRepo.AddCommentsCount(ctx, tx, postID, 1); uErr != nil {
      return fmt.Errorf("Failed to increment comments count: %w", uErr)
    }
    return nil
  })
  if err != nil {
    return nil, err
  }
  return comment, nil
}

func (cs *communityService) ListComments(ctx context.Context, postID uuid.UUID) ([]*types.CommunityComment, error) {
  comments, err := cs.commentRepo.ListByPost(ctx, nil, postID)
  if err != nil {
    return nil, fmt.Errorf("Failed to list comments: %w", err)
  }
  return comments, nil
}
