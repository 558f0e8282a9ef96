package handlers

import (
  "net/http"
  "strconv"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/centenniallife/wellness-backend/internal/services"
)

type CommunityHandler struct {
  communityService   services.CommunityService
}

func NewCommunityHandler(communityService services.CommunityService) *CommunityHandler {
  return &CommunityHandler{communityService: communityService}
}

func (ch *CommunityHandler) CreatePost(c *gin.Context) {
  var req struct {
    Title       string      `json:"title"`
    Content     string      `json:"content"`
    Category    string      `json:"category"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  post, err := ch.communityService.CreatePost(c.Request.Context(), req.Title, req.Content, req.Category)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "post_create_failed", err)
    return
  }
  RespondOK(c, post)
}

func (ch *CommunityHandler) ListPosts(c *gin.Context) {
  limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
  posts, err := ch.communityService.ListPosts(c.Request.Context(), c.Query("category"), limit)
  if err != nil {
    RespondError(c, http.StatusInternalServerError, "post_list_failed", err)
    return
  }
  RespondOK(c, posts)
}

func (ch *CommunityHandler) GetPost(c *gin.Context) {
  postID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_id", err)
    return
  }
  post, err := ch.communityService.GetPost(c.Request.Context(), postID)
  if err != nil {
    RespondError(c, http.StatusNotFound, "post_not_found", err)
    return
  }
  RespondOK(c, post)
}

func (ch *CommunityHandler) ToggleLike(c *gin.Context) {
  postID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_id", err)
    return
  }
  liked, err := ch.communityService.ToggleLike(c.Request.Context(), postID)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "like_toggle_failed", err)
    return
  }
  RespondOK(c, gin.H{"liked": liked})
}

func (ch *CommunityHandler) AddComment(c *gin.Context) {
  postID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_id", err)
    return
  }
  var req struct {
    Content     string      `json:"content"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  comment, err := ch.communityService.AddComment(c.Request.Context(), postID, req.Content)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "comment_create_failed", err)
    return
  }
  RespondOK(c, comment)
}

func (ch *CommunityHandler) ListComments(c *gin.Context) {
  postID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_id", err)
    return
  }
  comments, err := ch.communityService.ListComments(c.Request.Context(), postID)
  if err != nil {
    RespondError(c, http.StatusInternalServerError, "comment_list_failed", err)
    return
  }
  RespondOK(c, comments)
}
