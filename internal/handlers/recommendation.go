package handlers

import (
  "net/http"
  "strconv"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/centenniallife/wellness-backend/internal/services"
)

type RecommendationHandler struct {
  recommendationService   services.RecommendationService
}

func NewRecommendationHandler(recommendationService services.RecommendationService) *RecommendationHandler {
  return &RecommendationHandler{recommendationService: recommendationService}
}

func (rh *RecommendationHandler) List(c *gin.Context) {
  limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
  recommendations, err := rh.recommendationService.ListRecommendations(c.Request.Context(), limit)
  if err != nil {
    RespondError(c, http.StatusInternalServerError, "recommendation_list_failed", err)
    return
  }
  RespondOK(c, recommendations)
}

func (rh *RecommendationHandler) Generate(c *gin.Context) {
  recommendations, err := rh.recommendationService.GenerateRecommendations(c.Request.Context())
  if err != nil {
    RespondError(c, http.StatusInternalServerError, "recommendation_generate_failed", err)
    return
  }
  RespondOK(c, recommendations)
}

func (rh *RecommendationHandler) MarkRead(c *gin.Context) {
  recommendationID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_id", err)
    return
  }
  if err := rh.recommendationService.MarkRead(c.Request.Context(), recommendationID); err != nil {
    RespondError(c, http.StatusNotFound, "recommendation_not_found", err)
    return
  }
  RespondOK(c, gin.H{"read": true})
}
