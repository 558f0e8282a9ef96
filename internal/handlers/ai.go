package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/centenniallife/wellness-backend/internal/services"
)

type AIHandler struct {
  insightService   services.InsightService
}

func NewAIHandler(insightService services.InsightService) *AIHandler {
  return &AIHandler{insightService: insightService}
}

func (ah *AIHandler) Insights(c *gin.Context) {
  result, err := ah.insightService.GenerateInsights(c.Request.Context())
  if err != nil {
    RespondError(c, http.StatusInternalServerError, "insights_failed", err)
    return
  }
  RespondOK(c, result)
}
