package handlers

import (
  "net/http"
  "strconv"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/centenniallife/wellness-backend/internal/services"
)

type HealthHandler struct {
  healthService   services.HealthService
}

func NewHealthHandler(healthService services.HealthService) *HealthHandler {
  return &HealthHandler{healthService: healthService}
}

func (hh *HealthHandler) Record(c *gin.Context) {
  var req services.HealthInput
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  record, err := hh.healthService.RecordHealthData(c.Request.Context(), &req)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "health_record_failed", err)
    return
  }
  RespondOK(c, record)
}

func (hh *HealthHandler) List(c *gin.Context) {
  limit, _ := strconv.Atoi(c.DefaultQuery("limit", "30"))
  records, err := hh.healthService.ListHealthData(c.Request.Context(), limit)
  if err != nil {
    RespondError(c, http.StatusInternalServerError, "health_list_failed", err)
    return
  }
  RespondOK(c, records)
}

func (hh *HealthHandler) Latest(c *gin.Context) {
  record, err := hh.healthService.GetLatest(c.Request.Context())
  if err != nil {
    RespondError(c, http.StatusInternalServerError, "health_latest_failed", err)
    return
  }
  RespondOK(c, record)
}

func (hh *HealthHandler) Stats(c *gin.Context) {
  days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))
  stats, err := hh.healthService.GetStats(c.Request.Context(), days)
  if err != nil {
    RespondError(c, http.StatusInternalServerError, "health_stats_failed", err)
    return
  }
  RespondOK(c, stats)
}

func (hh *HealthHandler) Delete(c *gin.Context) {
  recordID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_id", err)
    return
  }
  if err := hh.healthService.DeleteRecord(c.Request.Context(), recordID); err != nil {
    RespondError(c, http.StatusInternalServerError, "health_delete_failed", err)
    return
  }
  RespondOK(c, gin.H{"deleted": true})
}
