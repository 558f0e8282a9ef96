package handlers

import (
  "errors"
  "net/http"
  "strconv"
  "github.com/gin-gonic/gin"
  "github.com/centenniallife/wellness-backend/internal/checklist"
  "github.com/centenniallife/wellness-backend/internal/services"
)

type ChecklistHandler struct {
  checklistService   services.ChecklistService
}

func NewChecklistHandler(checklistService services.ChecklistService) *ChecklistHandler {
  return &ChecklistHandler{checklistService: checklistService}
}

// Catalog serves the fixed category/item definitions the client renders.
func (ch *ChecklistHandler) Catalog(c *gin.Context) {
  RespondOK(c, gin.H{"categories": checklist.Catalog(), "total_items": checklist.TotalItems()})
}

// Get returns the saved checklist for ?date (default today), or null when the
// day has no record yet.
func (ch *ChecklistHandler) Get(c *gin.Context) {
  record, err := ch.checklistService.GetChecklist(c.Request.Context(), c.Query("date"))
  if err != nil {
    status := http.StatusInternalServerError
    code := "checklist_load_failed"
    if errors.Is(err, services.ErrInvalidDate) {
      status = http.StatusBadRequest
      code = "invalid_date"
    }
    RespondError(c, status, code, err)
    return
  }
  RespondOK(c, record)
}

func (ch *ChecklistHandler) Upsert(c *gin.Context) {
  var req struct {
    Date          string                   `json:"date"`
    Items         map[string]bool          `json:"checklist_data"`
    Reflection    *checklist.Reflection    `json:"reflection_data"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  record, err := ch.checklistService.UpsertChecklist(c.Request.Context(), req.Date, req.Items, req.Reflection)
  if err != nil {
    status := http.StatusInternalServerError
    code := "checklist_save_failed"
    if errors.Is(err, services.ErrInvalidDate) {
      status = http.StatusBadRequest
      code = "invalid_date"
    }
    RespondError(c, status, code, err)
    return
  }
  RespondOK(c, record)
}

func (ch *ChecklistHandler) Delete(c *gin.Context) {
  if err := ch.checklistService.DeleteChecklist(c.Request.Context(), c.Query("date")); err != nil {
    status := http.StatusInternalServerError
    code := "checklist_delete_failed"
    if errors.Is(err, services.ErrInvalidDate) {
      status = http.StatusBadRequest
      code = "invalid_date"
    }
    RespondError(c, status, code, err)
    return
  }
  RespondOK(c, gin.H{"deleted": true})
}

func (ch *ChecklistHandler) Stats(c *gin.Context) {
  days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))
  stats, err := ch.checklistService.RangeStats(c.Request.Context(), days)
  if err != nil {
    RespondError(c, http.StatusInternalServerError, "checklist_stats_failed", err)
    return
  }
  RespondOK(c, stats)
}
