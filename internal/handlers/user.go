package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/centenniallife/wellness-backend/internal/services"
)

type UserHandler struct {
  userService   services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
  return &UserHandler{userService: userService}
}

func (uh *UserHandler) GetMe(c *gin.Context) {
  user, err := uh.userService.GetMe(c.Request.Context())
  if err != nil {
    RespondError(c, http.StatusNotFound, "user_not_found", err)
    return
  }
  RespondOK(c, user)
}

func (uh *UserHandler) GetProfile(c *gin.Context) {
  profile, err := uh.userService.GetProfile(c.Request.Context())
  if err != nil {
    RespondError(c, http.StatusInternalServerError, "profile_load_failed", err)
    return
  }
  RespondOK(c, profile)
}

func (uh *UserHandler) UpsertProfile(c *gin.Context) {
  var req services.ProfileInput
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  profile, err := uh.userService.UpsertProfile(c.Request.Context(), &req)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "profile_save_failed", err)
    return
  }
  RespondOK(c, profile)
}
