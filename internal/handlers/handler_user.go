package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/finsync/internal/core/domain"
	portssvc "github.com/SscSPs/finsync/internal/core/ports/services"
	"github.com/SscSPs/finsync/internal/dto"
	"github.com/SscSPs/finsync/internal/middleware"
	"github.com/gin-gonic/gin"
)

// userHandler handles HTTP requests related to users.
type userHandler struct {
	userService portssvc.UserSvcFacade
}

// registerUserRoutes registers the profile route of the caller and the admin user routes.
func registerUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade) {
	h := &userHandler{userService: userService}

	rg.GET("/users/me", h.getMe)

	admin := rg.Group("/admin/users", middleware.RequireRole(userService, domain.RoleAdmin))
	{
		admin.GET("", h.listUsers)
		admin.GET("/:uid", h.getUser)
		admin.PUT("/:uid/role", h.updateRole)
		admin.DELETE("/:uid", h.deleteUser)
	}
}

// getMe godoc
// @Summary Get the caller's profile
// @Tags users
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/me [get]
func (h *userHandler) getMe(c *gin.Context) {
	uid, ok := requireUserID(c)
	if !ok {
		return
	}
	profile, err := h.userService.GetProfile(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(profile))
}

// listUsers godoc
// @Summary List users
// @Description Admin only. Users are ordered by uid; pass nextPageToken back as pageToken for the next page.
// @Tags admin
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param pageToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListUsersResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/users [get]
func (h *userHandler) listUsers(c *gin.Context) {
	var params dto.ListUsersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	profiles, next, err := h.userService.ListUsers(c.Request.Context(), params.Limit, params.PageToken)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListUsersResponse(profiles, next))
}

// getUser godoc
// @Summary Get a user
// @Tags admin
// @Produce json
// @Param uid path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/users/{uid} [get]
func (h *userHandler) getUser(c *gin.Context) {
	profile, err := h.userService.GetProfile(c.Request.Context(), c.Param("uid"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(profile))
}

// updateRole godoc
// @Summary Change a user's role
// @Description Admin only. Admins cannot change their own role.
// @Tags admin
// @Accept json
// @Produce json
// @Param uid path string true "User ID"
// @Param role body dto.UpdateRoleRequest true "New role"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/users/{uid}/role [put]
func (h *userHandler) updateRole(c *gin.Context) {
	actorUID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	profile, err := h.userService.UpdateRole(c.Request.Context(), actorUID, c.Param("uid"), req.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(profile))
}

// deleteUser godoc
// @Summary Delete a user
// @Description Admin only. Removes the account and its document and ends the user's live session.
// @Tags admin
// @Param uid path string true "User ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/users/{uid} [delete]
func (h *userHandler) deleteUser(c *gin.Context) {
	actorUID, ok := requireUserID(c)
	if !ok {
		return
	}
	uid := c.Param("uid")
	if err := h.userService.DeleteUser(c.Request.Context(), actorUID, uid); err != nil {
		respondError(c, err)
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("User deleted by admin", slog.String("target_user_id", uid))
	c.Status(http.StatusNoContent)
}
