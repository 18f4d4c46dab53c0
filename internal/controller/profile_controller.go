package controller

import (
	"errors"

	"cyberkids_backend/internal/model"
	"cyberkids_backend/internal/service"
	"cyberkids_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProfileController struct {
	AuthService        *service.AuthService
	ProgressionService *service.ProgressionService
}

func NewProfileController(authService *service.AuthService, progressionService *service.ProgressionService) *ProfileController {
	return &ProfileController{
		AuthService:        authService,
		ProgressionService: progressionService,
	}
}

// @Summary Get profile
// @Description Returns the account and, for students, the progression record
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/profile [get]
func (c *ProfileController) GetProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	user, err := c.AuthService.GetUser(claims.UserID)
	if err != nil {
		util.NotFound(ctx)
		return
	}

	resp := gin.H{"user": user}
	if user.Role == model.Student {
		if progress, err := c.ProgressionService.GetProgress(user.ID); err == nil {
			resp["progress"] = progress
		}
	}
	util.Success(ctx, resp)
}

type ageGroupRequest struct {
	AgeGroup model.AgeGroup `json:"ageGroup" binding:"required"`
}

// @Summary Select age group
// @Description One-time tier selection; creates the zero-state progression record
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ageGroupRequest true "age group"
// @Success 201 {object} util.Response
// @Router /api/profile/age-group [post]
func (c *ProfileController) SelectAgeGroup(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req ageGroupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	progress, err := c.AuthService.SelectAgeGroup(claims.UserID, req.AgeGroup)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrInvalidAgeGroup), errors.Is(err, util.ErrAgeGroupSet):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, progress)
}

// @Summary Save avatar
// @Description Replaces the whole five-slot cosmetic record
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body model.AvatarCustomization true "avatar"
// @Success 200 {object} util.Response
// @Router /api/profile/avatar [put]
func (c *ProfileController) SaveAvatar(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var av model.AvatarCustomization
	if err := ctx.ShouldBindJSON(&av); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.AuthService.GetUser(claims.UserID)
	if err != nil {
		util.NotFound(ctx)
		return
	}

	progress, err := c.ProgressionService.SaveAvatarCustomization(user.ID, user.IsPremium, av)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrPremiumRequired):
			util.Forbidden(ctx)
		case errors.Is(err, util.ErrNoProgress):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, progress)
}

// @Summary Upgrade to premium
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/profile/premium [post]
func (c *ProfileController) UpgradeToPremium(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	user, err := c.AuthService.UpgradeToPremium(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, user)
}
