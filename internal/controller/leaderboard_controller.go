package controller

import (
	"cyberkids_backend/internal/service"
	"cyberkids_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LeaderboardController struct {
	AuthService        *service.AuthService
	ProgressionService *service.ProgressionService
	LeaderboardService *service.LeaderboardService
}

func NewLeaderboardController(authService *service.AuthService, progressionService *service.ProgressionService, leaderboardService *service.LeaderboardService) *LeaderboardController {
	return &LeaderboardController{
		AuthService:        authService,
		ProgressionService: progressionService,
		LeaderboardService: leaderboardService,
	}
}

// @Summary Get leaderboard
// @Description Top ranked entries with the caller's row flagged
// @Tags leaderboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/leaderboard [get]
func (c *LeaderboardController) GetLeaderboard(ctx *gin.Context) {
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

	progress, err := c.ProgressionService.GetProgress(user.ID)
	if err != nil {
		util.BadRequest(ctx, "select an age group first")
		return
	}

	util.Success(ctx, c.LeaderboardService.GetLeaderboard(ctx.Request.Context(), user, progress))
}
