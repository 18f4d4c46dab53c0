package controller

import (
	"errors"

	"cyberkids_backend/internal/service"
	"cyberkids_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	AuthService      *service.AuthService
	DashboardService *service.DashboardService
}

func NewDashboardController(authService *service.AuthService, dashboardService *service.DashboardService) *DashboardController {
	return &DashboardController{
		AuthService:      authService,
		DashboardService: dashboardService,
	}
}

type linkStudentRequest struct {
	StudentName string `json:"studentName" binding:"required"`
}

// @Summary Link a student
// @Description Attaches a student account to the calling parent by display name
// @Tags dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body linkStudentRequest true "student name"
// @Success 200 {object} util.Response
// @Router /api/parent/link [post]
func (c *DashboardController) LinkStudent(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req linkStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	student, err := c.AuthService.LinkStudent(claims.UserID, req.StudentName)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrStudentNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{
		"studentId":   student.ID,
		"studentName": student.Name,
	})
}

// @Summary Parent overview
// @Description Progression summary for the linked student
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/parent/overview [get]
func (c *DashboardController) ParentOverview(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	overview, err := c.DashboardService.ParentOverview(claims.UserID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrStudentNotLinked):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrStudentNotFound), errors.Is(err, util.ErrUserNotFound):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, overview)
}

// @Summary School overview
// @Description Every student with XP and last activity
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/school/overview [get]
func (c *DashboardController) SchoolOverview(ctx *gin.Context) {
	overview, err := c.DashboardService.SchoolOverviewAll()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, overview)
}
