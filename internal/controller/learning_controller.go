package controller

import (
	"encoding/json"
	"errors"

	"cyberkids_backend/internal/catalog"
	"cyberkids_backend/internal/model"
	"cyberkids_backend/internal/service"
	"cyberkids_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LearningController struct {
	AuthService        *service.AuthService
	ProgressionService *service.ProgressionService
	SkillService       *service.SkillService
	Catalog            *catalog.Catalog
}

func NewLearningController(authService *service.AuthService, progressionService *service.ProgressionService, skillService *service.SkillService, cat *catalog.Catalog) *LearningController {
	return &LearningController{
		AuthService:        authService,
		ProgressionService: progressionService,
		SkillService:       skillService,
		Catalog:            cat,
	}
}

// loadStudent resolves the caller's user and progress, writing the error
// response itself when either is missing.
func (c *LearningController) loadStudent(ctx *gin.Context) (*model.User, *model.UserProgress, bool) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return nil, nil, false
	}

	user, err := c.AuthService.GetUser(claims.UserID)
	if err != nil {
		util.NotFound(ctx)
		return nil, nil, false
	}

	progress, err := c.ProgressionService.GetProgress(user.ID)
	if err != nil {
		util.BadRequest(ctx, "select an age group first")
		return nil, nil, false
	}
	return user, progress, true
}

// @Summary Get learning path
// @Description The caller's learning path with per-module lock and completion state
// @Tags learning
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/learning/path [get]
func (c *LearningController) GetLearningPath(ctx *gin.Context) {
	user, progress, ok := c.loadStudent(ctx)
	if !ok {
		return
	}

	path := c.Catalog.PathFor(user.AgeGroup)
	if path == nil {
		util.BadRequest(ctx, util.ErrNoLearningPath.Error())
		return
	}

	util.Success(ctx, gin.H{
		"ageGroup": path.AgeGroup,
		"title":    path.Title,
		"modules":  service.ModuleStates(path, user, progress),
		"xp":       progress.XP,
		"skill":    service.EstimateSkill(progress),
	})
}

// @Summary Get adaptive quiz
// @Description Question set filtered by the caller's skill estimate
// @Tags learning
// @Produce json
// @Security BearerAuth
// @Param lessonId path string true "lesson id"
// @Success 200 {object} util.Response
// @Router /api/learning/lessons/{lessonId}/quiz [get]
func (c *LearningController) GetQuiz(ctx *gin.Context) {
	_, progress, ok := c.loadStudent(ctx)
	if !ok {
		return
	}

	lesson := c.Catalog.LessonByID(ctx.Param("lessonId"))
	if lesson == nil {
		util.NotFound(ctx)
		return
	}
	if lesson.Type != catalog.LessonQuiz {
		util.BadRequest(ctx, "not a quiz lesson")
		return
	}

	questions := c.SkillService.SelectQuizQuestions(lesson.Quiz, progress)
	util.Success(ctx, gin.H{
		"lessonId":  lesson.ID,
		"questions": questions,
	})
}

// @Summary Get game lesson
// @Description Game descriptor, difficulty tier, and any saved state
// @Tags learning
// @Produce json
// @Security BearerAuth
// @Param lessonId path string true "lesson id"
// @Success 200 {object} util.Response
// @Router /api/learning/lessons/{lessonId}/game [get]
func (c *LearningController) GetGame(ctx *gin.Context) {
	_, progress, ok := c.loadStudent(ctx)
	if !ok {
		return
	}

	lesson := c.Catalog.LessonByID(ctx.Param("lessonId"))
	if lesson == nil {
		util.NotFound(ctx)
		return
	}
	if lesson.Type != catalog.LessonGame {
		util.BadRequest(ctx, "not a game lesson")
		return
	}

	resp := gin.H{
		"lessonId": lesson.ID,
		"game":     lesson.Game,
		"tier":     service.SelectGameTier(service.EstimateSkill(progress)),
	}
	if saved, ok := progress.GameState[lesson.ID]; ok {
		resp["savedState"] = saved
	}
	util.Success(ctx, resp)
}

type completeLessonRequest struct {
	Score float64 `json:"score" binding:"min=0,max=1"`
	Time  float64 `json:"time" binding:"min=0"`
}

// @Summary Complete a lesson
// @Description Applies the completion event; re-completions are no-ops
// @Tags learning
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param lessonId path string true "lesson id"
// @Param body body completeLessonRequest true "performance"
// @Success 200 {object} util.Response
// @Router /api/learning/lessons/{lessonId}/complete [post]
func (c *LearningController) CompleteLesson(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req completeLessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	progress, result, err := c.ProgressionService.CompleteLesson(claims.UserID, ctx.Param("lessonId"), model.Performance{
		Score: req.Score,
		Time:  req.Time,
	})
	if err != nil {
		switch {
		case errors.Is(err, util.ErrLessonNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrNoProgress):
			util.BadRequest(ctx, "select an age group first")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{
		"result":   result,
		"progress": progress,
	})
}

// @Summary Save game state
// @Description Overwrites the opaque save blob for one lesson
// @Tags learning
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param lessonId path string true "lesson id"
// @Success 200 {object} util.Response
// @Router /api/learning/lessons/{lessonId}/game-state [put]
func (c *LearningController) SaveGameState(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var blob json.RawMessage
	if err := ctx.ShouldBindJSON(&blob); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	progress, err := c.ProgressionService.SaveGameState(claims.UserID, ctx.Param("lessonId"), blob)
	if err != nil {
		if errors.Is(err, util.ErrNoProgress) {
			util.BadRequest(ctx, "select an age group first")
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, progress)
}

// @Summary Get current weekly mission
// @Tags learning
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/mission [get]
func (c *LearningController) GetWeeklyMission(ctx *gin.Context) {
	_, progress, ok := c.loadStudent(ctx)
	if !ok {
		return
	}

	mission := c.Catalog.WeeklyMission
	if mission.ID == "" {
		util.Success(ctx, gin.H{"mission": nil})
		return
	}

	util.Success(ctx, gin.H{
		"mission":     mission,
		"progress":    progress.WeeklyMissionProgress[mission.ID],
		"rewardOwned": progress.Badges.Contains(mission.RewardBadge),
	})
}
