package service

import (
	"errors"
	"time"

	"cyberkids_backend/internal/config"
	"cyberkids_backend/internal/model"
	"cyberkids_backend/internal/repository"
	"cyberkids_backend/internal/util"
	"cyberkids_backend/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo     *repository.UserRepository
	ProgressRepo *repository.ProgressRepository
	Config       *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, progressRepo *repository.ProgressRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo:     userRepo,
		ProgressRepo: progressRepo,
		Config:       cfg,
	}
}

type RegisterRequest struct {
	Name     string         `json:"name" binding:"required"`
	Email    string         `json:"email" binding:"required,email"`
	Password string         `json:"password" binding:"required,min=6"`
	Role     model.UserRole `json:"role"`
}

type LoginRequest struct {
	// Identifier is a display name or an email address.
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

func (s *AuthService) Register(req RegisterRequest) (*model.User, error) {
	if _, err := s.UserRepo.FindByEmail(req.Email); err == nil {
		return nil, util.ErrEmailRegistered
	}
	if _, err := s.UserRepo.FindByName(req.Name); err == nil {
		return nil, util.ErrNameTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := req.Role
	switch role {
	case model.Student, model.Parent, model.School:
	default:
		role = model.Student
	}

	user := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
		Role:     role,
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}

	logger.Log.Info("user registered",
		zap.Uint("userId", user.ID),
		zap.String("role", string(user.Role)),
	)
	return user, nil
}

// Login accepts a display name or an email address.
func (s *AuthService) Login(req LoginRequest) (*AuthResponse, error) {
	user, err := s.UserRepo.FindByEmail(req.Identifier)
	if err != nil {
		user, err = s.UserRepo.FindByName(req.Identifier)
	}
	if err != nil {
		return nil, util.ErrInvalidCredentials
	}
	if user.Disabled {
		return nil, util.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, util.ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(user, s.Config.JWT.Secret, s.Config.JWT.ExpireTime)
	if err != nil {
		return nil, err
	}

	user.LastLogin = time.Now()
	if err := s.UserRepo.Update(user); err != nil {
		logger.Log.Warn("failed to record login time", zap.Uint("userId", user.ID), zap.Error(err))
	}

	return &AuthResponse{Token: token, User: user}, nil
}

// DefaultAvatar is the zero-state cosmetic record for a new student.
func DefaultAvatar() model.AvatarCustomization {
	return model.AvatarCustomization{
		Face:            "🧑‍🚀",
		Headwear:        "none",
		Eyewear:         "none",
		Clothing:        "none",
		BackgroundColor: "bg-sky-200",
	}
}

// SelectAgeGroup fixes a student's content tier and creates the zero-state
// progress record. The tier is immutable once set.
func (s *AuthService) SelectAgeGroup(userID uint, group model.AgeGroup) (*model.UserProgress, error) {
	if !group.Valid() {
		return nil, util.ErrInvalidAgeGroup
	}

	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, util.ErrUserNotFound
	}
	if user.Role != model.Student {
		return nil, util.ErrPermissionDenied
	}
	if user.AgeGroup != "" {
		return nil, util.ErrAgeGroupSet
	}
	if exists, err := s.ProgressRepo.Exists(userID); err != nil {
		return nil, err
	} else if exists {
		return nil, util.ErrAgeGroupSet
	}

	user.AgeGroup = group
	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}

	progress := model.NewUserProgress(userID, DefaultAvatar())
	if err := s.ProgressRepo.Save(progress); err != nil {
		return nil, err
	}

	logger.Log.Info("age group selected",
		zap.Uint("userId", userID),
		zap.String("ageGroup", string(group)),
	)
	return progress, nil
}

func (s *AuthService) GetUser(userID uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, util.ErrUserNotFound
	}
	return user, nil
}

func (s *AuthService) UpgradeToPremium(userID uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, util.ErrUserNotFound
	}
	if !user.IsPremium {
		user.IsPremium = true
		if err := s.UserRepo.Update(user); err != nil {
			return nil, err
		}
		logger.Log.Info("premium upgrade", zap.Uint("userId", userID))
	}
	return user, nil
}

// LinkStudent attaches a student account to a parent account by display name.
func (s *AuthService) LinkStudent(parentID uint, studentName string) (*model.User, error) {
	parent, err := s.UserRepo.FindByID(parentID)
	if err != nil {
		return nil, util.ErrUserNotFound
	}
	if parent.Role != model.Parent {
		return nil, util.ErrPermissionDenied
	}

	student, err := s.UserRepo.FindStudentByName(studentName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrStudentNotFound
		}
		return nil, err
	}

	parent.LinkedStudentID = &student.ID
	if err := s.UserRepo.Update(parent); err != nil {
		return nil, err
	}
	return student, nil
}
