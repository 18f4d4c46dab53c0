package service

import (
	"errors"

	"cyberkids_backend/internal/catalog"
	"cyberkids_backend/internal/model"
	"cyberkids_backend/internal/repository"
	"cyberkids_backend/internal/util"

	"gorm.io/gorm"
)

// DashboardService builds the read-only overviews for parent and school accounts.
type DashboardService struct {
	UserRepo     *repository.UserRepository
	ProgressRepo *repository.ProgressRepository
	Catalog      *catalog.Catalog
}

func NewDashboardService(userRepo *repository.UserRepository, progressRepo *repository.ProgressRepository, cat *catalog.Catalog) *DashboardService {
	return &DashboardService{
		UserRepo:     userRepo,
		ProgressRepo: progressRepo,
		Catalog:      cat,
	}
}

type ModuleSummary struct {
	ModuleID         string `json:"moduleId"`
	Title            string `json:"title"`
	CompletedLessons int    `json:"completedLessons"`
	TotalLessons     int    `json:"totalLessons"`
	Completed        bool   `json:"completed"`
}

type StudentOverview struct {
	Name             string          `json:"name"`
	AgeGroup         model.AgeGroup  `json:"ageGroup"`
	XP               int             `json:"xp"`
	Badges           []string        `json:"badges"`
	CompletedLessons int             `json:"completedLessons"`
	SkillEstimate    float64         `json:"skillEstimate"`
	Modules          []ModuleSummary `json:"modules"`
}

// ParentOverview summarizes the linked student's progression.
func (s *DashboardService) ParentOverview(parentID uint) (*StudentOverview, error) {
	parent, err := s.UserRepo.FindByID(parentID)
	if err != nil {
		return nil, util.ErrUserNotFound
	}
	if parent.LinkedStudentID == nil {
		return nil, util.ErrStudentNotLinked
	}

	student, err := s.UserRepo.FindByID(*parent.LinkedStudentID)
	if err != nil {
		return nil, util.ErrStudentNotFound
	}
	return s.studentOverview(student)
}

func (s *DashboardService) studentOverview(student *model.User) (*StudentOverview, error) {
	progress, err := s.ProgressRepo.FindByUserID(student.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Student has not picked an age group yet; show the empty state.
			return &StudentOverview{Name: student.Name, AgeGroup: student.AgeGroup}, nil
		}
		return nil, err
	}

	overview := &StudentOverview{
		Name:             student.Name,
		AgeGroup:         student.AgeGroup,
		XP:               progress.XP,
		Badges:           progress.Badges,
		CompletedLessons: len(progress.CompletedLessons),
		SkillEstimate:    EstimateSkill(progress),
	}

	if path := s.Catalog.PathFor(student.AgeGroup); path != nil {
		for i := range path.Modules {
			m := &path.Modules[i]
			done := 0
			for _, l := range m.Lessons {
				if progress.CompletedLessons.Contains(l.ID) {
					done++
				}
			}
			overview.Modules = append(overview.Modules, ModuleSummary{
				ModuleID:         m.ID,
				Title:            m.Title,
				CompletedLessons: done,
				TotalLessons:     len(m.Lessons),
				Completed:        IsModuleComplete(m, progress),
			})
		}
	}
	return overview, nil
}

type SchoolOverview struct {
	TotalStudents int             `json:"totalStudents"`
	Students      []SchoolStudent `json:"students"`
}

type SchoolStudent struct {
	Name         string         `json:"name"`
	AgeGroup     model.AgeGroup `json:"ageGroup"`
	XP           int            `json:"xp"`
	LastActivity string         `json:"lastActivity"`
}

// Overview lists every student with their XP and last activity.
func (s *DashboardService) SchoolOverviewAll() (*SchoolOverview, error) {
	students, err := s.UserRepo.FindStudents()
	if err != nil {
		return nil, err
	}

	overview := &SchoolOverview{TotalStudents: len(students)}
	for _, st := range students {
		overview.Students = append(overview.Students, SchoolStudent{
			Name:         st.Name,
			AgeGroup:     st.AgeGroup,
			XP:           st.XP,
			LastActivity: st.LastSeen.Format("2006-01-02 15:04"),
		})
	}
	return overview, nil
}
