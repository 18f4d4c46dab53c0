package service

import (
	"cyberkids_backend/internal/catalog"
	"cyberkids_backend/internal/model"
)

// Module gating is two independent predicates. Sequential gating depends on the
// predecessor's completion; premium gating depends only on account flags. A module
// is accessible when neither predicate locks it.

// IsModuleComplete reports whether every lesson of the module is completed. A
// module with no lessons is never complete, so an empty placeholder can not
// unlock its successor.
func IsModuleComplete(m *catalog.Module, p *model.UserProgress) bool {
	if len(m.Lessons) == 0 {
		return false
	}
	for _, l := range m.Lessons {
		if !p.CompletedLessons.Contains(l.ID) {
			return false
		}
	}
	return true
}

// IsModuleLocked applies sequential gating: the first module is never locked, and
// each later module is locked while its immediate predecessor is incomplete.
func IsModuleLocked(modules []catalog.Module, index int, p *model.UserProgress) bool {
	if index <= 0 || index >= len(modules) {
		return false
	}
	return !IsModuleComplete(&modules[index-1], p)
}

// IsModulePremiumLocked applies premium gating.
func IsModulePremiumLocked(m *catalog.Module, user *model.User) bool {
	return m.IsPremium && !user.IsPremium
}

// ModuleState is the per-module view the dashboard renders.
type ModuleState struct {
	Module           *catalog.Module `json:"module"`
	Completed        bool            `json:"completed"`
	Locked           bool            `json:"locked"`
	PremiumLocked    bool            `json:"premiumLocked"`
	CompletedLessons int             `json:"completedLessons"`
	TotalLessons     int             `json:"totalLessons"`
}

// ModuleStates derives lock and completion state for every module of a path.
func ModuleStates(path *catalog.LearningPath, user *model.User, p *model.UserProgress) []ModuleState {
	states := make([]ModuleState, len(path.Modules))
	for i := range path.Modules {
		m := &path.Modules[i]
		done := 0
		for _, l := range m.Lessons {
			if p.CompletedLessons.Contains(l.ID) {
				done++
			}
		}
		states[i] = ModuleState{
			Module:           m,
			Completed:        IsModuleComplete(m, p),
			Locked:           IsModuleLocked(path.Modules, i, p),
			PremiumLocked:    IsModulePremiumLocked(m, user),
			CompletedLessons: done,
			TotalLessons:     len(m.Lessons),
		}
	}
	return states
}
