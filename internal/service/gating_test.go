package service

import (
	"fmt"
	"testing"

	"cyberkids_backend/internal/catalog"
	"cyberkids_backend/internal/model"
)

func moduleWith(id string, lessonIDs ...string) catalog.Module {
	m := catalog.Module{ID: id, Title: id}
	for _, lid := range lessonIDs {
		m.Lessons = append(m.Lessons, catalog.Lesson{ID: lid, Type: catalog.LessonQuiz, XP: 10})
	}
	return m
}

func TestIsModuleComplete(t *testing.T) {
	m := moduleWith("m1", "a", "b")
	p := freshProgress()

	if IsModuleComplete(&m, p) {
		t.Error("empty progress completes a module")
	}

	p.CompletedLessons.Add("a")
	if IsModuleComplete(&m, p) {
		t.Error("partial progress completes a module")
	}

	p.CompletedLessons.Add("b")
	if !IsModuleComplete(&m, p) {
		t.Error("module with all lessons done not complete")
	}
}

func TestEmptyModuleNeverComplete(t *testing.T) {
	m := moduleWith("empty")
	p := freshProgress()
	if IsModuleComplete(&m, p) {
		t.Error("module with no lessons reported complete")
	}
}

func TestIsModuleLocked(t *testing.T) {
	modules := []catalog.Module{
		moduleWith("m1", "a"),
		moduleWith("m2", "b"),
		moduleWith("m3", "c"),
	}
	p := freshProgress()

	if IsModuleLocked(modules, 0, p) {
		t.Error("first module locked")
	}
	if !IsModuleLocked(modules, 1, p) {
		t.Error("second module open while first incomplete")
	}

	p.CompletedLessons.Add("a")
	if IsModuleLocked(modules, 1, p) {
		t.Error("second module locked after first completed")
	}
	// Only the immediate predecessor matters.
	if !IsModuleLocked(modules, 2, p) {
		t.Error("third module open while second incomplete")
	}
}

func TestEmptyModuleBlocksSuccessor(t *testing.T) {
	modules := []catalog.Module{
		moduleWith("m1", "a"),
		moduleWith("empty"),
		moduleWith("m3", "c"),
	}
	p := freshProgress()
	p.CompletedLessons.Add("a")

	if !IsModuleLocked(modules, 2, p) {
		t.Error("empty predecessor should keep its successor locked")
	}
}

func TestPremiumGatingIndependent(t *testing.T) {
	tests := []struct {
		modulePremium bool
		userPremium   bool
		want          bool
	}{
		{false, false, false},
		{false, true, false},
		{true, false, true},
		{true, true, false},
	}
	for _, tt := range tests {
		name := fmt.Sprintf("module=%v/user=%v", tt.modulePremium, tt.userPremium)
		t.Run(name, func(t *testing.T) {
			m := catalog.Module{ID: "m", IsPremium: tt.modulePremium}
			u := &model.User{IsPremium: tt.userPremium}
			if got := IsModulePremiumLocked(&m, u); got != tt.want {
				t.Errorf("IsModulePremiumLocked = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestModuleStates(t *testing.T) {
	path := &catalog.LearningPath{
		AgeGroup: model.AgeGroupKid,
		Modules: []catalog.Module{
			moduleWith("m1", "a", "b"),
			moduleWith("m2", "c"),
		},
	}
	path.Modules[1].IsPremium = true

	p := freshProgress()
	p.CompletedLessons.Add("a")
	user := &model.User{IsPremium: false}

	states := ModuleStates(path, user, p)
	if len(states) != 2 {
		t.Fatalf("got %d states, want 2", len(states))
	}

	first := states[0]
	if first.Locked || first.Completed || first.CompletedLessons != 1 || first.TotalLessons != 2 {
		t.Errorf("first module state = %+v", first)
	}

	second := states[1]
	if !second.Locked {
		t.Error("second module should be locked behind incomplete first")
	}
	if !second.PremiumLocked {
		t.Error("premium module should be premium-locked for free user")
	}
}
