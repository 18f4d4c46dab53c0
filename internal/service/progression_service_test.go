package service

import (
	"testing"

	"cyberkids_backend/internal/catalog"
	"cyberkids_backend/internal/model"
)

func quizLesson(id string, xp int) *catalog.Lesson {
	return &catalog.Lesson{ID: id, Title: id, Type: catalog.LessonQuiz, XP: xp}
}

func gameLesson(id string, xp int) *catalog.Lesson {
	return &catalog.Lesson{ID: id, Title: id, Type: catalog.LessonGame, XP: xp}
}

func testMission() *catalog.WeeklyMission {
	return &catalog.WeeklyMission{
		ID:          "wm-quiz-3",
		Title:       "Quiz marathon",
		Goal:        catalog.MissionGoal{Type: catalog.LessonQuiz, Count: 3},
		RewardBadge: "quiz_champion",
	}
}

func freshProgress() *model.UserProgress {
	return model.NewUserProgress(1, model.AvatarCustomization{})
}

func TestApplyCompletionFirstLesson(t *testing.T) {
	p := freshProgress()
	lesson := gameLesson("kid-l1-1", 20)

	res := ApplyCompletion(p, lesson, testMission(), "tween-l2-10", model.Performance{Score: 0.9, Time: 30})

	if res.AlreadyCompleted {
		t.Fatal("first completion reported as already completed")
	}
	if res.XPEarned != 20 || p.XP != 20 {
		t.Errorf("xp = %d (earned %d), want 20", p.XP, res.XPEarned)
	}
	if !p.CompletedLessons.Contains("kid-l1-1") {
		t.Error("lesson not in completed set")
	}
	if got := p.Performance["kid-l1-1"]; got.Score != 0.9 || got.Time != 30 {
		t.Errorf("performance = %+v, want {0.9 30}", got)
	}
	if !p.Badges.Contains(BadgeFirstStep) {
		t.Error("first_step badge not granted on first completion")
	}
	if len(res.AwardedBadges) != 1 || res.AwardedBadges[0] != BadgeFirstStep {
		t.Errorf("awarded badges = %v, want [first_step]", res.AwardedBadges)
	}
}

func TestApplyCompletionIsIdempotent(t *testing.T) {
	p := freshProgress()
	lesson := quizLesson("kid-l1-2", 30)
	mission := testMission()

	ApplyCompletion(p, lesson, mission, "", model.Performance{Score: 0.5})

	xp := p.XP
	badges := len(p.Badges)
	missionCount := p.WeeklyMissionProgress[mission.ID]
	perf := p.Performance["kid-l1-2"]

	res := ApplyCompletion(p, lesson, mission, "", model.Performance{Score: 1.0, Time: 99})

	if !res.AlreadyCompleted {
		t.Fatal("re-completion not flagged")
	}
	if res.XPEarned != 0 || len(res.AwardedBadges) != 0 || res.MissionProgress != 0 {
		t.Errorf("re-completion reported side effects: %+v", res)
	}
	if p.XP != xp {
		t.Errorf("xp changed on re-completion: %d -> %d", xp, p.XP)
	}
	if len(p.Badges) != badges {
		t.Error("badges changed on re-completion")
	}
	if p.WeeklyMissionProgress[mission.ID] != missionCount {
		t.Error("mission counter changed on re-completion")
	}
	if p.Performance["kid-l1-2"] != perf {
		t.Error("recorded performance overwritten on re-completion")
	}
}

func TestApplyCompletionMissionCounting(t *testing.T) {
	p := freshProgress()
	mission := testMission()

	// A non-matching lesson type never advances the counter.
	ApplyCompletion(p, gameLesson("g1", 20), mission, "", model.Performance{})
	if p.WeeklyMissionProgress[mission.ID] != 0 {
		t.Fatalf("game completion advanced a quiz mission: %d", p.WeeklyMissionProgress[mission.ID])
	}

	ApplyCompletion(p, quizLesson("q1", 30), mission, "", model.Performance{})
	ApplyCompletion(p, quizLesson("q2", 30), mission, "", model.Performance{})
	if p.Badges.Contains(mission.RewardBadge) {
		t.Fatal("reward granted before goal count reached")
	}

	res := ApplyCompletion(p, quizLesson("q3", 30), mission, "", model.Performance{})
	if p.WeeklyMissionProgress[mission.ID] != 3 {
		t.Fatalf("mission counter = %d, want 3", p.WeeklyMissionProgress[mission.ID])
	}
	if !p.Badges.Contains(mission.RewardBadge) {
		t.Fatal("reward badge not granted at goal count")
	}
	found := false
	for _, b := range res.AwardedBadges {
		if b == mission.RewardBadge {
			found = true
		}
	}
	if !found {
		t.Errorf("awarded badges = %v, missing %s", res.AwardedBadges, mission.RewardBadge)
	}

	// Once the reward is held the counter saturates.
	ApplyCompletion(p, quizLesson("q4", 30), mission, "", model.Performance{})
	if p.WeeklyMissionProgress[mission.ID] != 3 {
		t.Errorf("counter advanced past goal after reward: %d", p.WeeklyMissionProgress[mission.ID])
	}
}

func TestApplyCompletionCapstoneBadge(t *testing.T) {
	p := freshProgress()
	lesson := quizLesson("tween-l2-10", 50)

	res := ApplyCompletion(p, lesson, nil, "tween-l2-10", model.Performance{Score: 1})

	if !p.Badges.Contains(BadgeProtector) {
		t.Fatal("protector badge not granted on capstone completion")
	}
	if !p.Badges.Contains(BadgeFirstStep) {
		t.Fatal("first_step should also be granted when capstone is the first lesson")
	}
	if len(res.AwardedBadges) != 2 {
		t.Errorf("awarded badges = %v, want first_step and protector", res.AwardedBadges)
	}
}

func TestApplyCompletionNoCapstoneConfigured(t *testing.T) {
	p := freshProgress()
	ApplyCompletion(p, quizLesson("any", 10), nil, "", model.Performance{})
	if p.Badges.Contains(BadgeProtector) {
		t.Error("protector granted without a configured capstone")
	}
}

func TestRecomputeXP(t *testing.T) {
	cat, err := catalog.Parse([]byte(`{
		"learningPaths": [{
			"ageGroup": "kid",
			"title": "t",
			"modules": [{
				"id": "m1",
				"title": "m",
				"lessons": [
					{"id": "a", "title": "a", "type": "quiz", "xp": 30, "content": []},
					{"id": "b", "title": "b", "type": "game", "xp": 20}
				]
			}]
		}]
	}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	p := freshProgress()
	p.CompletedLessons = model.StringSet{"a", "b", "removed-lesson"}
	p.XP = 50

	if got := RecomputeXP(p, cat); got != 50 {
		t.Errorf("RecomputeXP = %d, want 50 (removed lessons contribute nothing)", got)
	}
}

func TestUsesPremiumCosmetics(t *testing.T) {
	tests := []struct {
		name string
		av   model.AvatarCustomization
		want bool
	}{
		{"plain", model.AvatarCustomization{Headwear: "hat", Eyewear: "glasses"}, false},
		{"crown", model.AvatarCustomization{Headwear: "crown"}, true},
		{"monocle", model.AvatarCustomization{Eyewear: "monocle"}, true},
		{"none", model.AvatarCustomization{Headwear: "none", Eyewear: "none"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := usesPremiumCosmetics(tt.av); got != tt.want {
				t.Errorf("usesPremiumCosmetics(%+v) = %v, want %v", tt.av, got, tt.want)
			}
		})
	}
}
