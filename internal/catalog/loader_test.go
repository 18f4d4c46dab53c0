package catalog

import (
	"strings"
	"testing"

	"cyberkids_backend/internal/model"
)

const validCatalog = `{
	"learningPaths": [{
		"ageGroup": "kid",
		"title": "Guardianes Jr.",
		"modules": [{
			"id": "kid-m1",
			"title": "Identidad",
			"lessons": [
				{"id": "kid-l1-1", "title": "Apodos", "type": "game", "xp": 20,
				 "content": {"type": "nickname-generator", "description": "d"}},
				{"id": "kid-l1-2", "title": "Prueba", "type": "quiz", "xp": 30,
				 "content": [{"question": "q", "options": ["a","b"], "correctAnswer": 1, "explanation": "e", "difficulty": 1}]},
				{"id": "kid-l1-3", "title": "Caso", "type": "practice-case", "xp": 25,
				 "content": {"scenario": "s", "questions": [{"question": "q", "options": ["a","b"], "correctOption": "b", "explanation": "e"}]}}
			]
		}]
	}],
	"badges": {"first_step": {"name": "Primer Paso", "description": "d", "emoji": "x"}},
	"weeklyMission": {
		"id": "wm-1", "title": "t", "description": "d",
		"goal": {"lessonType": "quiz", "count": 3},
		"rewardBadge": "quiz_champion"
	},
	"capstoneLessonId": "kid-l1-2",
	"leaderboardRoster": [{"name": "Capitán Ciber", "xp": 1500}]
}`

func TestParseValidCatalog(t *testing.T) {
	c, err := Parse([]byte(validCatalog))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if p := c.PathFor(model.AgeGroupKid); p == nil || len(p.Modules) != 1 {
		t.Fatalf("kid path = %+v", p)
	}
	if c.PathFor(model.AgeGroupTeen) != nil {
		t.Error("missing path should be nil")
	}

	game := c.LessonByID("kid-l1-1")
	if game == nil || game.Game == nil || game.Game.Type != "nickname-generator" {
		t.Errorf("game lesson payload = %+v", game)
	}
	quiz := c.LessonByID("kid-l1-2")
	if quiz == nil || len(quiz.Quiz) != 1 || quiz.Quiz[0].CorrectAnswer != 1 {
		t.Errorf("quiz lesson payload = %+v", quiz)
	}
	pc := c.LessonByID("kid-l1-3")
	if pc == nil || pc.PracticeCase == nil || len(pc.PracticeCase.Questions) != 1 {
		t.Errorf("practice case payload = %+v", pc)
	}
	if c.LessonByID("nope") != nil {
		t.Error("unknown lesson id should be nil")
	}

	if c.WeeklyMission.Goal.Type != LessonQuiz || c.WeeklyMission.Goal.Count != 3 {
		t.Errorf("weekly mission goal = %+v", c.WeeklyMission.Goal)
	}
}

func TestParseRejectsDefects(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s string) string
		wantErr string
	}{
		{
			"duplicate lesson id",
			func(s string) string { return strings.Replace(s, `"kid-l1-3"`, `"kid-l1-1"`, 1) },
			"duplicate lesson id",
		},
		{
			"unknown age group",
			func(s string) string { return strings.Replace(s, `"ageGroup": "kid"`, `"ageGroup": "adult"`, 1) },
			"unknown age group",
		},
		{
			"negative xp",
			func(s string) string { return strings.Replace(s, `"xp": 20`, `"xp": -5`, 1) },
			"negative xp",
		},
		{
			"mission goal type",
			func(s string) string { return strings.Replace(s, `"lessonType": "quiz"`, `"lessonType": "karaoke"`, 1) },
			"goal lesson type",
		},
		{
			"mission goal count",
			func(s string) string { return strings.Replace(s, `"count": 3`, `"count": 0`, 1) },
			"count must be positive",
		},
		{
			"missing capstone",
			func(s string) string { return strings.Replace(s, `"capstoneLessonId": "kid-l1-2"`, `"capstoneLessonId": "ghost"`, 1) },
			"capstone",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.mutate(validCatalog)))
			if err == nil {
				t.Fatal("defect accepted")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestParseToleratesUnknownLessonType(t *testing.T) {
	doc := strings.Replace(validCatalog,
		`"type": "game", "xp": 20,
				 "content": {"type": "nickname-generator", "description": "d"}`,
		`"type": "hologram", "xp": 20, "content": {"anything": true}`, 1)

	c, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("unknown lesson type rejected: %v", err)
	}
	l := c.LessonByID("kid-l1-1")
	if l == nil || l.Game != nil {
		t.Errorf("unknown type lesson = %+v", l)
	}
}

func TestParseEmptyPaths(t *testing.T) {
	if _, err := Parse([]byte(`{"learningPaths": []}`)); err == nil {
		t.Fatal("catalog without paths accepted")
	}
}

func TestLessonRoundTrip(t *testing.T) {
	c, err := Parse([]byte(validCatalog))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	quiz := c.LessonByID("kid-l1-2")

	data, err := quiz.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	var back Lesson
	if err := back.UnmarshalJSON(data); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	if back.ID != quiz.ID || len(back.Quiz) != len(quiz.Quiz) {
		t.Errorf("round trip lost data: %+v", back)
	}
}
