package service

import (
	"fmt"
	"testing"

	"cyberkids_backend/internal/catalog"
	"cyberkids_backend/internal/model"
)

func TestEstimateSkillDefault(t *testing.T) {
	p := freshProgress()
	if got := EstimateSkill(p); got != DefaultSkill {
		t.Errorf("EstimateSkill with no history = %v, want %v", got, DefaultSkill)
	}
}

func TestEstimateSkillMean(t *testing.T) {
	p := freshProgress()
	p.Performance = model.PerformanceMap{
		"a": {Score: 0.4},
		"b": {Score: 0.8},
	}
	if got := EstimateSkill(p); got != 0.6 {
		t.Errorf("EstimateSkill = %v, want 0.6", got)
	}
}

func TestDifficultyThreshold(t *testing.T) {
	tests := []struct {
		skill float64
		want  int
	}{
		{0.0, 1},
		{0.49, 1},
		{0.5, 2},
		{0.79, 2},
		{0.8, 3},
		{1.0, 3},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%.2f", tt.skill), func(t *testing.T) {
			if got := DifficultyThreshold(tt.skill); got != tt.want {
				t.Errorf("DifficultyThreshold(%v) = %d, want %d", tt.skill, got, tt.want)
			}
		})
	}
}

func TestSelectGameTier(t *testing.T) {
	tests := []struct {
		skill float64
		want  GameTier
	}{
		{0.0, GameTierEasy},
		{0.5, GameTierEasy},
		{0.51, GameTierMedium},
		{0.75, GameTierMedium},
		{0.76, GameTierHard},
		{1.0, GameTierHard},
	}
	for _, tt := range tests {
		t.Run(string(tt.want), func(t *testing.T) {
			if got := SelectGameTier(tt.skill); got != tt.want {
				t.Errorf("SelectGameTier(%v) = %v, want %v", tt.skill, got, tt.want)
			}
		})
	}
}

func bankWithDifficulties(difficulties ...int) []catalog.QuizQuestion {
	bank := make([]catalog.QuizQuestion, len(difficulties))
	for i, d := range difficulties {
		bank[i] = catalog.QuizQuestion{Question: fmt.Sprintf("q%d", i), Difficulty: d}
	}
	return bank
}

func TestSelectQuizQuestionsFilters(t *testing.T) {
	s := NewSkillService(1)
	p := freshProgress() // default skill 0.3, threshold 1

	got := s.SelectQuizQuestions(bankWithDifficulties(1, 1, 2, 3), p)
	if len(got) != 2 {
		t.Fatalf("got %d questions, want 2", len(got))
	}
	for _, q := range got {
		if q.Difficulty > 1 {
			t.Errorf("question above threshold leaked through: difficulty %d", q.Difficulty)
		}
	}
}

func TestSelectQuizQuestionsFallback(t *testing.T) {
	s := NewSkillService(1)
	p := freshProgress()

	// Every question is above the threshold; the whole bank is used instead.
	got := s.SelectQuizQuestions(bankWithDifficulties(3, 3, 2), p)
	if len(got) != 3 {
		t.Errorf("fallback returned %d questions, want the whole bank (3)", len(got))
	}
}

func TestSelectQuizQuestionsTruncates(t *testing.T) {
	s := NewSkillService(1)
	p := freshProgress()

	diffs := make([]int, 25)
	for i := range diffs {
		diffs[i] = 1
	}
	got := s.SelectQuizQuestions(bankWithDifficulties(diffs...), p)
	if len(got) != MaxQuizQuestions {
		t.Errorf("got %d questions, want %d", len(got), MaxQuizQuestions)
	}
}

func TestSelectQuizQuestionsEmptyBank(t *testing.T) {
	s := NewSkillService(1)
	if got := s.SelectQuizQuestions(nil, freshProgress()); got != nil {
		t.Errorf("empty bank returned %v", got)
	}
}
