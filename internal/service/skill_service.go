package service

import (
	"math/rand"
	"sync"

	"cyberkids_backend/internal/catalog"
	"cyberkids_backend/internal/model"
)

// DefaultSkill is assumed for users with no recorded performance.
const DefaultSkill = 0.3

// MaxQuizQuestions caps one quiz round.
const MaxQuizQuestions = 10

// EstimateSkill is the rolling skill signal: the mean of all recorded performance
// scores, or DefaultSkill when there is no history.
func EstimateSkill(p *model.UserProgress) float64 {
	if len(p.Performance) == 0 {
		return DefaultSkill
	}
	total := 0.0
	for _, perf := range p.Performance {
		total += perf.Score
	}
	return total / float64(len(p.Performance))
}

// DifficultyThreshold maps a skill estimate to the highest eligible question
// difficulty.
func DifficultyThreshold(skill float64) int {
	switch {
	case skill >= 0.8:
		return 3
	case skill >= 0.5:
		return 2
	default:
		return 1
	}
}

type GameTier string

const (
	GameTierEasy   GameTier = "easy"
	GameTierMedium GameTier = "medium"
	GameTierHard   GameTier = "hard"
)

// SelectGameTier picks the scenario tier for game lessons.
func SelectGameTier(skill float64) GameTier {
	switch {
	case skill > 0.75:
		return GameTierHard
	case skill > 0.5:
		return GameTierMedium
	default:
		return GameTierEasy
	}
}

// SkillService selects adaptive quiz questions and game tiers.
type SkillService struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewSkillService(seed int64) *SkillService {
	return &SkillService{rng: rand.New(rand.NewSource(seed))}
}

// SelectQuizQuestions filters the bank to the user's difficulty threshold,
// shuffles, and truncates to MaxQuizQuestions. When the filter empties the pool
// the whole bank is used instead, so a non-empty bank never yields an empty quiz.
func (s *SkillService) SelectQuizQuestions(bank []catalog.QuizQuestion, p *model.UserProgress) []catalog.QuizQuestion {
	if len(bank) == 0 {
		return nil
	}

	threshold := DifficultyThreshold(EstimateSkill(p))

	eligible := make([]catalog.QuizQuestion, 0, len(bank))
	for _, q := range bank {
		if q.Difficulty <= threshold {
			eligible = append(eligible, q)
		}
	}
	if len(eligible) == 0 {
		eligible = append(eligible, bank...)
	}

	s.mu.Lock()
	s.rng.Shuffle(len(eligible), func(i, j int) {
		eligible[i], eligible[j] = eligible[j], eligible[i]
	})
	s.mu.Unlock()

	if len(eligible) > MaxQuizQuestions {
		eligible = eligible[:MaxQuizQuestions]
	}
	return eligible
}
