// Package catalog holds the static learning content: age-tiered paths of modules
// and typed lessons, the badge dictionary, the current weekly mission, and the
// synthetic leaderboard roster. It is loaded once at startup and never mutated.
package catalog

import (
	"encoding/json"
	"fmt"

	"cyberkids_backend/internal/model"
)

type LessonType string

const (
	LessonQuiz         LessonType = "quiz"
	LessonVideo        LessonType = "video"
	LessonGame         LessonType = "game"
	LessonMission      LessonType = "mission"
	LessonPracticeCase LessonType = "practice-case"
)

func (t LessonType) Valid() bool {
	switch t {
	case LessonQuiz, LessonVideo, LessonGame, LessonMission, LessonPracticeCase:
		return true
	}
	return false
}

type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
	Difficulty    int      `json:"difficulty"` // 1..3
}

type VideoContent struct {
	URL string `json:"url"`
}

type GameContent struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

type MissionContent struct {
	Description string `json:"description"`
}

type PracticeCaseQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectOption string   `json:"correctOption"`
	Explanation   string   `json:"explanation"`
}

type PracticeCaseContent struct {
	Scenario  string                 `json:"scenario"`
	Questions []PracticeCaseQuestion `json:"questions"`
}

// Lesson is the atomic unit of content. The payload is a tagged union over the
// lesson type; exactly one of the typed fields is set after decoding.
type Lesson struct {
	ID    string     `json:"id"`
	Title string     `json:"title"`
	Type  LessonType `json:"type"`
	XP    int        `json:"xp"`

	Quiz         []QuizQuestion       `json:"-"`
	Video        *VideoContent        `json:"-"`
	Game         *GameContent         `json:"-"`
	Mission      *MissionContent      `json:"-"`
	PracticeCase *PracticeCaseContent `json:"-"`
}

type lessonJSON struct {
	ID      string          `json:"id"`
	Title   string          `json:"title"`
	Type    LessonType      `json:"type"`
	XP      int             `json:"xp"`
	Content json.RawMessage `json:"content"`
}

func (l *Lesson) UnmarshalJSON(data []byte) error {
	var raw lessonJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	l.ID = raw.ID
	l.Title = raw.Title
	l.Type = raw.Type
	l.XP = raw.XP

	if len(raw.Content) == 0 {
		return nil
	}
	switch raw.Type {
	case LessonQuiz:
		return json.Unmarshal(raw.Content, &l.Quiz)
	case LessonVideo:
		l.Video = &VideoContent{}
		return json.Unmarshal(raw.Content, l.Video)
	case LessonGame:
		l.Game = &GameContent{}
		return json.Unmarshal(raw.Content, l.Game)
	case LessonMission:
		l.Mission = &MissionContent{}
		return json.Unmarshal(raw.Content, l.Mission)
	case LessonPracticeCase:
		l.PracticeCase = &PracticeCaseContent{}
		return json.Unmarshal(raw.Content, l.PracticeCase)
	default:
		// Unknown lesson types are tolerated at load time so a newer catalog
		// does not brick an older server; completion falls back to the generic
		// acknowledge path.
		return nil
	}
}

func (l Lesson) MarshalJSON() ([]byte, error) {
	raw := lessonJSON{ID: l.ID, Title: l.Title, Type: l.Type, XP: l.XP}
	var content interface{}
	switch l.Type {
	case LessonQuiz:
		content = l.Quiz
	case LessonVideo:
		content = l.Video
	case LessonGame:
		content = l.Game
	case LessonMission:
		content = l.Mission
	case LessonPracticeCase:
		content = l.PracticeCase
	}
	if content != nil {
		b, err := json.Marshal(content)
		if err != nil {
			return nil, err
		}
		raw.Content = b
	}
	return json.Marshal(raw)
}

// Module is an ordered group of lessons and the unit of sequential unlock gating.
type Module struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Icon        string   `json:"icon"`
	Color       string   `json:"color"`
	IsPremium   bool     `json:"isPremium,omitempty"`
	Lessons     []Lesson `json:"lessons"`
}

type LearningPath struct {
	AgeGroup model.AgeGroup `json:"ageGroup"`
	Title    string         `json:"title"`
	Modules  []Module       `json:"modules"`
}

type Badge struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Emoji       string `json:"emoji"`
}

type MissionGoal struct {
	Type  LessonType `json:"lessonType"`
	Count int        `json:"count"`
}

// WeeklyMission is the single currently-active mission. Progress counts
// completions of the goal lesson type; reaching Count grants RewardBadge.
type WeeklyMission struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Goal        MissionGoal `json:"goal"`
	RewardBadge string      `json:"rewardBadge"`
}

// RosterEntry is a synthetic leaderboard competitor.
type RosterEntry struct {
	Name   string                    `json:"name"`
	XP     int                       `json:"xp"`
	Avatar model.AvatarCustomization `json:"avatarCustomization"`
	Badges []string                  `json:"badges"`
}

type Catalog struct {
	Paths         []LearningPath   `json:"learningPaths"`
	Badges        map[string]Badge `json:"badges"`
	WeeklyMission WeeklyMission    `json:"weeklyMission"`
	// CapstoneLessonID grants the "protector" badge when completed.
	CapstoneLessonID string        `json:"capstoneLessonId"`
	Roster           []RosterEntry `json:"leaderboardRoster"`

	lessons map[string]*Lesson
	paths   map[model.AgeGroup]*LearningPath
}

// PathFor returns the learning path for an age tier, or nil.
func (c *Catalog) PathFor(group model.AgeGroup) *LearningPath {
	return c.paths[group]
}

// LessonByID returns a lesson from any path, or nil.
func (c *Catalog) LessonByID(id string) *Lesson {
	return c.lessons[id]
}

// index builds the lookup maps and rejects structural defects.
func (c *Catalog) index() error {
	c.lessons = make(map[string]*Lesson)
	c.paths = make(map[model.AgeGroup]*LearningPath)

	if len(c.Paths) == 0 {
		return fmt.Errorf("catalog has no learning paths")
	}
	for i := range c.Paths {
		p := &c.Paths[i]
		if !p.AgeGroup.Valid() {
			return fmt.Errorf("path %d: unknown age group %q", i, p.AgeGroup)
		}
		if _, dup := c.paths[p.AgeGroup]; dup {
			return fmt.Errorf("duplicate learning path for age group %q", p.AgeGroup)
		}
		c.paths[p.AgeGroup] = p

		for j := range p.Modules {
			m := &p.Modules[j]
			if m.ID == "" {
				return fmt.Errorf("path %q: module %d has no id", p.AgeGroup, j)
			}
			for k := range m.Lessons {
				l := &m.Lessons[k]
				if l.ID == "" {
					return fmt.Errorf("module %q: lesson %d has no id", m.ID, k)
				}
				if _, dup := c.lessons[l.ID]; dup {
					return fmt.Errorf("duplicate lesson id %q", l.ID)
				}
				if l.XP < 0 {
					return fmt.Errorf("lesson %q: negative xp", l.ID)
				}
				c.lessons[l.ID] = l
			}
		}
	}

	if c.WeeklyMission.ID != "" {
		if !c.WeeklyMission.Goal.Type.Valid() {
			return fmt.Errorf("weekly mission %q: unknown goal lesson type %q", c.WeeklyMission.ID, c.WeeklyMission.Goal.Type)
		}
		if c.WeeklyMission.Goal.Count <= 0 {
			return fmt.Errorf("weekly mission %q: goal count must be positive", c.WeeklyMission.ID)
		}
		if c.WeeklyMission.RewardBadge == "" {
			return fmt.Errorf("weekly mission %q: no reward badge", c.WeeklyMission.ID)
		}
	}
	if c.CapstoneLessonID != "" && c.lessons[c.CapstoneLessonID] == nil {
		return fmt.Errorf("capstone lesson %q not in catalog", c.CapstoneLessonID)
	}
	return nil
}
