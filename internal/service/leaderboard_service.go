package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"cyberkids_backend/internal/catalog"
	"cyberkids_backend/internal/model"
	"cyberkids_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// LeaderboardSize is how many rows the board shows.
const LeaderboardSize = 5

type LeaderboardEntry struct {
	Rank          int                       `json:"rank"`
	Name          string                    `json:"name"`
	XP            int                       `json:"xp"`
	Avatar        model.AvatarCustomization `json:"avatarCustomization"`
	Badges        []string                  `json:"badges"`
	IsCurrentUser bool                      `json:"isCurrentUser"`
}

// Rank merges the synthetic roster with the current user, orders by XP descending
// with a stable tie-break (roster order, current user last), and keeps the top
// rows. The current user's row is flagged by identity, not by name+xp match.
func Rank(user *model.User, p *model.UserProgress, roster []catalog.RosterEntry) []LeaderboardEntry {
	entries := make([]LeaderboardEntry, 0, len(roster)+1)
	for _, r := range roster {
		entries = append(entries, LeaderboardEntry{
			Name:   r.Name,
			XP:     r.XP,
			Avatar: r.Avatar,
			Badges: r.Badges,
		})
	}
	entries = append(entries, LeaderboardEntry{
		Name:          user.Name,
		XP:            p.XP,
		Avatar:        p.Avatar,
		Badges:        p.Badges,
		IsCurrentUser: true,
	})

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].XP > entries[j].XP
	})

	if len(entries) > LeaderboardSize {
		entries = entries[:LeaderboardSize]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

// LeaderboardService serves ranked boards with a short-lived redis snapshot so a
// dashboard poll does not recompute on every request.
type LeaderboardService struct {
	Catalog *catalog.Catalog
	Redis   *redis.Client
	TTL     time.Duration
}

func NewLeaderboardService(cat *catalog.Catalog, rdb *redis.Client) *LeaderboardService {
	return &LeaderboardService{
		Catalog: cat,
		Redis:   rdb,
		TTL:     30 * time.Second,
	}
}

func (s *LeaderboardService) GetLeaderboard(ctx context.Context, user *model.User, p *model.UserProgress) []LeaderboardEntry {
	key := fmt.Sprintf("leaderboard:%d:%d", user.ID, p.XP)

	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, key).Bytes(); err == nil {
			var entries []LeaderboardEntry
			if json.Unmarshal(cached, &entries) == nil {
				return entries
			}
		}
	}

	entries := Rank(user, p, s.Catalog.Roster)

	if s.Redis != nil {
		if data, err := json.Marshal(entries); err == nil {
			if err := s.Redis.Set(ctx, key, data, s.TTL).Err(); err != nil {
				logger.Log.Debug("leaderboard cache write failed", zap.Error(err))
			}
		}
	}
	return entries
}
