package service

import (
	"testing"

	"cyberkids_backend/internal/catalog"
	"cyberkids_backend/internal/model"
)

func testRoster() []catalog.RosterEntry {
	return []catalog.RosterEntry{
		{Name: "Capitán Ciber", XP: 1500},
		{Name: "Agente Secreta", XP: 1250},
		{Name: "Maestra del Código", XP: 980},
		{Name: "Hacker Ético Jr.", XP: 720},
		{Name: "Exploradora Digital", XP: 450},
	}
}

func TestRankTopFive(t *testing.T) {
	user := &model.User{Name: "Nova"}
	user.ID = 42
	p := freshProgress()
	p.XP = 100

	entries := Rank(user, p, testRoster())

	if len(entries) != LeaderboardSize {
		t.Fatalf("got %d entries, want %d", len(entries), LeaderboardSize)
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].XP > entries[i-1].XP {
			t.Errorf("entries not sorted by XP desc at %d: %d > %d", i, entries[i].XP, entries[i-1].XP)
		}
	}
	for i, e := range entries {
		if e.Rank != i+1 {
			t.Errorf("entry %d has rank %d", i, e.Rank)
		}
		if e.IsCurrentUser {
			t.Errorf("low-XP user should be ranked off the board, found at %d", i)
		}
	}
}

func TestRankFlagsCurrentUser(t *testing.T) {
	user := &model.User{Name: "Nova"}
	p := freshProgress()
	p.XP = 2000

	entries := Rank(user, p, testRoster())

	if !entries[0].IsCurrentUser {
		t.Fatalf("highest-XP user not first: %+v", entries[0])
	}
	flagged := 0
	for _, e := range entries {
		if e.IsCurrentUser {
			flagged++
		}
	}
	if flagged != 1 {
		t.Errorf("%d rows flagged as current user, want 1", flagged)
	}
}

func TestRankTieGoesToRoster(t *testing.T) {
	// Stable sort: on equal XP the roster entry keeps its earlier position and
	// the current user, appended last, sorts after it.
	user := &model.User{Name: "Nova"}
	p := freshProgress()
	p.XP = 980

	entries := Rank(user, p, testRoster())

	var rosterIdx, userIdx int
	for i, e := range entries {
		switch {
		case e.Name == "Maestra del Código":
			rosterIdx = i
		case e.IsCurrentUser:
			userIdx = i
		}
	}
	if userIdx < rosterIdx {
		t.Errorf("current user sorted above tied roster entry: user at %d, roster at %d", userIdx, rosterIdx)
	}
}

func TestRankShortRoster(t *testing.T) {
	user := &model.User{Name: "Solo"}
	p := freshProgress()

	entries := Rank(user, p, nil)
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if !entries[0].IsCurrentUser || entries[0].Rank != 1 {
		t.Errorf("single entry = %+v", entries[0])
	}
}
