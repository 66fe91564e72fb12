package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/tourney/internal/adapters/sqlite"
	apperrors "github.com/example/tourney/internal/errors"
	"github.com/example/tourney/internal/ports/secondary"
)

func TestCatchRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewCatchRepository(db)
	ctx := context.Background()
	seedTeam(t, db, "team-1", "001", 0)

	c := &secondary.CatchRecord{ID: "catch-1", TeamID: "team-1", Member: "Ana", SpeciesID: "dorado", SizeCm: 61.5, Points: 100}
	if err := repo.Create(ctx, c); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if c.CaughtAt.IsZero() {
		t.Error("expected CaughtAt assigned by the store")
	}

	got, err := repo.GetByID(ctx, "catch-1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.TeamID != "team-1" || got.Member != "Ana" || got.SizeCm != 61.5 || got.Points != 100 {
		t.Errorf("unexpected catch: %+v", got)
	}
}

func TestCatchRepository_GetByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewCatchRepository(db)

	_, err := repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, apperrors.ErrCatchNotFound) {
		t.Errorf("expected CATCH_NOT_FOUND, got %v", err)
	}
}

func TestCatchRepository_List_NewestFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewCatchRepository(db)
	ctx := context.Background()
	seedTeam(t, db, "team-1", "001", 0)
	seedTeam(t, db, "team-2", "002", 0)

	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	for i, id := range []string{"c1", "c2", "c3"} {
		err := repo.Create(ctx, &secondary.CatchRecord{
			ID: id, TeamID: "team-1", Member: "Ana", SpeciesID: "boga", SizeCm: 30, Points: 10,
			CaughtAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("Create %s failed: %v", id, err)
		}
	}
	seedCatch(t, db, "other", "team-2", "boga", 10)

	catches, err := repo.List(ctx, secondary.CatchFilters{TeamID: "team-1"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(catches) != 3 {
		t.Fatalf("expected 3 catches, got %d", len(catches))
	}
	if catches[0].ID != "c3" || catches[2].ID != "c1" {
		t.Errorf("expected newest first, got %s..%s", catches[0].ID, catches[2].ID)
	}

	limited, _ := repo.List(ctx, secondary.CatchFilters{Limit: 2})
	if len(limited) != 2 {
		t.Errorf("expected limit 2, got %d", len(limited))
	}
}

func TestCatchRepository_ExplicitAndStoreTimestampsSortTogether(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewCatchRepository(db)
	ctx := context.Background()
	seedTeam(t, db, "team-1", "001", 0)

	create := func(id string, at time.Time) {
		t.Helper()
		err := repo.Create(ctx, &secondary.CatchRecord{
			ID: id, TeamID: "team-1", Member: "Ana", SpeciesID: "boga", SizeCm: 30, Points: 10, CaughtAt: at,
		})
		if err != nil {
			t.Fatalf("Create %s failed: %v", id, err)
		}
	}
	create("old", time.Date(2000, 1, 1, 12, 0, 0, 0, time.FixedZone("PYT", -4*3600)))
	create("now", time.Time{})
	create("future", time.Date(2099, 1, 1, 0, 0, 0, 0, time.UTC))

	for _, id := range []string{"old", "now", "future"} {
		var raw string
		if err := db.QueryRow("SELECT caught_at || '' FROM catches WHERE id = ?", id).Scan(&raw); err != nil {
			t.Fatalf("failed to read raw timestamp for %s: %v", id, err)
		}
		if len(raw) != len("2006-01-02 15:04:05.000") || raw[10] != ' ' {
			t.Errorf("%s: unexpected stored timestamp format %q", id, raw)
		}
	}

	catches, err := repo.List(ctx, secondary.CatchFilters{TeamID: "team-1"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(catches) != 3 {
		t.Fatalf("expected 3 catches, got %d", len(catches))
	}
	if catches[0].ID != "future" || catches[1].ID != "now" || catches[2].ID != "old" {
		t.Errorf("expected future, now, old; got %s, %s, %s", catches[0].ID, catches[1].ID, catches[2].ID)
	}

	old, err := repo.GetByID(ctx, "old")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if want := time.Date(2000, 1, 1, 16, 0, 0, 0, time.UTC); !old.CaughtAt.Equal(want) {
		t.Errorf("expected %v, got %v", want, old.CaughtAt)
	}
}

func TestCatchRepository_CountAndSum(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewCatchRepository(db)
	ctx := context.Background()
	seedTeam(t, db, "team-1", "001", 0)
	seedCatch(t, db, "c1", "team-1", "dorado", 100)
	seedCatch(t, db, "c2", "team-1", "dorado", 80)
	seedCatch(t, db, "c3", "team-1", "boga", 30)

	count, err := repo.CountBySpecies(ctx, "team-1", "dorado")
	if err != nil {
		t.Fatalf("CountBySpecies failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 dorado, got %d", count)
	}

	sum, err := repo.SumPoints(ctx, "team-1")
	if err != nil {
		t.Fatalf("SumPoints failed: %v", err)
	}
	if sum != 210 {
		t.Errorf("expected 210, got %d", sum)
	}

	empty, _ := repo.SumPoints(ctx, "nobody")
	if empty != 0 {
		t.Errorf("expected 0 for team without catches, got %d", empty)
	}
}

func TestCatchRepository_DeleteAndDeleteByTeam(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewCatchRepository(db)
	ctx := context.Background()
	seedTeam(t, db, "team-1", "001", 0)
	seedCatch(t, db, "c1", "team-1", "dorado", 100)
	seedCatch(t, db, "c2", "team-1", "boga", 30)
	seedCatch(t, db, "c3", "team-1", "boga", 20)

	if err := repo.Delete(ctx, "c1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := repo.Delete(ctx, "c1"); !errors.Is(err, apperrors.ErrCatchNotFound) {
		t.Errorf("expected CATCH_NOT_FOUND on second delete, got %v", err)
	}

	removed, err := repo.DeleteByTeam(ctx, "team-1")
	if err != nil {
		t.Fatalf("DeleteByTeam failed: %v", err)
	}
	if removed != 2 {
		t.Errorf("expected 2 removed, got %d", removed)
	}
}

func TestCatchRepository_ListOrphans(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewCatchRepository(db)
	seedTeam(t, db, "team-1", "001", 0)
	seedCatch(t, db, "kept", "team-1", "boga", 10)
	seedCatch(t, db, "orphan", "team-gone", "boga", 15)

	orphans, err := repo.ListOrphans(context.Background())
	if err != nil {
		t.Fatalf("ListOrphans failed: %v", err)
	}
	if len(orphans) != 1 || orphans[0].ID != "orphan" {
		t.Errorf("expected only the orphan catch, got %+v", orphans)
	}
}
