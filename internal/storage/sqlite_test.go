package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveScore("bubble2048", score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("other", 500); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("bubble2048", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	want := []int{200, 100, 50}
	for i, w := range want {
		if scores[i].Score != w {
			t.Errorf("scores[%d] = %d, want %d", i, scores[i].Score, w)
		}
		if scores[i].RunID == "" {
			t.Errorf("scores[%d] has no run id", i)
		}
	}
	if scores[0].RunID == scores[1].RunID {
		t.Error("run ids should be unique")
	}
}

func TestStoreSaveRun(t *testing.T) {
	store := openTestStore(t)

	_, err := store.SaveRun(ScoreEntry{RunID: "run-1", GameID: "bubble2048", Score: 3000, MaxTile: 256, Moves: 180})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	scores, err := store.AllScores("bubble2048")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("Expected 1 run, got %d", len(scores))
	}
	got := scores[0]
	if got.RunID != "run-1" || got.MaxTile != 256 || got.Moves != 180 {
		t.Errorf("run = %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Error("created_at should be parsed")
	}

	if _, err := store.SaveRun(ScoreEntry{RunID: "run-1", GameID: "bubble2048", Score: 1}); err == nil {
		t.Error("duplicate run id should fail")
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := range 5 {
		store.SaveScore("test", (i+1)*100)
	}

	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}

	all, _ := store.AllScores("test")
	if len(all) != 5 {
		t.Errorf("AllScores() returned %d, want 5", len(all))
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("bubble2048")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveScore("bubble2048", 100)
	store.SaveScore("bubble2048", 300)
	store.SaveScore("bubble2048", 200)

	high, err = store.HighScore("bubble2048")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreBestScoreMonotonic(t *testing.T) {
	store := openTestStore(t)

	best, err := store.BestScore("bubble2048")
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if best != 0 {
		t.Errorf("initial best = %d, want 0", best)
	}

	steps := []struct {
		save int
		want int
	}{
		{1200, 1200},
		{800, 1200},
		{1200, 1200},
		{5000, 5000},
	}
	for _, s := range steps {
		if err := store.SaveBestScore("bubble2048", s.save); err != nil {
			t.Fatalf("SaveBestScore(%d) failed: %v", s.save, err)
		}
		got, err := store.BestScore("bubble2048")
		if err != nil {
			t.Fatalf("BestScore() failed: %v", err)
		}
		if got != s.want {
			t.Errorf("after saving %d best = %d, want %d", s.save, got, s.want)
		}
	}

	other, _ := store.BestScore("other")
	if other != 0 {
		t.Errorf("best scores leaked across games: %d", other)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("bubble2048", 100)
	store.SaveScore("bubble2048", 200)
	store.SaveBestScore("bubble2048", 200)
	store.SaveScore("other", 300)

	if err := store.ClearScores("bubble2048"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	scores, _ := store.TopScores("bubble2048", 10)
	if len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
	if best, _ := store.BestScore("bubble2048"); best != 0 {
		t.Errorf("best after clear = %d, want 0", best)
	}

	other, _ := store.TopScores("other", 10)
	if len(other) != 1 {
		t.Error("other game's scores should not be affected")
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.GetGameStats("bubble2048")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", stats)
	}

	store.SaveRun(ScoreEntry{GameID: "bubble2048", Score: 100, MaxTile: 16})
	store.SaveRun(ScoreEntry{GameID: "bubble2048", Score: 300, MaxTile: 64})

	stats, err = store.GetGameStats("bubble2048")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 300 || stats.BestTile != 64 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.AvgScore != 200 || stats.TotalScore != 400 {
		t.Errorf("avg %v total %d, want 200 and 400", stats.AvgScore, stats.TotalScore)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("last played should be set")
	}
}
