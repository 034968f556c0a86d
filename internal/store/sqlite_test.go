package store

import (
	"testing"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCreateAndGetUser(t *testing.T) {
	s := newTestStore(t)

	created, err := s.CreateUser("ana@example.com", "hashed-secret")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if created.ID == 0 {
		t.Error("expected a non-zero user id")
	}

	found, err := s.GetUserByEmail("ana@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if found == nil {
		t.Fatal("expected user to be found")
	}
	if found.PasswordHash != "hashed-secret" {
		t.Errorf("unexpected hash %q", found.PasswordHash)
	}
}

func TestGetUserByEmailNotFound(t *testing.T) {
	s := newTestStore(t)

	found, err := s.GetUserByEmail("ghost@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if found != nil {
		t.Errorf("expected nil for unknown user, got %+v", found)
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.CreateUser("ana@example.com", "h1"); err != nil {
		t.Fatalf("first CreateUser failed: %v", err)
	}
	if _, err := s.CreateUser("ana@example.com", "h2"); err == nil {
		t.Error("expected unique constraint violation for duplicate email")
	}
}

func TestJournalEntryLifecycle(t *testing.T) {
	s := newTestStore(t)

	entry := &JournalEntry{Text: "Walked the old town all morning", Date: "2026-08-30"}
	if err := s.CreateJournalEntry(entry); err != nil {
		t.Fatalf("CreateJournalEntry failed: %v", err)
	}
	if entry.ID == "" {
		t.Fatal("expected an assigned entry id")
	}

	if err := s.UpdateJournalAnalysis(entry.ID, `{"sentiment":"positive"}`); err != nil {
		t.Fatalf("UpdateJournalAnalysis failed: %v", err)
	}

	entries, err := s.ListJournalEntries(10)
	if err != nil {
		t.Fatalf("ListJournalEntries failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(entries))
	}
	if entries[0].AnalysisJSON != `{"sentiment":"positive"}` {
		t.Errorf("analysis not persisted: %q", entries[0].AnalysisJSON)
	}
}

func TestUpdateJournalAnalysisUnknownEntry(t *testing.T) {
	s := newTestStore(t)

	if err := s.UpdateJournalAnalysis("no-such-id", "{}"); err == nil {
		t.Error("expected an error for an unknown entry id")
	}
}

func TestListJournalEntriesRespectsLimit(t *testing.T) {
	s := newTestStore(t)

	for i := 0; i < 5; i++ {
		if err := s.CreateJournalEntry(&JournalEntry{Text: "entry", Date: "2026-08-30"}); err != nil {
			t.Fatalf("CreateJournalEntry failed: %v", err)
		}
	}

	entries, err := s.ListJournalEntries(3)
	if err != nil {
		t.Fatalf("ListJournalEntries failed: %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("expected 3 entries, got %d", len(entries))
	}
}

func TestEventCountsAndAverages(t *testing.T) {
	s := newTestStore(t)

	mustLog := func(user, kind, label string, value float64) {
		t.Helper()
		if err := s.LogEvent(user, kind, label, value); err != nil {
			t.Fatalf("LogEvent failed: %v", err)
		}
	}

	mustLog("ana", "page_visit", "dashboard", 0)
	mustLog("ana", "page_visit", "dashboard", 0)
	mustLog("", "page_visit", "journal", 0)
	mustLog("ana", "load_time", "dashboard", 2)
	mustLog("ana", "load_time", "dashboard", 4)

	counts, err := s.CountEvents("page_visit")
	if err != nil {
		t.Fatalf("CountEvents failed: %v", err)
	}
	if counts["dashboard"] != 2 || counts["journal"] != 1 {
		t.Errorf("unexpected counts: %v", counts)
	}

	averages, err := s.AverageEventValue("load_time")
	if err != nil {
		t.Fatalf("AverageEventValue failed: %v", err)
	}
	if averages["dashboard"] != 3 {
		t.Errorf("expected average 3, got %v", averages["dashboard"])
	}
}

func TestSurveyScores(t *testing.T) {
	s := newTestStore(t)

	if err := s.CreateSurveyScore("sus", 80); err != nil {
		t.Fatalf("CreateSurveyScore failed: %v", err)
	}
	if err := s.CreateSurveyScore("sus", 60); err != nil {
		t.Fatalf("CreateSurveyScore failed: %v", err)
	}

	avg, n, err := s.AverageSurveyScore("sus")
	if err != nil {
		t.Fatalf("AverageSurveyScore failed: %v", err)
	}
	if avg != 70 || n != 2 {
		t.Errorf("expected avg 70 over 2, got %v over %d", avg, n)
	}

	avg, n, err = s.AverageSurveyScore("nps")
	if err != nil {
		t.Fatalf("AverageSurveyScore failed: %v", err)
	}
	if avg != 0 || n != 0 {
		t.Errorf("expected empty average, got %v over %d", avg, n)
	}
}

func TestCreateSurveyScoreRejectsUnknownKind(t *testing.T) {
	s := newTestStore(t)

	if err := s.CreateSurveyScore("magic", 1); err == nil {
		t.Error("expected CHECK constraint violation for unknown kind")
	}
}
