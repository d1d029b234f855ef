package memory

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/doeshing/aimy-go/internal/domain"
)

func TestContextLogStaysBounded(t *testing.T) {
	s := NewStore()
	for i := 0; i < 100; i++ {
		s.Append(domain.ContextEntry{UserInput: fmt.Sprintf("input %d", i)})
		if got := len(s.Recent(0)); got > domain.ContextCap {
			t.Fatalf("context log grew to %d, cap is %d", got, domain.ContextCap)
		}
	}
	recent := s.Recent(0)
	// After the last trim the newest entry is always retained.
	if last := recent[len(recent)-1]; last.UserInput != "input 99" {
		t.Errorf("newest entry = %q, want %q", last.UserInput, "input 99")
	}
}

func TestContextTrimKeepsNewest(t *testing.T) {
	s := NewStore()
	for i := 0; i <= domain.ContextCap; i++ {
		s.Append(domain.ContextEntry{UserInput: fmt.Sprintf("input %d", i)})
	}
	recent := s.Recent(0)
	if len(recent) != domain.ContextKeep {
		t.Fatalf("after trim len = %d, want %d", len(recent), domain.ContextKeep)
	}
	want := fmt.Sprintf("input %d", domain.ContextCap)
	if recent[len(recent)-1].UserInput != want {
		t.Errorf("newest after trim = %q, want %q", recent[len(recent)-1].UserInput, want)
	}
}

func TestPatternLogStaysBounded(t *testing.T) {
	s := NewStore()
	const input = "open the calculator"
	for i := 0; i < 50; i++ {
		s.Record(input, domain.InteractionSignal{IntentConfidence: float64(i)})
		if got := len(s.Signals(input)); got > domain.PatternCap {
			t.Fatalf("pattern list grew to %d, cap is %d", got, domain.PatternCap)
		}
	}
	signals := s.Signals(input)
	if len(signals) == 0 || signals[len(signals)-1].IntentConfidence != 49 {
		t.Errorf("newest signal missing after trims: %+v", signals)
	}
}

func TestPatternKeyPrefix(t *testing.T) {
	long := strings.Repeat("A", 80)
	key := PatternKey(long)
	if len(key) != domain.PatternPrefixLen {
		t.Errorf("key length = %d, want %d", len(key), domain.PatternPrefixLen)
	}
	if key != strings.ToLower(long)[:domain.PatternPrefixLen] {
		t.Errorf("key is not the lower-cased prefix: %q", key)
	}
	if PatternKey("  Hello  ") != "hello" {
		t.Errorf("key should trim and lower: %q", PatternKey("  Hello  "))
	}
}

func TestSQLiteRoundTrip(t *testing.T) {
	repo := NewSQLiteRepository(filepath.Join(t.TempDir(), "interactions.db"))

	rec := domain.InteractionRecord{
		Timestamp: time.Now().UTC().Truncate(time.Second),
		RequestID: "req-1",
		Input:     "open safari",
		Approach:  domain.ApproachAppLaunch,
		Type:      domain.ResultAppLaunch,
		Success:   true,
		Message:   "Opened Safari",
	}
	if err := repo.Save(rec); err != nil {
		t.Fatalf("Save: %v", err)
	}

	records, err := repo.Records(10, "")
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	if diff := cmp.Diff(rec, records[0]); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}

	if err := repo.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	records, err = repo.Records(0, "")
	if err != nil {
		t.Fatalf("Records after clear: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("records after clear = %d, want 0", len(records))
	}
}

func TestSQLiteSearch(t *testing.T) {
	repo := NewSQLiteRepository(filepath.Join(t.TempDir(), "interactions.db"))
	inputs := []string{"open safari", "calculate 2 + 2", "open notes"}
	for i, input := range inputs {
		err := repo.Save(domain.InteractionRecord{
			Timestamp: time.Now().Add(time.Duration(i) * time.Second),
			RequestID: fmt.Sprintf("req-%d", i),
			Input:     input,
		})
		if err != nil {
			t.Fatal(err)
		}
	}
	records, err := repo.Records(0, "open")
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Errorf("search hits = %d, want 2", len(records))
	}
}
