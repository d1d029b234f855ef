package content

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/doeshing/aimy-go/internal/domain"
)

type stubLauncher struct {
	spawned    []string
	opened     []string
	spawnError error
}

func (s *stubLauncher) LaunchApp(_ context.Context, _ string) error { return nil }

func (s *stubLauncher) RunCommand(_ context.Context, _ string) (int, string, error) {
	return 0, "", nil
}

func (s *stubLauncher) SpawnDetached(path string, _ ...string) (int, error) {
	if s.spawnError != nil {
		return 0, s.spawnError
	}
	s.spawned = append(s.spawned, path)
	return 4321, nil
}

func (s *stubLauncher) OpenPath(path string) error {
	s.opened = append(s.opened, path)
	return nil
}

type stubBrowser struct {
	urls []string
}

func (s *stubBrowser) OpenURL(url string) error {
	s.urls = append(s.urls, url)
	return nil
}

func newOfflineGenerator(t *testing.T) (*Generator, *stubLauncher, *stubBrowser, string) {
	t.Helper()
	dir := t.TempDir()
	saver := NewSaver(domain.ContentSettings{
		PrimaryDir:   filepath.Join(dir, "primary"),
		OrganizedDir: filepath.Join(dir, "organized"),
	})
	launcher := &stubLauncher{}
	browser := &stubBrowser{}
	return NewGenerator(nil, launcher, browser, saver, nil, 0.7), launcher, browser, dir
}

func TestHeuristicAnalysisScoring(t *testing.T) {
	tests := []struct {
		text string
		want domain.ContentType
	}{
		{"create a website for my bakery", domain.ContentHTML},
		{"write a python script for data analysis", domain.ContentPython},
		{"write a note about the meeting", domain.ContentText},
		{"make me something nice", domain.ContentHTML}, // default bucket
	}
	for _, tt := range tests {
		got := HeuristicAnalysis(tt.text, "")
		if got.Type != tt.want {
			t.Errorf("HeuristicAnalysis(%q).Type = %q, want %q", tt.text, got.Type, tt.want)
		}
	}
}

func TestHintOverridesScoring(t *testing.T) {
	got := HeuristicAnalysis("create a website", domain.ContentPython)
	if got.Type != domain.ContentPython {
		t.Errorf("hinted type = %q, want python", got.Type)
	}
}

func TestSanitizeStem(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Create an HTML calculator for me", "create_an_html_calcu"},
		{"  hello world  ", "hello_world"},
		{"!!!???", domain.FallbackFilenameStem},
		{"", domain.FallbackFilenameStem},
	}
	for _, tt := range tests {
		if got := SanitizeStem(tt.in); got != tt.want {
			t.Errorf("SanitizeStem(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuildFilenameShape(t *testing.T) {
	analysis := domain.ContentAnalysis{Type: domain.ContentHTML, Filename: "my_page"}
	name := BuildFilename("ignored", analysis)
	if !strings.HasPrefix(name, "my_page_") || !strings.HasSuffix(name, ".html") {
		t.Errorf("filename = %q, want my_page_<ts>.html", name)
	}
}

func TestGenerateHTMLRoundTrip(t *testing.T) {
	g, _, browser, _ := newOfflineGenerator(t)

	artifact, err := g.Generate(context.Background(), "create a simple calculator website", "", false)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if artifact.Analysis.Type != domain.ContentHTML {
		t.Fatalf("type = %q, want html", artifact.Analysis.Type)
	}

	path := artifact.SavedPath()
	if path == "" {
		t.Fatalf("no successful save: %+v", artifact.Saves)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading artifact: %v", err)
	}
	if !strings.Contains(string(data), "<!DOCTYPE html>") {
		t.Error("artifact body is not an HTML document")
	}
	if artifact.Action != domain.PostBrowser || len(browser.urls) != 1 {
		t.Errorf("post action = %q, browser calls = %d", artifact.Action, len(browser.urls))
	}
}

func TestGenerateServedSkipsBrowser(t *testing.T) {
	g, _, browser, _ := newOfflineGenerator(t)

	artifact, err := g.Generate(context.Background(), "create a web page", "", true)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if artifact.Action != domain.PostServed {
		t.Errorf("action = %q, want served", artifact.Action)
	}
	if artifact.ServePath == "" || len(browser.urls) != 0 {
		t.Errorf("served artifact should expose a retrieval path and not touch the browser")
	}
}

func TestGeneratePythonSpawnsScript(t *testing.T) {
	g, launcher, _, _ := newOfflineGenerator(t)

	artifact, err := g.Generate(context.Background(), "write a python script", "", false)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if artifact.Action != domain.PostExecuted || artifact.ProcessID != 4321 {
		t.Errorf("action = %q pid = %d, want executed/4321", artifact.Action, artifact.ProcessID)
	}
	if len(launcher.spawned) != 1 {
		t.Fatalf("spawn calls = %d, want 1", len(launcher.spawned))
	}
	info, err := os.Stat(launcher.spawned[0])
	if err != nil {
		t.Fatalf("stat script: %v", err)
	}
	if info.Mode().Perm()&0o111 == 0 {
		t.Error("script is not executable")
	}
}

func TestSaveAllRecordsFailures(t *testing.T) {
	dir := t.TempDir()
	blocked := filepath.Join(dir, "blocked")
	// A file where a directory should be forces MkdirAll to fail.
	if err := os.WriteFile(blocked, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	saver := NewSaver(domain.ContentSettings{
		PrimaryDir:   blocked,
		OrganizedDir: filepath.Join(dir, "ok"),
	})
	results := saver.SaveAll("a.txt", "body", false)
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	if results[0].Err == "" {
		t.Error("blocked location should record an error")
	}
	if results[1].Err != "" {
		t.Errorf("healthy location failed: %s", results[1].Err)
	}
}
