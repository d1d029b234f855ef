package content

import (
	"os"
	"path/filepath"

	"github.com/doeshing/aimy-go/internal/domain"
)

// Saver writes artifacts to the configured role-tagged locations.
// Directories are created on demand; a failure in one location never stops
// the others, and every attempt is recorded.
type Saver struct {
	locations []location
}

type location struct {
	role domain.SaveRole
	dir  string
}

// NewSaver builds a saver from the content settings. Empty directories are
// skipped, so a minimal config with only a primary dir still works.
func NewSaver(settings domain.ContentSettings) *Saver {
	s := &Saver{}
	add := func(role domain.SaveRole, dir string) {
		if dir != "" {
			s.locations = append(s.locations, location{role: role, dir: dir})
		}
	}
	add(domain.SavePrimary, settings.PrimaryDir)
	add(domain.SaveOrganized, settings.OrganizedDir)
	add(domain.SaveOther, settings.ExtraDir)
	return s
}

// SaveAll writes the artifact to every location, returning one SaveResult
// per attempt in declaration order.
func (s *Saver) SaveAll(filename, body string, executable bool) []domain.SaveResult {
	perm := os.FileMode(0o644)
	if executable {
		perm = domain.ScriptPermissions
	}

	results := make([]domain.SaveResult, 0, len(s.locations))
	for _, loc := range s.locations {
		result := domain.SaveResult{Role: loc.role, Path: filepath.Join(loc.dir, filename)}
		if err := os.MkdirAll(loc.dir, domain.DirectoryPermissions); err != nil {
			result.Err = err.Error()
			results = append(results, result)
			continue
		}
		if err := os.WriteFile(result.Path, []byte(body), perm); err != nil {
			result.Err = err.Error()
		}
		results = append(results, result)
	}
	return results
}

// Dirs lists the configured save directories in role order. The HTTP shell
// uses this to resolve retrieval requests.
func (s *Saver) Dirs() []string {
	dirs := make([]string, 0, len(s.locations))
	for _, loc := range s.locations {
		dirs = append(dirs, loc.dir)
	}
	return dirs
}
