package loader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/nickboucher/electionguard-verify/internal/verify"
)

// LocalSource reads an artifact directory from the local filesystem, per
// original_source/electionguard_verify/command_line.py's directory/prefix
// override flags.
type LocalSource struct {
	Dir    string
	Layout Layout
}

// NewLocalSource returns a LocalSource rooted at dir using the default file
// layout; callers may mutate the returned value's Layout field before
// calling Load to override individual paths or prefixes.
func NewLocalSource(dir string) *LocalSource {
	return &LocalSource{Dir: dir, Layout: DefaultLayout()}
}

// Load reads and decodes every artifact file into a verify.Bundle.
func (s *LocalSource) Load(ctx context.Context) (*verify.Bundle, error) {
	return assemble(ctx, s, s.Layout)
}

func (s *LocalSource) ReadFile(_ context.Context, name string) ([]byte, error) {
	return os.ReadFile(filepath.Join(s.Dir, name))
}

func (s *LocalSource) ReadDir(_ context.Context, dir, prefix string) ([][]byte, error) {
	matches, err := filepath.Glob(filepath.Join(s.Dir, dir, prefix+"*"+jsonExt))
	if err != nil {
		return nil, fmt.Errorf("globbing %s/%s*%s: %w", dir, prefix, jsonExt, err)
	}
	sort.Strings(matches)

	blobs := make([][]byte, 0, len(matches))
	for _, m := range matches {
		blob, err := os.ReadFile(m)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", m, err)
		}
		blobs = append(blobs, blob)
	}
	return blobs, nil
}
