package cli

import (
	"context"
	"path/filepath"
	"time"

	"braindex/internal/config"
	"braindex/internal/graph"
	"braindex/internal/lastedit"
	"braindex/internal/shortlink"
	"braindex/internal/tasks"
	"braindex/internal/vault"
)

// session bundles the per-invocation collaborators: the notes root and the
// sidecar stores living under its state directory.
type session struct {
	vault *vault.Vault
	tasks *tasks.Store
	edits *lastedit.Store
}

// openSession resolves the active notes root and opens its sidecar stores.
func openSession() (*session, error) {
	v, err := resolveVault()
	if err != nil {
		return nil, err
	}
	dir := config.StateDir(v.Root)

	ts, err := tasks.OpenStore(dir)
	if err != nil {
		return nil, err
	}
	es, err := lastedit.OpenStore(dir)
	if err != nil {
		ts.Close()
		return nil, err
	}
	return &session{vault: v, tasks: ts, edits: es}, nil
}

// Close closes the sidecar stores.
func (s *session) Close() {
	s.tasks.Close()
	s.edits.Close()
}

// rebuild runs a full scan of the corpus. Case fixes are applied to disk
// only when applyFixes is set; the in-memory graph converges either way.
func (s *session) rebuild(ctx context.Context, applyFixes bool) (*graph.BuildResult, error) {
	b := &graph.Builder{
		Vault:          s.vault,
		Tasks:          s.tasks,
		ApplyCaseFixes: applyFixes,
	}
	return b.Rebuild(ctx)
}

// lastEdits returns the layered last-edited provider: explicit save stamps
// first, file mtimes as fallback.
func (s *session) lastEdits() lastedit.Provider {
	return lastedit.Layered{s.edits, &lastedit.Mtime{Vault: s.vault}}
}

// shortlinks loads the shortened-href inventory for this root.
func (s *session) shortlinks() (*shortlink.Inventory, error) {
	return shortlink.Load(filepath.Join(config.StateDir(s.vault.Root), "hrefs.yaml"))
}

// scanWarnings renders per-file scan failures as warning strings.
func scanWarnings(fileErrors []graph.FileError) []string {
	var out []string
	for _, fe := range fileErrors {
		out = append(out, fe.Err.Error())
	}
	return out
}

// elapsedMs measures scan time for the JSON meta envelope.
func elapsedMs(start time.Time) int64 {
	return time.Since(start).Milliseconds()
}
