package graph

import (
	"context"
	"time"

	"braindex/internal/link"
	"braindex/internal/parser"
	"braindex/internal/tasks"
	"braindex/internal/vault"
)

// FileError is one non-fatal per-file failure collected during a rebuild.
type FileError struct {
	Path string
	Err  error
}

// BuildResult is the outcome of one full rebuild.
type BuildResult struct {
	Index *Index

	// FileErrors are per-file read failures; the files were skipped.
	FileErrors []FileError

	// Intents is the normalization plan computed for the corpus.
	Intents []Intent

	// NormalizeErrors are per-group disk failures from applying intents.
	NormalizeErrors []error
}

// Builder runs the full-corpus rebuild protocol: list files, extract each,
// run the unlinked-mention pass, plan (and optionally apply) case
// normalization, attach task metadata, and hand back a complete Index the
// caller publishes.
type Builder struct {
	Vault *vault.Vault

	// Tasks, when set, attaches persisted metadata to every scanned task.
	Tasks *tasks.Store

	// ApplyCaseFixes applies normalization intents to disk. When false the
	// intents are still computed and applied in memory only.
	ApplyCaseFixes bool

	// Now supplies the scan timestamp; defaults to time.Now.
	Now func() time.Time
}

// Rebuild constructs an entirely new Index. Per-file failures never abort
// the rebuild; they are reported in the result. The context is checked
// between per-file extraction steps, so a cancelled rebuild stops promptly
// without publishing anything.
func (b *Builder) Rebuild(ctx context.Context) (*BuildResult, error) {
	paths, err := b.Vault.ListMarkdown()
	if err != nil {
		return nil, err
	}

	res := &BuildResult{Index: New()}
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		content, err := b.Vault.Read(path)
		if err != nil {
			res.FileErrors = append(res.FileErrors, FileError{Path: path, Err: err})
			continue
		}
		res.Index.AddNote(parser.Extract(link.FromFilePath(path), content))
	}

	res.Index.RefreshUnlinkedMentions()

	res.Intents = res.Index.PlanNormalization()
	if len(res.Intents) > 0 {
		var fs *vault.Vault
		if b.ApplyCaseFixes {
			fs = b.Vault
		}
		res.NormalizeErrors = res.Index.ApplyNormalization(fs, res.Intents)
		res.Index.RefreshUnlinkedMentions()
	}

	if b.Tasks != nil {
		now := time.Now()
		if b.Now != nil {
			now = b.Now()
		}
		for _, n := range res.Index.AllNotes() {
			if err := b.Tasks.Attach(n.Tasks, now); err != nil {
				res.FileErrors = append(res.FileErrors, FileError{Path: b.Vault.PathFor(n.Link), Err: err})
			}
		}
	}

	res.Index.RebuildAutocompleteCandidates()
	return res, nil
}
