package mods

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/plugmod/internal/logging"
	"github.com/yaklabco/plugmod/pkg/codemod"
	"github.com/yaklabco/plugmod/pkg/config"
	"github.com/yaklabco/plugmod/pkg/fix"
	"github.com/yaklabco/plugmod/pkg/fsutil"
	"github.com/yaklabco/plugmod/pkg/gencode"
)

// CompileOptions controls a pipeline run.
type CompileOptions struct {
	// ProjectRoot is the app directory holding the platform directories.
	ProjectRoot string

	// Platforms to run, in order.
	Platforms []Platform

	// DryRun computes diffs without touching disk. Dangerous mods see it in
	// ModConfig.DryRun.
	DryRun bool

	// Backup configures backups taken before a file is first rewritten.
	Backup fsutil.BackupConfig

	// Commit selects when staged files are written.
	Commit config.CommitMode

	// Concurrent runs platforms in parallel.
	Concurrent bool
}

// OptionsFromConfig builds CompileOptions from a resolved configuration.
func OptionsFromConfig(cfg *config.Config) CompileOptions {
	platforms := make([]Platform, 0, len(cfg.Platforms))
	for _, p := range cfg.Platforms {
		platforms = append(platforms, Platform(p))
	}
	return CompileOptions{
		ProjectRoot: cfg.ProjectRoot,
		Platforms:   platforms,
		DryRun:      cfg.DryRun,
		Backup: fsutil.BackupConfig{
			Enabled: cfg.Backups.IsEnabled() && !cfg.NoBackups,
			Mode:    fsutil.BackupMode(cfg.Backups.Mode),
		},
		Commit:     cfg.Commit,
		Concurrent: cfg.Concurrent,
	}
}

// Compile runs the registered mods for every platform in opts.
//
// Per platform, dangerous mods run first. Then each file with registered mods
// is read once, passed through its chain and committed according to
// opts.Commit. A failing mod aborts its platform: staged files are reverted
// and files already committed stay written. Under CommitPerPlatform a failing
// commit also rolls back the files written before it, using the backups taken
// in this run. The first failure also cancels the remaining platforms. The
// returned Result is non-nil even on error.
func Compile(ctx context.Context, reg *Registry, project *config.Config, opts CompileOptions) (*Result, error) {
	results := make([]*Result, len(opts.Platforms))

	var err error
	if opts.Concurrent && len(opts.Platforms) > 1 {
		group, groupCtx := errgroup.WithContext(ctx)
		for i, platform := range opts.Platforms {
			platformProject := project.Clone()
			group.Go(func() error {
				var runErr error
				results[i], runErr = runPlatform(groupCtx, reg, platformProject, platform, opts)
				return runErr
			})
		}
		err = group.Wait()
	} else {
		for i, platform := range opts.Platforms {
			results[i], err = runPlatform(ctx, reg, project.Clone(), platform, opts)
			if err != nil {
				break
			}
		}
	}

	merged := &Result{}
	for _, res := range results {
		merged.merge(res)
	}
	return merged, err
}

// stagedFile is a mutated file waiting for its commit.
type stagedFile struct {
	index   int
	snap    *fsutil.Snapshot
	content []byte
	remove  bool
	changed bool
}

type platformRun struct {
	reg      *Registry
	opts     CompileOptions
	platform Platform
	base     ModConfig
	result   *Result
	staged   []*stagedFile
	logger   *log.Logger
}

func runPlatform(
	ctx context.Context,
	reg *Registry,
	project *config.Config,
	platform Platform,
	opts CompileOptions,
) (*Result, error) {
	run := &platformRun{
		reg:      reg,
		opts:     opts,
		platform: platform,
		base: ModConfig{
			ProjectRoot:         opts.ProjectRoot,
			PlatformProjectRoot: filepath.Join(opts.ProjectRoot, string(platform)),
			Project:             project,
			DryRun:              opts.DryRun,
		},
		result: &Result{},
		logger: logging.FromContext(ctx).With(logging.FieldPlatform, platform),
	}

	if err := run.runDangerous(ctx); err != nil {
		return run.result, err
	}

	for _, modName := range reg.ModNames(platform) {
		if err := run.runFile(ctx, modName); err != nil {
			run.revert()
			return run.result, err
		}
		if opts.Commit != config.CommitPerPlatform {
			if err := run.commitStaged(ctx); err != nil {
				run.revert()
				return run.result, err
			}
		}
	}

	if err := run.commitStaged(ctx); err != nil {
		run.revert()
		return run.result, err
	}
	return run.result, nil
}

func (r *platformRun) runDangerous(ctx context.Context) error {
	for _, entry := range r.reg.Dangerous(r.platform) {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("compile cancelled: %w", err)
		}

		cfg := r.base
		cfg.ModRequest = ModRequest{Platform: r.platform, ModName: ModDangerous}

		r.logger.Debug("running dangerous mod", logging.FieldMod, entry.Name)
		if _, err := entry.Mod(ctx, cfg); err != nil {
			if r.skippable(entry, err) {
				r.warn(entry, "", err)
				continue
			}
			return &ModError{Platform: r.platform, ModName: ModDangerous, Mod: entry.Name, Err: err}
		}
	}
	return nil
}

func (r *platformRun) runFile(ctx context.Context, modName ModName) error {
	provider, ok := r.reg.Provider(r.platform, modName)
	if !ok {
		return &ModError{Platform: r.platform, ModName: modName, Err: ErrUnknownMod}
	}

	cfg := r.base
	cfg.ModRequest = ModRequest{Platform: r.platform, ModName: modName}

	path, lang, err := provider.Path(ctx, cfg)
	if err != nil {
		return &ModError{Platform: r.platform, ModName: modName, Err: err}
	}
	cfg.Language = lang
	cfg.ModRequest.FilePath = path

	fail := func(mod string, err error) error {
		return &ModError{Platform: r.platform, ModName: modName, Mod: mod, Path: path, Err: err}
	}

	original, snap, err := fsutil.ReadFileOrMissing(ctx, path)
	if err != nil {
		return fail("", err)
	}
	results, err := provider.Read(path, original, snap.Missing)
	if err != nil {
		return fail("", err)
	}

	// baseline is how the provider would write the file untouched; a chain
	// that changes nothing must not reformat it.
	var baseline []byte
	if !snap.Missing {
		baseline, _, err = provider.Write(provider.Clone(results))
		if err != nil {
			return fail("", err)
		}
	}

	index := len(r.result.Files)
	r.result.Files = append(r.result.Files, FileOutcome{
		Platform: r.platform,
		ModName:  modName,
		Path:     path,
		State:    StateLoaded,
	})
	outcome := func() *FileOutcome { return &r.result.Files[index] }

	for _, entry := range r.reg.Mods(r.platform, modName) {
		if err := ctx.Err(); err != nil {
			outcome().State = StateReverted
			return fail(entry.Name, fmt.Errorf("compile cancelled: %w", err))
		}

		cfg.ModResults = provider.Clone(results)
		r.logger.Debug("running mod", logging.FieldMod, entry.Name, logging.FieldModName, modName, logging.FieldPath, path)

		next, err := entry.Mod(ctx, cfg)
		if err != nil {
			if r.skippable(entry, err) {
				r.warn(entry, path, err)
				continue
			}
			outcome().State = StateReverted
			return fail(entry.Name, err)
		}

		results = next.ModResults
		outcome().Mods = append(outcome().Mods, entry.Name)
		outcome().State = StateMutated
	}

	content, remove, err := provider.Write(results)
	if err != nil {
		outcome().State = StateReverted
		return fail("", err)
	}

	changed := snap.Missing || !bytes.Equal(content, baseline)
	if remove {
		changed = !snap.Missing
	}

	if changed {
		after := string(content)
		if remove {
			after = ""
		}
		diff, err := fix.UnifiedDiff(r.displayPath(path), string(original), after)
		if err != nil {
			outcome().State = StateReverted
			return fail("", err)
		}
		outcome().Diff = diff
	}
	outcome().Changed = changed
	outcome().Removed = remove && changed

	r.staged = append(r.staged, &stagedFile{
		index:   index,
		snap:    snap,
		content: content,
		remove:  remove,
		changed: changed,
	})
	return nil
}

// commitStaged commits staged files in order. A file that fails to commit
// stays staged so the caller can revert it with the rest. Under
// CommitPerPlatform the files committed before the failure are rolled back.
func (r *platformRun) commitStaged(ctx context.Context) error {
	var committed []*stagedFile
	for len(r.staged) > 0 {
		file := r.staged[0]
		if err := r.commit(ctx, file); err != nil {
			if r.opts.Commit == config.CommitPerPlatform {
				r.rollback(ctx, committed)
			}
			return err
		}
		committed = append(committed, file)
		r.staged = r.staged[1:]
	}
	return nil
}

// rollback undoes committed writes: files with a backup from this run are
// restored from it and files this run created are deleted. Anything else
// stays written.
func (r *platformRun) rollback(ctx context.Context, files []*stagedFile) {
	for _, file := range files {
		if !file.changed || r.opts.DryRun {
			continue
		}
		outcome := &r.result.Files[file.index]
		logger := r.logger.With(logging.FieldModName, outcome.ModName, logging.FieldPath, outcome.Path)

		switch {
		case outcome.BackupCreated:
			restored, err := fsutil.RestoreBackup(ctx, outcome.Path, r.opts.Backup.Mode)
			if err != nil || !restored {
				logger.Warn("could not restore backup", logging.FieldError, err)
				continue
			}
			if _, err := fsutil.Remove(ctx, fsutil.BackupPath(outcome.Path, r.opts.Backup.Mode)); err != nil {
				logger.Warn("could not remove backup", logging.FieldError, err)
			}
			outcome.BackupCreated = false
		case file.snap.Missing:
			if _, err := fsutil.Remove(ctx, outcome.Path); err != nil {
				logger.Warn("could not remove created file", logging.FieldError, err)
				continue
			}
		default:
			logger.Warn("committed file has no backup to restore")
			continue
		}

		outcome.State = StateReverted
		logger.Debug("rolled back")
	}
}

func (r *platformRun) commit(ctx context.Context, file *stagedFile) error {
	outcome := &r.result.Files[file.index]
	if !file.changed {
		outcome.State = StateCommitted
		return nil
	}
	if r.opts.DryRun {
		return nil
	}

	fail := func(err error) error {
		return &ModError{Platform: r.platform, ModName: outcome.ModName, Path: outcome.Path, Err: err}
	}

	modified, err := fsutil.CheckModified(ctx, file.snap)
	if err != nil {
		return fail(err)
	}
	if modified {
		return fail(ErrConcurrentModification)
	}

	if !file.snap.Missing {
		created, err := fsutil.CreateBackup(ctx, outcome.Path, r.opts.Backup)
		if err != nil {
			return fail(err)
		}
		outcome.BackupCreated = created
	}

	if file.remove {
		_, err = fsutil.Remove(ctx, outcome.Path)
	} else {
		_, err = fsutil.WriteAtomicIfChanged(ctx, outcome.Path, file.content, file.snap.Mode.Perm())
	}
	if err != nil {
		return fail(err)
	}

	outcome.State = StateCommitted
	r.logger.Debug("committed", logging.FieldModName, outcome.ModName, logging.FieldPath, outcome.Path, logging.FieldRemoved, file.remove)
	return nil
}

func (r *platformRun) revert() {
	for _, file := range r.staged {
		r.result.Files[file.index].State = StateReverted
	}
	r.staged = nil
}

// skippable reports whether err only means an optional mod found nothing to
// attach to.
func (r *platformRun) skippable(entry Entry, err error) bool {
	return entry.Optional &&
		(errors.Is(err, gencode.ErrAnchorNotFound) || errors.Is(err, codemod.ErrAmbiguousLocator))
}

func (r *platformRun) warn(entry Entry, path string, err error) {
	r.logger.Warn("skipping optional mod", logging.FieldMod, entry.Name, logging.FieldPath, path, logging.FieldError, err)
	r.result.Warnings = append(r.result.Warnings, Warning{
		Platform: r.platform,
		ModName:  entry.ModName,
		Mod:      entry.Name,
		Path:     path,
		Err:      err,
	})
}

func (r *platformRun) displayPath(path string) string {
	if r.opts.ProjectRoot == "" {
		return filepath.ToSlash(path)
	}
	rel, err := filepath.Rel(r.opts.ProjectRoot, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
