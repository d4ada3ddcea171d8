package wrapper

import (
	"context"
	"os"
	"path/filepath"
	"regexp"

	"github.com/aretw0/testwrap/pkg/domain"
	"github.com/aretw0/testwrap/pkg/ports"
)

func inDir(dir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

// stripPattern removes every match of re from the file and rewrites it in place.
func stripPattern(path string, re *regexp.Regexp) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return os.WriteFile(path, re.ReplaceAll(data, nil), info.Mode().Perm())
}

// exists mirrors a plain existence test: any stat failure counts as absent.
func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ResolveBaseline returns the baseline file for name, preferring the
// non-specific subdirectory of baselineDir when it exists.
func ResolveBaseline(baselineDir, name string) string {
	nonSpecific := filepath.Join(baselineDir, domain.NonSpecificDir)
	if info, err := os.Stat(nonSpecific); err == nil && info.IsDir() {
		baselineDir = nonSpecific
	}
	return filepath.Join(baselineDir, name)
}

func (w *Wrapper) cleanOutputs(p *plan, dir string) error {
	for _, re := range p.patterns {
		for _, target := range p.opts.DiffCompare {
			w.logger.Debug("Stripping path pattern", "pattern", re.String(), "file", target)
			if err := stripPattern(inDir(dir, target), re); err != nil {
				return domain.Fail(domain.StageClean, domain.ErrCondition,
					"cleaning %s: %v", target, err)
			}
		}
	}
	return nil
}

func (w *Wrapper) checkFilesExist(p *plan, dir string) error {
	for _, f := range p.opts.FilesExist {
		w.logger.Debug("Checking file exists", "file", f)
		if !exists(inDir(dir, f)) {
			return domain.Fail(domain.StageFilesExist, domain.ErrCondition,
				"%s does not exist (FILES_EXIST)", f)
		}
	}
	return nil
}

func (w *Wrapper) checkFilesDontExist(p *plan, dir string) error {
	for _, f := range p.opts.FilesDontExist {
		w.logger.Debug("Checking file does not exist", "file", f)
		if exists(inDir(dir, f)) {
			return domain.Fail(domain.StageFilesDontExist, domain.ErrCondition,
				"%s does exist (FILES_DONT_EXIST)", f)
		}
	}
	return nil
}

func (w *Wrapper) diffBaselines(ctx context.Context, differ ports.Differ, p *plan, dir string) error {
	for _, target := range p.opts.DiffCompare {
		baseline := ResolveBaseline(p.baselineDir, target)
		w.logger.Debug("Diffing", "baseline", baseline, "file", target)

		same, err := differ.Diff(ctx, dir, baseline, target)
		if err != nil {
			return domain.Fail(domain.StageDiff, domain.ErrCondition, "diff for %s: %v", target, err)
		}
		if !same {
			return domain.Fail(domain.StageDiff, domain.ErrCondition,
				"diff for %s failed (DIFF_COMPARE)", target)
		}
	}
	return nil
}
