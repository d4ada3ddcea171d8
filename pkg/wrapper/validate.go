package wrapper

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/aretw0/testwrap/pkg/domain"
)

// EnvVar is one parsed KEY=VALUE overlay.
type EnvVar struct {
	Key   string
	Value string
}

// plan is a validated, fully resolved set of options.
type plan struct {
	opts        domain.Options
	patterns    []*regexp.Regexp
	overlays    []EnvVar
	testEnvDir  string
	baselineDir string
}

// Validate checks options for consistency without running anything.
func Validate(opts domain.Options) error {
	_, err := compile(opts)
	return err
}

func compile(opts domain.Options) (*plan, error) {
	if len(opts.DiffCompare) > 0 && opts.BaselineDir == "" {
		return nil, domain.Fail(domain.StageValidate, domain.ErrConfig,
			"--baseline-dir must be specified with --diff-compare")
	}
	if len(opts.CleanOutputPaths) > 0 && len(opts.DiffCompare) == 0 {
		return nil, domain.Fail(domain.StageValidate, domain.ErrConfig,
			"--diff-compare must be specified with --clean-output-paths")
	}
	if opts.Main.Empty() {
		return nil, domain.Fail(domain.StageValidate, domain.ErrConfig, "no command given")
	}

	p := &plan{opts: opts}

	for _, raw := range opts.CleanOutputPaths {
		re, err := regexp.Compile(raw)
		if err != nil {
			return nil, domain.Fail(domain.StageValidate, domain.ErrConfig,
				"invalid clean pattern %q: %v", raw, err)
		}
		p.patterns = append(p.patterns, re)
	}

	overlays, err := ParseEnvVars(opts.EnvVars)
	if err != nil {
		return nil, err
	}
	p.overlays = overlays

	if opts.TestEnvDir != "" {
		abs, err := filepath.Abs(opts.TestEnvDir)
		if err != nil {
			return nil, domain.Fail(domain.StageValidate, domain.ErrConfig, "resolving testenv dir: %v", err)
		}
		p.testEnvDir = abs
	}
	if opts.BaselineDir != "" {
		abs, err := filepath.Abs(opts.BaselineDir)
		if err != nil {
			return nil, domain.Fail(domain.StageValidate, domain.ErrConfig, "resolving baseline dir: %v", err)
		}
		p.baselineDir = abs
	}

	return p, nil
}

// ParseEnvVars parses KEY=VALUE strings. The value may itself contain '='.
func ParseEnvVars(raw []string) ([]EnvVar, error) {
	out := make([]EnvVar, 0, len(raw))
	for _, s := range raw {
		k, v, ok := strings.Cut(s, "=")
		if !ok || k == "" {
			return nil, domain.Fail(domain.StageValidate, domain.ErrConfig,
				"envvar '%s' not of the form key=value", s)
		}
		out = append(out, EnvVar{Key: k, Value: v})
	}
	return out, nil
}
