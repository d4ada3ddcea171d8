package main

import (
	"path/filepath"
	"strings"

	"github.com/aretw0/testwrap/internal/cli"
	"github.com/aretw0/testwrap/internal/config"
	"github.com/aretw0/testwrap/pkg/domain"
	"github.com/spf13/pflag"
)

// addRunFlags registers every option of a wrapped run.
func addRunFlags(fs *pflag.FlagSet) {
	fs.String("stdout-redirect", "", "File (relative to the working directory) receiving the command's stdout")
	fs.String("stderr-redirect", "", "File (relative to the working directory) receiving the command's stderr")
	fs.StringSlice("diff-compare", nil, "Output files to compare against the baseline (takes several values)")
	fs.StringSlice("files-exist", nil, "Files that must exist after the run (takes several values)")
	fs.StringSlice("files-dont-exist", nil, "Files that must not exist after the run (takes several values)")
	fs.StringArray("clean-output-paths", nil, "Regular expressions removed from every diff target before comparing (takes several values)")
	fs.StringArray("pre-command", nil, "Command run before CMD; must exit 0 (takes several values, whitespace-split)")
	fs.String("pre-command-stdout-redirect", "", "File receiving the pre-command's stdout")
	fs.String("pre-command-stderr-redirect", "", "File receiving the pre-command's stderr")
	fs.StringArray("post-command", nil, "Command run after CMD; must exit 0 (takes several values, whitespace-split)")
	fs.String("post-command-stdout-redirect", "", "File receiving the post-command's stdout")
	fs.String("post-command-stderr-redirect", "", "File receiving the post-command's stderr")
	fs.String("testenv-dir", "", "Directory whose contents seed the working directory")
	fs.String("baseline-dir", "", "Directory holding the expected versions of the diff targets")
	fs.Int("expected-return-code", 0, "Exit code CMD must return")
	fs.StringArray("env-var", nil, "KEY=VALUE added to the command environment (repeatable)")
	fs.BoolP("verbose", "v", false, "Log every stage to stderr")

	fs.String("config", "", "YAML or JSON file with run defaults; explicit flags win")
	fs.String("name", "", "Test name used in reports (default: base name of CMD)")
	fs.String("diff-tool", "", "External diff program (default: diff, fc.exe on Windows)")
	fs.Bool("cleanup", false, "Remove the working directory after a passing run")
	fs.Bool("report", false, "Print a run report")
	fs.String("metrics-file", "", "Write Prometheus metrics for the run to this textfile")
	fs.String("record", "", "Record the outcome in this settings location (path or redis:// URL)")
}

// multiValueFlags take every following argument up to the next flag or "--".
var multiValueFlags = map[string]bool{
	"diff-compare":       true,
	"files-exist":        true,
	"files-dont-exist":   true,
	"clean-output-paths": true,
	"pre-command":        true,
	"post-command":       true,
}

// expandMultiValue rewrites "--files-exist a b" as "--files-exist=a --files-exist=b"
// so pflag, which reads one value per flag, sees every value. Rewriting stops
// at "--" or at the first argument no flag claims, which starts CMD.
func expandMultiValue(fs *pflag.FlagSet, argv []string) []string {
	out := make([]string, 0, len(argv))
	for i := 0; i < len(argv); i++ {
		arg := argv[i]
		if arg == "--" || !isFlag(arg) {
			return append(out, argv[i:]...)
		}

		name, _, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		if !strings.HasPrefix(arg, "--") || hasValue {
			out = append(out, arg)
			continue
		}

		if multiValueFlags[name] {
			for i+1 < len(argv) && !isFlag(argv[i+1]) {
				i++
				out = append(out, arg+"="+argv[i])
			}
			continue
		}

		out = append(out, arg)
		if f := fs.Lookup(name); f != nil && f.NoOptDefVal == "" && i+1 < len(argv) {
			i++
			out = append(out, argv[i])
		}
	}
	return out
}

func isFlag(arg string) bool {
	return len(arg) > 1 && arg[0] == '-'
}

// buildRunOptions merges the optional config file with the flags that were set
// explicitly and the positional command.
func buildRunOptions(fs *pflag.FlagSet, args []string) (cli.RunOptions, error) {
	var run cli.RunOptions

	if path, _ := fs.GetString("config"); path != "" {
		opts, err := config.Load(path)
		if err != nil {
			return run, err
		}
		run.Options = opts
	}
	o := &run.Options

	if len(args) > 0 {
		o.Main.Args = args
	}

	setString(fs, "stdout-redirect", &o.Main.Stdout)
	setString(fs, "stderr-redirect", &o.Main.Stderr)
	setInt(fs, "expected-return-code", &o.Main.ExpectedCode)

	o.Pre = mergeAuxCommand(fs, "pre-command", o.Pre)
	o.Post = mergeAuxCommand(fs, "post-command", o.Post)

	setSlice(fs, "diff-compare", &o.DiffCompare)
	setSlice(fs, "files-exist", &o.FilesExist)
	setSlice(fs, "files-dont-exist", &o.FilesDontExist)
	setArray(fs, "clean-output-paths", &o.CleanOutputPaths)
	setArray(fs, "env-var", &o.EnvVars)
	setString(fs, "testenv-dir", &o.TestEnvDir)
	setString(fs, "baseline-dir", &o.BaselineDir)
	setString(fs, "name", &o.Name)
	setString(fs, "diff-tool", &o.DiffTool)
	setBool(fs, "verbose", &o.Verbose)
	setBool(fs, "cleanup", &o.Cleanup)

	if o.Name == "" {
		if argv := domain.Tokenize(o.Main.Args); len(argv) > 0 {
			o.Name = filepath.Base(argv[0])
		}
	}

	run.Report, _ = fs.GetBool("report")
	run.MetricsFile, _ = fs.GetString("metrics-file")
	run.Record, _ = fs.GetString("record")
	return run, nil
}

// mergeAuxCommand applies the --<prefix> flags onto an optional command.
// The returned spec is nil when neither the config nor the flags define one.
func mergeAuxCommand(fs *pflag.FlagSet, prefix string, spec *domain.CommandSpec) *domain.CommandSpec {
	var c domain.CommandSpec
	if spec != nil {
		c = *spec
	}
	setArray(fs, prefix, &c.Args)
	setString(fs, prefix+"-stdout-redirect", &c.Stdout)
	setString(fs, prefix+"-stderr-redirect", &c.Stderr)
	if c.Empty() {
		return nil
	}
	return &c
}

func setString(fs *pflag.FlagSet, name string, dst *string) {
	if fs.Changed(name) {
		*dst, _ = fs.GetString(name)
	}
}

func setInt(fs *pflag.FlagSet, name string, dst *int) {
	if fs.Changed(name) {
		*dst, _ = fs.GetInt(name)
	}
}

func setBool(fs *pflag.FlagSet, name string, dst *bool) {
	if fs.Changed(name) {
		*dst, _ = fs.GetBool(name)
	}
}

func setSlice(fs *pflag.FlagSet, name string, dst *[]string) {
	if fs.Changed(name) {
		*dst, _ = fs.GetStringSlice(name)
	}
}

func setArray(fs *pflag.FlagSet, name string, dst *[]string) {
	if fs.Changed(name) {
		*dst, _ = fs.GetStringArray(name)
	}
}
