package domain

// AvoidJITKey is always forced into the child environment so crashing tests
// do not block on a just-in-time debugger.
const AvoidJITKey = "ARCH_AVOID_JIT"

// NonSpecificDir is the baseline subdirectory preferred when present.
const NonSpecificDir = "non-specific"

// CommandSpec describes a single child process invocation.
// Args holds raw configuration strings; each one is whitespace-split before execution.
type CommandSpec struct {
	Args         []string `json:"args" yaml:"args" mapstructure:"args"`
	Stdout       string   `json:"stdout_redirect,omitempty" yaml:"stdout_redirect,omitempty" mapstructure:"stdout_redirect"`
	Stderr       string   `json:"stderr_redirect,omitempty" yaml:"stderr_redirect,omitempty" mapstructure:"stderr_redirect"`
	ExpectedCode int      `json:"expected_return_code,omitempty" yaml:"expected_return_code,omitempty" mapstructure:"expected_return_code"`
}

// Empty reports whether the spec carries no command at all.
func (c *CommandSpec) Empty() bool {
	return c == nil || len(Tokenize(c.Args)) == 0
}

// Invocation groups the commands of a run. Pre and Post always expect 0.
type Invocation struct {
	Pre  *CommandSpec `json:"pre_command,omitempty" yaml:"pre_command,omitempty" mapstructure:"pre_command"`
	Main CommandSpec  `json:"command" yaml:"command" mapstructure:"command"`
	Post *CommandSpec `json:"post_command,omitempty" yaml:"post_command,omitempty" mapstructure:"post_command"`
}

// Conditions are the checks evaluated after all commands succeeded.
type Conditions struct {
	DiffCompare      []string `json:"diff_compare,omitempty" yaml:"diff_compare,omitempty" mapstructure:"diff_compare"`
	FilesExist       []string `json:"files_exist,omitempty" yaml:"files_exist,omitempty" mapstructure:"files_exist"`
	FilesDontExist   []string `json:"files_dont_exist,omitempty" yaml:"files_dont_exist,omitempty" mapstructure:"files_dont_exist"`
	CleanOutputPaths []string `json:"clean_output_paths,omitempty" yaml:"clean_output_paths,omitempty" mapstructure:"clean_output_paths"`
	BaselineDir      string   `json:"baseline_dir,omitempty" yaml:"baseline_dir,omitempty" mapstructure:"baseline_dir"`
}

// Options is the full description of a wrapped test run.
type Options struct {
	Name       string     `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name"`
	Invocation `yaml:",inline" mapstructure:",squash"`
	Conditions `yaml:",inline" mapstructure:",squash"`

	TestEnvDir string   `json:"testenv_dir,omitempty" yaml:"testenv_dir,omitempty" mapstructure:"testenv_dir"`
	EnvVars    []string `json:"env_vars,omitempty" yaml:"env_vars,omitempty" mapstructure:"env_vars"`
	DiffTool   string   `json:"diff_tool,omitempty" yaml:"diff_tool,omitempty" mapstructure:"diff_tool"`
	Cleanup    bool     `json:"cleanup,omitempty" yaml:"cleanup,omitempty" mapstructure:"cleanup"`
	Verbose    bool     `json:"verbose,omitempty" yaml:"verbose,omitempty" mapstructure:"verbose"`
}
