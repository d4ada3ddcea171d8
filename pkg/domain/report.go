package domain

import "time"

// StageResult is the outcome of one pipeline stage.
type StageResult struct {
	Stage    Stage         `json:"stage"`
	Passed   bool          `json:"passed"`
	ExitCode int           `json:"exit_code,omitempty"`
	Duration time.Duration `json:"duration"`
	Detail   string        `json:"detail,omitempty"`
}

// Report summarizes a run. Stages holds only the stages that were attempted.
type Report struct {
	Name     string        `json:"name"`
	WorkDir  string        `json:"work_dir"`
	Started  time.Time     `json:"started"`
	Duration time.Duration `json:"duration"`
	Passed   bool          `json:"passed"`
	Stages   []StageResult `json:"stages"`
}

// Add appends a stage result.
func (r *Report) Add(res StageResult) {
	r.Stages = append(r.Stages, res)
}

// Failed returns the first failing stage, if any.
func (r *Report) Failed() (StageResult, bool) {
	for _, s := range r.Stages {
		if !s.Passed {
			return s, true
		}
	}
	return StageResult{}, false
}

// MainExitCode returns the effective exit code of the primary command, or -1 if it never ran.
func (r *Report) MainExitCode() int {
	for _, s := range r.Stages {
		if s.Stage == StageCommand {
			return s.ExitCode
		}
	}
	return -1
}
