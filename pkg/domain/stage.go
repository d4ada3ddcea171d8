package domain

// Stage identifies one step of the run pipeline.
type Stage string

const (
	StageValidate       Stage = "validate"
	StagePrepare        Stage = "prepare"
	StageEnvironment    Stage = "environment"
	StagePreCommand     Stage = "pre-command"
	StageCommand        Stage = "command"
	StagePostCommand    Stage = "post-command"
	StageClean          Stage = "clean"
	StageFilesExist     Stage = "files-exist"
	StageFilesDontExist Stage = "files-dont-exist"
	StageDiff           Stage = "diff"
)

// Stages lists every stage in pipeline order.
var Stages = []Stage{
	StageValidate,
	StagePrepare,
	StageEnvironment,
	StagePreCommand,
	StageCommand,
	StagePostCommand,
	StageClean,
	StageFilesExist,
	StageFilesDontExist,
	StageDiff,
}

// IsCommand reports whether the stage runs a child process.
func (s Stage) IsCommand() bool {
	return s == StagePreCommand || s == StageCommand || s == StagePostCommand
}
