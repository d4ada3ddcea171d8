/*
Package testwrap runs a test command under controlled conditions and decides pass or fail
from its exit code plus a set of post-conditions on the files it produced.

# Concept

Every run gets a fresh temporary working directory, optionally seeded from a test
environment directory. An optional pre-command, the primary command and an optional
post-command run there with the inherited environment plus KEY=VALUE overlays. The run
then checks the produced files: regex cleaning of diff targets, files that must or must
not exist, and an external diff against a baseline directory. The first failing stage
stops the run.

The working directory is an explicit value threaded through every stage; the process
current directory is never changed, so runs are safe to embed in a larger program.

# Usage

	opts := domain.Options{
		Name: "unit",
		Invocation: domain.Invocation{
			Main: domain.CommandSpec{Args: []string{"./run_tests.sh --fast"}, Stdout: "out.txt"},
		},
		Conditions: domain.Conditions{
			DiffCompare: []string{"out.txt"},
			BaselineDir: "testdata/baseline",
		},
		TestEnvDir: "testdata/env",
	}

	report, err := testwrap.Run(ctx, opts)
	if err != nil {
		var se *domain.StageError
		if errors.As(err, &se) {
			log.Printf("failed at %s", se.Stage)
		}
	}

Outcomes can be kept in a settings location (a file or a Redis key) with the history
package, and the settings package exposes the underlying key/value store directly.
*/
package testwrap
