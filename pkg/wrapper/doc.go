/*
Package wrapper runs a test command under controlled conditions and validates its outcome.

A run is a linear pipeline. Each stage either passes or stops the whole run:

 1. validate: reject inconsistent options before anything executes.
 2. prepare: create a fresh temporary working directory and seed it from the test env directory.
 3. environment: inherit the process environment, apply KEY=VALUE overlays, force ARCH_AVOID_JIT=1.
 4. pre-command, command, post-command: run each child sequentially inside the working directory.
 5. clean: strip regular-expression matches from the files about to be diffed.
 6. files-exist, files-dont-exist: check for required and forbidden files.
 7. diff: compare produced files with their baselines through an external diff tool.

The working directory is passed explicitly to every stage; the wrapper never
changes the current directory of the calling process.
*/
package wrapper
