/*
Package domain contains the core models of the test wrapper.

It describes what a wrapped test run is made of, independent of how commands
are executed or where results are persisted. This package is kept free of I/O
so adapters and the pipeline can share it.

# Key Entities

  - CommandSpec: one child process invocation (raw tokens, redirects, expected code).
  - Invocation: the optional pre-command, the primary command and the optional post-command.
  - Conditions: the post-conditions checked after the commands ran.
  - Options: everything a run needs, as assembled from flags and config files.
  - Report: the per-stage outcome of a run.
*/
package domain
