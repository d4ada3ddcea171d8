/*
Package ports defines the driven ports (interfaces) of the test wrapper.

These interfaces decouple the run pipeline from the operating system and from
the persistence of settings, so the pipeline can be exercised with fakes and
settings can live on disk, in Redis or in memory.

# Key Interfaces

  - CommandRunner: Executes one child process and reports its effective exit code.
  - Differ: Compares a produced file against its baseline.
  - Backend: Reads and writes the serialized settings blob.
*/
package ports
