/*
Package ports defines the driven ports (interfaces) of the goban services.

The rules engine itself is pure; these interfaces only matter to the layers
that keep games between requests (the CLI game commands and the session
manager).

# Key Interfaces

  - GameStore: persists game trees by ID (memory, SGF files).
  - DistributedLocker: serializes access to a game across processes (Redis).
*/
package ports
