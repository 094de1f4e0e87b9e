/*
Package ports defines the driven ports (interfaces) for turingtoy.

These interfaces decouple the run surfaces (CLI, HTTP, MCP) from where machine
definitions come from and where run results are kept.

# Key Interfaces

  - MachineLoader: Resolves a machine definition by name (e.g., from files or memory).
  - ResultStore: Persists run results keyed by run ID (memory, file, Redis).
*/
package ports
