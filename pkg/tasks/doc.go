// Package tasks loads scenario definitions from YAML. A task names a seed
// overlay, the scripted tool calls, and the scoring spec; the loader reads a
// directory of them and the watcher reloads on change for long-running
// benchmark processes.
package tasks
