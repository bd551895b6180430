// Package store provides SQLite-backed storage for harness runs.
//
// Two tables form an append-only history:
//   - runs: one row per harness invocation (UUIDv7 id, suite name,
//     start time, aggregate counts)
//   - results: one row per executed test, keyed to its run
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: enforce referential integrity
//
// Run IDs are UUIDv7, so lexical order matches creation order and the
// "latest run" query needs no timestamp comparison.
package store
