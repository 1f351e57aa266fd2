// Package archive provides SQLite-backed storage for the electron run ledger.
//
// The archive records one row per CLI invocation that prepared or
// validated a simulation input:
//   - Runs: command, driver, method/basis, basis-set dimensions, outcome
//   - Run Elements: the distinct elements of the molecule, in
//     first-occurrence order
//
// # Ordering
//
// created_at is stored as RFC 3339 UTC text, so lexicographic order is
// chronological order. All listing queries order by created_at DESC,
// id ASC so results are stable even when two runs share a timestamp.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package archive
