// Package store provides SQLite-backed storage for catalog products.
//
// The store owns a single table:
//   - products: one row per catalog item, id assigned by AUTOINCREMENT
//
// # Conventions
//
// List-valued fields (colors, sizes) are stored comma-joined; they are parsed
// back into slices when rows are read, so callers only ever see []string.
//
// Reads are compiled from queryir selects by internal/querysql. Every read is
// ordered by id, which is insertion order.
//
// Text is normalized to Unicode NFC before it is written.
//
// # Seeding
//
// Initialize inserts the default products only when the table is empty.
// Reset clears the table and the id counter, then seeds again; it exists
// for development and demos.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//
// Schema changes after the initial table are numbered migrations tracked in
// PRAGMA user_version.
package store
