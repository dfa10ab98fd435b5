// Package interfaces documents the core abstractions used throughout the
// application and asserts at compile time that the concrete types satisfy them.
//
// # Persistence
//
//   - auth.UserStore: create, look up and delete accounts (internal/auth/service.go)
//   - services.UserReader: resolve a library owner (internal/services/interfaces.go)
//   - services.AnimeStore: library entries per creator (internal/services/interfaces.go)
//   - audit.EventStore: append and prune audit events (internal/audit/service.go)
//
// Each is implemented twice: by the gorm repositories under internal/database
// (SQLite or Postgres) and by mongostore.Store. Stores report missing rows as
// database.ErrNotFound and unique violations as database.ErrDuplicate; the
// services translate those into apperr kinds.
//
// # Audit
//
//   - auth.AuditLogger and services.LibraryAuditor: fire-and-forget event
//     recording, implemented by audit.Service
//   - tasks.AuditEventCleaner: retention cleanup, implemented by audit.Service
//   - scheduler.AuditCleanupRunner: how the cron job triggers a cleanup,
//     implemented by tasks.Client or an inline scheduler.AuditCleanupFunc
//
// # Adding a New Store
//
//  1. Implement the four persistence interfaces, returning the database
//     sentinels for missing and duplicate rows.
//  2. Add compile-time checks to checks.go.
//  3. Select it in entrypoint.openStore by DATABASE_DRIVER.
package interfaces
