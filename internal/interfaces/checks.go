package interfaces

// Compile-time checks that every store satisfies the interfaces the
// services consume.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/animeshelf/library/internal/audit"
	"github.com/animeshelf/library/internal/auth"
	"github.com/animeshelf/library/internal/database/animes"
	auditrepo "github.com/animeshelf/library/internal/database/audit"
	"github.com/animeshelf/library/internal/database/mongostore"
	"github.com/animeshelf/library/internal/database/users"
	"github.com/animeshelf/library/internal/scheduler"
	"github.com/animeshelf/library/internal/services"
	"github.com/animeshelf/library/internal/tasks"
)

// =============================================================================
// SQL repositories (gorm)
// =============================================================================

var _ auth.UserStore = (*users.Repository)(nil)
var _ services.UserReader = (*users.Repository)(nil)
var _ services.AnimeStore = (*animes.Repository)(nil)
var _ audit.EventStore = (*auditrepo.Repository)(nil)

// =============================================================================
// Document store (mongo)
// =============================================================================

var _ auth.UserStore = (*mongostore.Store)(nil)
var _ services.UserReader = (*mongostore.Store)(nil)
var _ services.AnimeStore = (*mongostore.Store)(nil)
var _ audit.EventStore = (*mongostore.Store)(nil)

// =============================================================================
// Audit trail and maintenance
// =============================================================================

var _ auth.AuditLogger = (*audit.Service)(nil)
var _ services.LibraryAuditor = (*audit.Service)(nil)
var _ tasks.AuditEventCleaner = (*audit.Service)(nil)
var _ scheduler.AuditCleanupRunner = (*tasks.Client)(nil)
