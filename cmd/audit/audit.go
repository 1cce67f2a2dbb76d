package audit

import "github.com/yavemu/bookadmin/internal/dashboard"

// AuditCmd groups the read-only audit trail commands; the subcommands are
// derived from the entity configuration in the registry.
var AuditCmd = dashboard.NewEntityCommand("audit")
