package authors

import "github.com/yavemu/bookadmin/internal/dashboard"

// AuthorsCmd groups the author management commands; every subcommand is
// derived from the entity configuration in the registry.
var AuthorsCmd = dashboard.NewEntityCommand("authors")
