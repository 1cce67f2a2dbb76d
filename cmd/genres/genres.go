package genres

import "github.com/yavemu/bookadmin/internal/dashboard"

// GenresCmd groups the genre management commands; every subcommand is
// derived from the entity configuration in the registry.
var GenresCmd = dashboard.NewEntityCommand("genres")
