package publishers

import "github.com/yavemu/bookadmin/internal/dashboard"

// PublishersCmd groups the publisher management commands; every subcommand is
// derived from the entity configuration in the registry.
var PublishersCmd = dashboard.NewEntityCommand("publishers")
