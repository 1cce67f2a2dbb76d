package users

import "github.com/yavemu/bookadmin/internal/dashboard"

// UsersCmd groups the user management commands; every subcommand is
// derived from the entity configuration in the registry.
var UsersCmd = dashboard.NewEntityCommand("users")
