package books

import "github.com/yavemu/bookadmin/internal/dashboard"

// BooksCmd groups the book management commands; every subcommand is
// derived from the entity configuration in the registry.
var BooksCmd = dashboard.NewEntityCommand("books")
