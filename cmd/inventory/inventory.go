package inventory

import "github.com/yavemu/bookadmin/internal/dashboard"

// InventoryCmd groups the read-only inventory movement commands; the
// subcommands are derived from the entity configuration in the registry.
var InventoryCmd = dashboard.NewEntityCommand("inventory-movements")
