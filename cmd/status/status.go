package status

import (
	"github.com/spf13/cobra"

	"github.com/yavemu/bookadmin/internal/api"
	"github.com/yavemu/bookadmin/internal/config"
	"github.com/yavemu/bookadmin/internal/format"
)

// StatusCmd probes the backend health endpoint. The probe uses a short
// timeout so an offline backend answers quickly instead of hanging.
var StatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show backend connection status",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	client := api.NewClient(cfg.API.URL)

	health, err := client.Health()
	if err != nil {
		format.PrintError("Backend: offline (%s)", cfg.API.URL)
		format.PrintDebug("health check: %v", err)
		return nil
	}

	format.PrintSuccess("Backend: %s (%s)", health.Status, cfg.API.URL)
	if health.Version != "" {
		format.PrintInfo("Versión: %s", health.Version)
	}
	return nil
}
