package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/yavemu/bookadmin/cmd/audit"
	"github.com/yavemu/bookadmin/cmd/auth"
	"github.com/yavemu/bookadmin/cmd/authors"
	"github.com/yavemu/bookadmin/cmd/books"
	configcmd "github.com/yavemu/bookadmin/cmd/config"
	"github.com/yavemu/bookadmin/cmd/genres"
	"github.com/yavemu/bookadmin/cmd/inventory"
	"github.com/yavemu/bookadmin/cmd/publishers"
	"github.com/yavemu/bookadmin/cmd/status"
	"github.com/yavemu/bookadmin/cmd/users"
	appConfig "github.com/yavemu/bookadmin/internal/config"
)

var (
	cfgFile string
	debug   bool
	output  string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "bookadmin",
	Short: "Bookadmin - Panel de administración de la librería",
	Long: `Bookadmin es la interfaz de administración del catálogo de la librería:
autores, libros, géneros, editoriales, usuarios, movimientos de inventario
y registros de auditoría.

Se comunica con la API REST del backend de la librería; la URL del backend
se configura con BOOKADMIN_API_URL o en el archivo de configuración.`,
	Version: "1.0.0",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := appConfig.Initialize(cfgFile); err != nil {
			return fmt.Errorf("failed to initialize configuration: %w", err)
		}

		if debug {
			appConfig.SetDebug(true)
		}

		if output != "" {
			appConfig.SetOutputFormat(output)
		}

		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.bookadmin.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug mode")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "", "output format (table, json, yaml, text)")

	// Entity command groups
	rootCmd.AddCommand(authors.AuthorsCmd)
	rootCmd.AddCommand(books.BooksCmd)
	rootCmd.AddCommand(genres.GenresCmd)
	rootCmd.AddCommand(publishers.PublishersCmd)
	rootCmd.AddCommand(users.UsersCmd)
	rootCmd.AddCommand(inventory.InventoryCmd)
	rootCmd.AddCommand(audit.AuditCmd)

	// Utility commands
	rootCmd.AddCommand(auth.AuthCmd)
	rootCmd.AddCommand(configcmd.ConfigCmd)
	rootCmd.AddCommand(status.StatusCmd)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".bookadmin")
	}

	viper.SetEnvPrefix("BOOKADMIN")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && debug {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
