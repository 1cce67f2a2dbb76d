package auth

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yavemu/bookadmin/internal/api"
	"github.com/yavemu/bookadmin/internal/config"
	"github.com/yavemu/bookadmin/internal/format"
	"github.com/yavemu/bookadmin/internal/utils"
)

// AuthCmd represents the auth command
var AuthCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authentication commands",
	Long: `Authentication commands for the bookstore backend.

The session token is stored in the configuration file and sent as a
Bearer token on every request.`,
}

// loginCmd logs into the backend
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the backend",
	Long:  "Authenticate against the bookstore backend using email and password",
	RunE:  runLogin,
}

// logoutCmd clears the stored session
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and clear the stored session",
	RunE:  runLogout,
}

// whoamiCmd shows the authenticated user
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the authenticated user",
	RunE:  runWhoami,
}

func runLogin(cmd *cobra.Command, args []string) error {
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")

	if err := utils.ValidateEmail(email); err != nil {
		return err
	}
	if password == "" {
		return errors.New("password is required")
	}

	cfg := config.Get()
	client := api.NewClient(cfg.API.URL)

	response, err := client.Login(email, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	if response.AccessToken == "" {
		return fmt.Errorf("login failed: %s", response.Message)
	}

	if err := config.UpdateAuth(email, response.AccessToken); err != nil {
		return fmt.Errorf("failed to save authentication info: %w", err)
	}

	format.PrintSuccess("✓ Sesión iniciada como %s", email)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	if config.Get().Auth.Token == "" {
		return fmt.Errorf("not logged in")
	}

	if err := config.ClearAuth(); err != nil {
		return fmt.Errorf("failed to clear authentication info: %w", err)
	}

	format.PrintSuccess("✓ Sesión cerrada")
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	if cfg.Auth.Email == "" || cfg.Auth.Token == "" {
		return fmt.Errorf("not logged in")
	}

	fmt.Println(cfg.Auth.Email)
	return nil
}

func init() {
	loginCmd.Flags().StringP("email", "e", "", "Email address")
	loginCmd.Flags().StringP("password", "p", "", "Password")
	loginCmd.MarkFlagRequired("email")
	loginCmd.MarkFlagRequired("password")

	AuthCmd.AddCommand(loginCmd)
	AuthCmd.AddCommand(logoutCmd)
	AuthCmd.AddCommand(whoamiCmd)
}
