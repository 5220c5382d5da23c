package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/tourplan/internal/client/storage"
	"github.com/iudanet/tourplan/internal/validation"
)

type loginResult struct {
	Token string `yaml:"token"`
	Saved bool   `yaml:"saved"`
}

// NewLoginCommand creates the login command.
func NewLoginCommand(rootOpts *RootOptions, deps Deps) *cobra.Command {
	var (
		username string
		noSave   bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Obtain an API token",
		Long: "Asks for username and password and obtains an API token.\n" +
			"The token is saved for the server and used by later commands when --token is not given.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if username == "" {
				// Запрашиваем username
				username, err = deps.IO.ReadInput("Username: ")
				if err != nil {
					return fmt.Errorf("failed to read username: %w", err)
				}
			}
			if err := validation.ValidateUsername(username); err != nil {
				return fmt.Errorf("invalid username: %w", err)
			}

			password, err := deps.IO.ReadPassword("Password: ")
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
			if password == "" {
				return fmt.Errorf("password cannot be empty")
			}

			ctx, cancel := contextWithTimeout(cmd, rootOpts)
			defer cancel()

			token, err := deps.NewAuthenticator(rootOpts).Login(ctx, username, password)
			if err != nil {
				return err
			}

			saved := false
			if deps.Sessions != nil && !noSave {
				err := deps.Sessions.SaveSession(ctx, &storage.Session{
					ServerURL: rootOpts.Server,
					Username:  username,
					Token:     token,
					CreatedAt: time.Now(),
				})
				if err != nil {
					return fmt.Errorf("failed to save session: %w", err)
				}
				saved = true
			}

			if rootOpts.Format == "yaml" {
				return writeYAML(deps.IO, loginResult{Token: token, Saved: saved})
			}
			deps.IO.Println("✓ Login successful!")
			deps.IO.Printf("Token: %s\n", token)
			deps.IO.Println()
			if saved {
				deps.IO.Printf("Token saved for %s\n", rootOpts.Server)
				return nil
			}
			deps.IO.Printf("Use it with --token or export TOURPLAN_TOKEN=%s\n", token)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "username (prompted when empty)")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "print the token without saving it")

	return cmd
}
