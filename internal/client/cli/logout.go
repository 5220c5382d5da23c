package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iudanet/tourplan/internal/client/storage"
)

// NewLogoutCommand creates the logout command.
func NewLogoutCommand(rootOpts *RootOptions, deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved token for the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if deps.Sessions == nil {
				return errors.New("session storage is not available")
			}

			err := deps.Sessions.DeleteSession(commandContext(cmd), rootOpts.Server)
			if errors.Is(err, storage.ErrSessionNotFound) {
				deps.IO.Printf("No saved session for %s\n", rootOpts.Server)
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to delete session: %w", err)
			}

			deps.IO.Printf("✓ Logged out from %s\n", rootOpts.Server)
			return nil
		},
	}
}
