// whoami.go implements the "spoke whoami" command.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the identity behind the stored token",
	RunE:  runWhoami,
}

func runWhoami(cmd *cobra.Command, args []string) error {
	e, err := buildEnv()
	if err != nil {
		return err
	}

	ident, err := e.Session.FetchIdentity()
	if err != nil {
		return reportOutcome(e)
	}
	if ident == nil {
		return fmt.Errorf("not logged in; run: spoke login")
	}

	fmt.Printf("Username: %s\n", ident.Username)
	fmt.Printf("Email:    %s\n", ident.Email)
	fmt.Printf("Role:     %s\n", ident.Role)
	return nil
}
