// register.go implements the "spoke register" command.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	registerEmail     string
	registerFirstName string
	registerLastName  string
	registerRole      string
)

var registerCmd = &cobra.Command{
	Use:   "register <username>",
	Short: "Create a new account",
	Long: `Create a new account on the backend. Registration never logs the
caller in; follow up with "spoke login". An omitted role defaults to
customer.`,
	Args: cobra.ExactArgs(1),
	RunE: runRegister,
}

func runRegister(cmd *cobra.Command, args []string) error {
	e, err := buildEnv()
	if err != nil {
		return err
	}

	username := args[0]
	if registerEmail == "" {
		return fmt.Errorf("--email is required")
	}

	password, err := readPassword("Password: ")
	if err != nil {
		return err
	}
	if password == "" {
		return fmt.Errorf("password is required")
	}

	_ = e.Session.Register(username, registerEmail, password,
		registerFirstName, registerLastName, registerRole)
	return reportOutcome(e)
}

func init() {
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "Email address (required)")
	registerCmd.Flags().StringVar(&registerFirstName, "first-name", "", "First name")
	registerCmd.Flags().StringVar(&registerLastName, "last-name", "", "Last name")
	registerCmd.Flags().StringVar(&registerRole, "role", "", "Account role (defaults to customer)")
}
