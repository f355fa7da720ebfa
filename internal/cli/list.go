// list.go implements the "spoke list" command printing a resource table.
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spoke-dev/spoke/internal/resource"
	"github.com/spoke-dev/spoke/internal/resource/catalog"
)

var listCmd = &cobra.Command{
	Use:   "list <resource>",
	Short: "Fetch and print a resource collection",
	Long: `Fetch one resource collection and print it as a table. Resources:
` + "  " + strings.Join(resourceNames(), ", "),
	Args: cobra.ExactArgs(1),
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	e, err := buildEnv()
	if err != nil {
		return err
	}
	if !e.Session.Authenticated() {
		return fmt.Errorf("not logged in; run: spoke login")
	}

	screen, err := catalog.Lookup(args[0], e.Deps)
	if err != nil {
		return fmt.Errorf("unknown resource %q; one of: %s", args[0], strings.Join(resourceNames(), ", "))
	}

	if err := screen.List(); err != nil {
		return reportOutcome(e)
	}

	printTable(screen.Columns(), screen.Rows())
	fmt.Printf("\n%d record(s)\n", screen.Len())
	return nil
}

// resourceNames returns the catalog's names for help and error output.
func resourceNames() []string {
	var names []string
	for _, s := range catalog.All(resource.Deps{}) {
		names = append(names, s.Name())
	}
	return names
}

// printTable prints rows with each column padded to its widest cell.
func printTable(columns []string, rows [][]string) {
	widths := make([]int, len(columns))
	for i, c := range columns {
		widths[i] = len(c)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	printRow := func(cells []string) {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			parts[i] = fmt.Sprintf("%-*s", widths[i], cell)
		}
		fmt.Println(strings.TrimRight(strings.Join(parts, "  "), " "))
	}

	printRow(columns)
	for _, row := range rows {
		printRow(row)
	}
}
