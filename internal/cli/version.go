package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"crate-licenses/internal/shared"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version of this tool and exit",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("crate-licenses version %s\n", shared.Version)
		},
	}
}
