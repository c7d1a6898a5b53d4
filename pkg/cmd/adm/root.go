// Package adm groups administrative/debug helpers that are not part of the
// report pipeline.
package adm

import (
	"github.com/spf13/cobra"
)

func NewCmdAdm() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "adm",
		Short: "Administrative commands.",
	}
	cmd.AddCommand(parseJUnitCmd)
	return cmd
}
