package app

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewBuildDistCmd(mgr Manager) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build-dist",
		Short: "Assemble the distributable layout of schemas, spec documents and skills",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			count, err := mgr.BuildDist(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Copied %d files to dist\n", count)
			return nil
		},
	}

	return cmd
}
