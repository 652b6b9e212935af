package app

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewSkillsCmd(mgr Manager) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "skills",
		Short: "Inspect the packaged assistant skills and agents",
	}

	cmd.AddCommand(newSkillsListCmd(mgr))

	return cmd
}

func newSkillsListCmd(mgr Manager) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List packaged skills and agents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sk, err := mgr.Skills()
			if err != nil {
				return err
			}
			ag, err := mgr.Agents()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Skills (%d):\n", len(sk))
			for _, s := range sk {
				fmt.Fprintf(w, "  %s - %s\n", s.Name, s.Description)
			}
			fmt.Fprintf(w, "Agents (%d):\n", len(ag))
			for _, a := range ag {
				fmt.Fprintf(w, "  %s - %s\n", a.Name, a.Description)
			}
			return nil
		},
	}
}
