package app

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/dgtlntv/design-tokens-validator/internal/schema"
)

func NewValidateCmd(mgr Manager) *cobra.Command {
	var watch bool
	outputVal := formatValue("")

	cmd := &cobra.Command{
		Use:   "validate <kind> [file ...]",
		Short: "Validate design token or resolver documents",
		// Argument validation runs before PersistentPreRunE, so a bad kind is
		// rejected before any config or schema directory is touched.
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.MinimumNArgs(1)(cmd, args); err != nil {
				return err
			}
			_, err := schema.NewKind(args[0])
			return err
		},
		Example: `
VALIDATING EXPLICIT FILES
  dtv validate tokens theme/base.tokens.json
  dtv validate resolver themes.resolver.json

DISCOVERING FILES
  dtv validate tokens     - validates every **/*.tokens.json below the working directory
  dtv validate resolvers  - validates every **/*.resolver.json below the working directory

WATCH MODE
  dtv validate tokens --watch`,
	}

	cmd.Flags().VarP(&outputVal, "output", "o", "Output format (text, context, json)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Watch for changes and rerun validation")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		kind, err := schema.NewKind(args[0])
		if err != nil {
			return err
		}
		targets := args[1:]

		noColour, _ := cmd.Flags().GetBool("nocolour")
		opts := ValidateOptions{
			Output:    string(outputVal),
			UseColour: !noColour,
		}

		if watch {
			wErr := mgr.WatchValidation(cmd.Context(), kind, targets, opts, nil)
			if errors.Is(wErr, context.Canceled) {
				return nil
			}
			return wErr
		}

		ok, err := mgr.Validate(cmd.Context(), kind, targets, opts)
		if err != nil {
			return err
		}
		if !ok {
			return ErrValidationFailed
		}
		return nil
	}

	return cmd
}
