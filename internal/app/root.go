package app

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dgtlntv/design-tokens-validator/internal/config"
	"github.com/dgtlntv/design-tokens-validator/internal/dist"
	"github.com/dgtlntv/design-tokens-validator/internal/fsh"
	"github.com/dgtlntv/design-tokens-validator/internal/schema"
	"github.com/dgtlntv/design-tokens-validator/internal/skills"
)

// Version is the current version of dtv, set at build time.
var Version = "dev"

// SchemaDirEnvVar overrides the schema root directory.
const SchemaDirEnvVar = "DTV_SCHEMA_DIR"

// defaultSchemaDir is used when neither flag, environment variable nor config
// file names a schema root.
const defaultSchemaDir = "schemas"

// Banner with colour codes.
var Banner = "\033[32m" + `
    ____  _______    __
   / __ \/_  __/ |  / /
  / / / / / /  | | / /
 / /_/ / / /   | |/ /
/_____/ /_/    |___/
` + "\033[0m"

var LongDescription = `
dtv validates W3C Design Tokens documents (*.tokens.json) and resolver
documents (*.resolver.json) against the schemas shipped with this repository.
All schema references resolve to local files - nothing is fetched over the
network. It also lists the packaged assistant skills and builds the
distributable layout of schemas, specification documents and skill packages.
`

// NewRootCmd creates the root command and wires up dependencies.
func NewRootCmd(lazy *LazyManager, ll *slog.LevelVar, stderr io.Writer, envProvider fsh.EnvProvider) *cobra.Command {
	var debug bool
	var noColour bool
	var schemaDirFlag string

	rootCmd := &cobra.Command{
		Use:           "dtv",
		Short:         "Validate W3C Design Tokens documents",
		Version:       Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Long:          Banner + "\n" + LongDescription,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip initialization for help and completion commands
			if cmd.Name() == "help" || isCompletionCommand(cmd) {
				return nil
			}
			// Skip if already initialised (e.g., in tests)
			if lazy.HasInner() {
				if debug {
					ll.Set(slog.LevelDebug)
				}
				return nil
			}

			// 1. Setup Logging
			if debug {
				ll.Set(slog.LevelDebug)
			}
			logger, _ := setupLogger(stderr, ll)

			// 2. Build Dependencies
			cfg, err := config.Load(".")
			if err != nil {
				return err
			}

			schemaDir, err := initSchemaDir(schemaDirFlag, cfg, fsh.NewPathResolver(), envProvider)
			if err != nil {
				return err
			}

			discovery := skills.NewDiscovery("skills", "agents")
			builder := dist.NewBuilder(".", "dist", logger)

			// 3. Hydrate the Lazy Wrapper
			realMgr := NewCLIManager(logger, schemaDir, ".", cfg.Output,
				fsh.NewFileReader(), discovery, builder, cmd.OutOrStdout())
			lazy.SetInner(realMgr)

			if cfg.NoColour {
				noColour = true
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&schemaDirFlag, "schemas", "s", "", "path to schema directory (overrides env/config)")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable debug logging")

	rootCmd.PersistentFlags().BoolVarP(&noColour, "nocolour", "c", false, "Disable colour in output")
	// Support alternate spellings
	rootCmd.PersistentFlags().BoolVar(&noColour, "nocolor", false, "")
	_ = rootCmd.PersistentFlags().MarkHidden("nocolor")

	// Subcommands
	rootCmd.AddCommand(NewValidateCmd(lazy))
	rootCmd.AddCommand(NewBuildDistCmd(lazy))
	rootCmd.AddCommand(NewSkillsCmd(lazy))

	return rootCmd
}

// initSchemaDir resolves the schema root directory, preferring the flag over
// the environment variable over the config file over the default, and
// verifies it is an existing directory.
func initSchemaDir(flagValue string, cfg *config.Config, pathResolver fsh.PathResolver,
	envProvider fsh.EnvProvider,
) (string, error) {
	sd := flagValue
	if sd == "" {
		sd = envProvider.Get(SchemaDirEnvVar)
	}
	if sd == "" {
		sd = cfg.SchemaDir
	}
	if sd == "" {
		sd = defaultSchemaDir
	}

	sdc, err := pathResolver.CanonicalPath(sd)
	if err != nil {
		return "", &schema.SchemaRootError{Path: sd, Err: err}
	}
	sd = sdc

	info, err := os.Stat(sd)
	if err != nil {
		return "", &schema.SchemaRootError{Path: sd, Err: err}
	}
	if !info.IsDir() {
		return "", &schema.SchemaRootNotFolderError{Path: sd}
	}
	return sd, nil
}

// isCompletionCommand returns true if the command or any of its parents is the "completion" command.
func isCompletionCommand(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "completion" {
			return true
		}
	}
	return false
}
