// Package schema locates schema files on disk, resolves the external
// references between them and orchestrates validation of design token and
// resolver documents against the shipped schema set.
package schema

// Kind identifies which document family a validation run targets.
type Kind string

const (
	// KindTokens validates W3C design token documents (*.tokens.json).
	KindTokens Kind = "tokens"
	// KindResolver validates theming/resolution documents (*.resolver.json).
	KindResolver Kind = "resolver"

	// Accepted on the command line as an alternate spelling of KindResolver.
	kindResolverAlias = "resolvers"
)

// NewKind parses a CLI kind argument.
func NewKind(s string) (Kind, error) {
	switch s {
	case string(KindTokens):
		return KindTokens, nil
	case string(KindResolver), kindResolverAlias:
		return KindResolver, nil
	default:
		return "", &UnknownKindError{Kind: s}
	}
}

// RootSchemaFile returns the filename of the root schema for the kind,
// relative to the schema root directory.
func (k Kind) RootSchemaFile() string {
	if k == KindResolver {
		return "resolver.json"
	}
	return "format.json"
}

// Pattern returns the glob used to discover targets for the kind when no
// explicit files are given.
func (k Kind) Pattern() string {
	if k == KindResolver {
		return "**/*.resolver.json"
	}
	return "**/*.tokens.json"
}
