// Package skills loads the documentation-driven skill and agent manifests
// packaged alongside the validator. Skills are directories containing a
// SKILL.md file with YAML frontmatter; agents are single markdown files with
// the same frontmatter shape. The host assistant consumes these files
// directly - this package only discovers and sanity-checks them.
package skills

// Skill represents a packaged skill with its metadata.
type Skill struct {
	Name        string // Unique name from frontmatter
	Description string // Brief description for model decision-making
	Directory   string // Full path to the skill directory
	Path        string // Full path to the SKILL.md file
}

// Agent represents a packaged agent manifest.
type Agent struct {
	Name        string
	Description string
	Path        string
}

// Metadata represents the YAML frontmatter in skill and agent files.
type Metadata struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}
