package skills

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/parser"
)

const skillFileName = "SKILL.md"

// Discovery locates skill and agent manifests below fixed directories.
type Discovery struct {
	skillsDir string
	agentsDir string
}

// NewDiscovery creates a Discovery reading skills from skillsDir and agent
// manifests from agentsDir.
func NewDiscovery(skillsDir, agentsDir string) *Discovery {
	return &Discovery{skillsDir: skillsDir, agentsDir: agentsDir}
}

// Skills returns all packaged skills, sorted by name. Each subdirectory of
// the skills directory must contain a SKILL.md with valid frontmatter;
// a broken manifest is an error rather than silently skipped, since the
// packaged set is shipped by this repository.
func (d *Discovery) Skills() ([]Skill, error) {
	entries, err := os.ReadDir(d.skillsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to read skills directory")
	}

	var skills []Skill
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		dir := filepath.Join(d.skillsDir, entry.Name())
		path := filepath.Join(dir, skillFileName)
		md, err := parseFrontmatter(path)
		if err != nil {
			return nil, errors.Wrapf(err, "skill %s", entry.Name())
		}

		skills = append(skills, Skill{
			Name:        md.Name,
			Description: md.Description,
			Directory:   dir,
			Path:        path,
		})
	}

	sort.Slice(skills, func(i, j int) bool { return skills[i].Name < skills[j].Name })
	return skills, nil
}

// Agents returns all packaged agent manifests, sorted by name.
func (d *Discovery) Agents() ([]Agent, error) {
	entries, err := os.ReadDir(d.agentsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to read agents directory")
	}

	var agents []Agent
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}

		path := filepath.Join(d.agentsDir, entry.Name())
		md, err := parseFrontmatter(path)
		if err != nil {
			return nil, errors.Wrapf(err, "agent %s", entry.Name())
		}

		agents = append(agents, Agent{
			Name:        md.Name,
			Description: md.Description,
			Path:        path,
		})
	}

	sort.Slice(agents, func(i, j int) bool { return agents[i].Name < agents[j].Name })
	return agents, nil
}

// parseFrontmatter reads the YAML frontmatter from a manifest file.
// Name and description are both required.
func parseFrontmatter(path string) (*Metadata, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read manifest")
	}

	md := goldmark.New(goldmark.WithExtensions(meta.Meta))

	var buf bytes.Buffer
	pctx := parser.NewContext()
	if err := md.Convert(content, &buf, parser.WithContext(pctx)); err != nil {
		return nil, errors.Wrap(err, "failed to parse markdown")
	}

	metaData := meta.Get(pctx)
	if metaData == nil {
		return nil, errors.New("missing frontmatter")
	}

	name, _ := metaData["name"].(string)
	description, _ := metaData["description"].(string)
	if name == "" {
		return nil, errors.New("name is required in frontmatter")
	}
	if description == "" {
		return nil, errors.New("description is required in frontmatter")
	}

	return &Metadata{Name: name, Description: description}, nil
}
