package generator

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Prompt names present in the catalog
const (
	PromptRoadmapSkeleton = "roadmap_skeleton"
	PromptLessonDetail    = "lesson_detail"
	PromptQuiz            = "quiz"
	PromptPreQuiz         = "pre_quiz"
)

//go:embed prompts.yaml
var defaultPrompts []byte

// PromptCatalog holds the prompt templates keyed by name.
// Templates contain {key} placeholders.
type PromptCatalog struct {
	templates map[string]string
}

// LoadPromptCatalog parses a YAML mapping of prompt name to template text and
// checks that every prompt the generator uses is present.
func LoadPromptCatalog(data []byte) (*PromptCatalog, error) {
	templates := map[string]string{}
	if err := yaml.Unmarshal(data, &templates); err != nil {
		return nil, fmt.Errorf("failed to parse prompt catalog: %w", err)
	}

	var missing []string
	for _, name := range []string{PromptRoadmapSkeleton, PromptLessonDetail, PromptQuiz, PromptPreQuiz} {
		if strings.TrimSpace(templates[name]) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("prompt catalog is missing templates: %s", strings.Join(missing, ", "))
	}

	return &PromptCatalog{templates: templates}, nil
}

// DefaultPromptCatalog returns the catalog embedded in the binary
func DefaultPromptCatalog() (*PromptCatalog, error) {
	return LoadPromptCatalog(defaultPrompts)
}

// Render fills the {key} placeholders of the named template
func (c *PromptCatalog) Render(name string, vars map[string]string) (string, error) {
	tmpl, ok := c.templates[name]
	if !ok {
		return "", fmt.Errorf("unknown prompt %q", name)
	}

	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(vars)*2)
	for _, k := range keys {
		pairs = append(pairs, "{"+k+"}", vars[k])
	}

	return strings.TrimSpace(strings.NewReplacer(pairs...).Replace(tmpl)), nil
}
