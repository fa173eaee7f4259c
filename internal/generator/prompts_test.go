package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPromptCatalog(t *testing.T) {
	catalog, err := DefaultPromptCatalog()
	require.NoError(t, err)

	for _, name := range []string{PromptRoadmapSkeleton, PromptLessonDetail, PromptQuiz, PromptPreQuiz} {
		text, err := catalog.Render(name, map[string]string{"topic": "Volcanoes", "day": "3", "title": "Magma"})
		require.NoError(t, err, name)
		assert.NotEmpty(t, text, name)
		assert.NotContains(t, text, "{topic}", name)
		assert.NotContains(t, text, "{title}", name)
		assert.NotContains(t, text, "{day}", name)
	}
}

func TestPromptCatalog_Render(t *testing.T) {
	catalog, err := LoadPromptCatalog([]byte(`
roadmap_skeleton: "Plan {topic} for {topic}"
lesson_detail: "Day {day}: {title} ({topic})"
quiz: "Quiz {title}"
pre_quiz: "Ask about {topic}"
`))
	require.NoError(t, err)

	tests := []struct {
		name          string
		prompt        string
		vars          map[string]string
		expected      string
		expectedError bool
	}{
		{
			name:     "repeated placeholder",
			prompt:   PromptRoadmapSkeleton,
			vars:     map[string]string{"topic": "Volcanoes"},
			expected: "Plan Volcanoes for Volcanoes",
		},
		{
			name:     "several placeholders",
			prompt:   PromptLessonDetail,
			vars:     map[string]string{"day": "2", "title": "Magma", "topic": "Volcanoes"},
			expected: "Day 2: Magma (Volcanoes)",
		},
		{
			name:     "unknown placeholder left as is",
			prompt:   PromptQuiz,
			vars:     map[string]string{"topic": "Volcanoes"},
			expected: "Quiz {title}",
		},
		{
			name:          "unknown prompt",
			prompt:        "missing",
			vars:          nil,
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := catalog.Render(tt.prompt, tt.vars)
			if tt.expectedError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, text)
		})
	}
}

func TestLoadPromptCatalog_Errors(t *testing.T) {
	tests := []struct {
		name          string
		data          string
		errorContains string
	}{
		{
			name:          "invalid yaml",
			data:          "roadmap_skeleton: [",
			errorContains: "failed to parse prompt catalog",
		},
		{
			name:          "missing templates",
			data:          "roadmap_skeleton: \"x\"\nquiz: \"y\"\n",
			errorContains: "lesson_detail, pre_quiz",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog, err := LoadPromptCatalog([]byte(tt.data))
			assert.Nil(t, catalog)
			assert.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), tt.errorContains), err.Error())
		})
	}
}
