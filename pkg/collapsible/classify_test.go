package collapsible

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifier_Classify(t *testing.T) {
	c, err := NewClassifier(DefaultRules(), DefaultFallback)
	require.NoError(t, err)

	tests := []struct {
		name      string
		title     string
		wantIcon  string
		wantTheme string
		wantRule  int
	}{
		{name: "education_phrase", title: "What is PKCE?", wantIcon: IconBook, wantTheme: ThemeInformational, wantRule: 1},
		{name: "overview", title: "Flow Overview", wantIcon: IconBook, wantTheme: ThemeInformational, wantRule: 1},
		{name: "configuration_beats_response", title: "Token Response Configuration", wantIcon: IconSettings, wantTheme: ThemeConfiguration, wantRule: 2},
		{name: "pkce_parameters", title: "PKCE Parameters", wantIcon: IconSettings, wantTheme: ThemeConfiguration, wantRule: 2},
		{name: "request", title: "Authorization Request", wantIcon: IconSend, wantTheme: ThemeAction, wantRule: 3},
		{name: "action_beats_details", title: "Authorization Code Details", wantIcon: IconSend, wantTheme: ThemeAction, wantRule: 3},
		{name: "response", title: "Token Response", wantIcon: IconPackage, wantTheme: ThemeDefault, wantRule: 4},
		{name: "complete", title: "Flow Complete", wantIcon: IconCheckCircle, wantTheme: ThemeSuccess, wantRule: 5},
		{name: "two_word_keyword", title: "Next Steps", wantIcon: IconCheckCircle, wantTheme: ThemeSuccess, wantRule: 5},
		{name: "deep_dive", title: "Deep Dive", wantIcon: IconBook, wantTheme: ThemeSuccess, wantRule: 6},
		{name: "show_is_not_how", title: "Show Details", wantIcon: IconBook, wantTheme: ThemeSuccess, wantRule: 6},
		{name: "case_insensitive", title: "HOW IT WORKS", wantIcon: IconBook, wantTheme: ThemeInformational, wantRule: 1},
		{name: "fallback", title: "Random Title", wantIcon: IconSettings, wantTheme: ThemeDefault, wantRule: 0},
		{name: "keyword_inside_word", title: "Recoding Tips", wantIcon: IconSettings, wantTheme: ThemeDefault, wantRule: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.title)
			assert.Equal(t, tt.wantIcon, got.Icon)
			assert.Equal(t, tt.wantTheme, got.Theme)
			assert.Equal(t, tt.wantRule, got.Rule)
		})
	}
}

func TestClassifier_Icons(t *testing.T) {
	c, err := NewClassifier(DefaultRules(), DefaultFallback)
	require.NoError(t, err)
	assert.Equal(t, []string{IconBook, IconSettings, IconSend, IconPackage, IconCheckCircle}, c.Icons())

	custom, err := NewClassifier([]Rule{{Keywords: []string{"pkce"}, Icon: "lock"}}, DefaultFallback)
	require.NoError(t, err)
	assert.Equal(t, []string{"lock", IconSettings}, custom.Icons())
}

func TestNewClassifier_Validation(t *testing.T) {
	tests := []struct {
		name     string
		rules    []Rule
		fallback Classification
		wantErr  string
	}{
		{name: "missing_fallback_icon", fallback: Classification{}, wantErr: "fallback icon is required"},
		{name: "missing_icon", rules: []Rule{{Keywords: []string{"a"}}}, fallback: DefaultFallback, wantErr: "rule 1: icon is required"},
		{name: "missing_keywords", rules: []Rule{{Icon: "book"}}, fallback: DefaultFallback, wantErr: "rule 1: keywords are required"},
		{name: "punctuation_keyword", rules: []Rule{{Icon: "book", Keywords: []string{"?!"}}}, fallback: DefaultFallback, wantErr: "has no words"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClassifier(tt.rules, tt.fallback)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestIconBinding(t *testing.T) {
	assert.Equal(t, "FiBook", IconBinding("Fi", IconBook))
	assert.Equal(t, "FiCheckCircle", IconBinding("Fi", IconCheckCircle))
	assert.Equal(t, "FiAlertTriangle", IconBinding("Fi", "alert_triangle"))
	assert.Equal(t, "MdSettings", IconBinding("Md", "settings"))
}
