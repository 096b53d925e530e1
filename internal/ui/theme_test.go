package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestThemeByName_FallsBackToFirst(t *testing.T) {
	assert.Equal(t, "light", themeByName("light").Name)
	assert.Equal(t, themes[0].Name, themeByName("no-such-theme").Name)
	assert.Equal(t, themes[0].Name, themeByName("").Name)
}

func TestNextTheme_Cycles(t *testing.T) {
	seen := map[string]bool{}
	name := themes[0].Name
	for range themes {
		seen[name] = true
		name = nextTheme(name).Name
	}
	assert.Equal(t, themes[0].Name, name, "cycling all themes returns to the start")
	assert.Len(t, seen, len(themes))
}
