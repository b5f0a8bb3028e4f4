package prompts

import (
	"fmt"
)

// UnitTestPrompts is the system/user message pair sent for one source file
type UnitTestPrompts struct {
	System string
	User   string
}

// BuildUnitTestPrompts renders the unit test generation prompts for source
// written in language
func BuildUnitTestPrompts(language, source string) (UnitTestPrompts, error) {
	vars := map[string]string{
		"language":    language,
		"source_code": source,
	}

	system, err := Render(templates[UnitTestSystem], vars)
	if err != nil {
		return UnitTestPrompts{}, fmt.Errorf("render %s: %w", UnitTestSystem, err)
	}
	user, err := Render(templates[UnitTestUser], vars)
	if err != nil {
		return UnitTestPrompts{}, fmt.Errorf("render %s: %w", UnitTestUser, err)
	}

	return UnitTestPrompts{System: system, User: user}, nil
}
