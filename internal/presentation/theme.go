package presentation

import "strings"

// Theme is the dashboard colour scheme. It is passed in with each request
// and returned with the presentation rather than kept on the server.
type Theme string

const (
	LightTheme Theme = "light"
	DarkTheme  Theme = "dark"
)

// ParseTheme reads a theme name, defaulting to LightTheme
func ParseTheme(s string) Theme {
	if Theme(strings.ToLower(strings.TrimSpace(s))) == DarkTheme {
		return DarkTheme
	}
	return LightTheme
}

// Toggle returns the other theme
func (t Theme) Toggle() Theme {
	if t == DarkTheme {
		return LightTheme
	}
	return DarkTheme
}
