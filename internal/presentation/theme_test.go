package presentation

import "testing"

func TestParseTheme(t *testing.T) {
	tests := []struct {
		input string
		want  Theme
	}{
		{"dark", DarkTheme},
		{" DARK ", DarkTheme},
		{"light", LightTheme},
		{"", LightTheme},
		{"solarized", LightTheme},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseTheme(tt.input); got != tt.want {
				t.Errorf("ParseTheme(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTheme_Toggle(t *testing.T) {
	if LightTheme.Toggle() != DarkTheme {
		t.Error("light should toggle to dark")
	}
	if DarkTheme.Toggle() != LightTheme {
		t.Error("dark should toggle to light")
	}
	if LightTheme.Toggle().Toggle() != LightTheme {
		t.Error("double toggle should be identity")
	}
}
