// Package entity contains the core business objects of the project.
package entity

// ThemePreference is the account's UI theme. It is stored with the account
// so the SPA can restore it across devices, but it carries no authorization
// meaning.
type ThemePreference string

const (
	// ThemeLight forces the light UI theme.
	ThemeLight ThemePreference = "light"
	// ThemeDark forces the dark UI theme.
	ThemeDark ThemePreference = "dark"
	// ThemeSystem follows the operating system preference.
	ThemeSystem ThemePreference = "system"
)

// String returns the string representation of the ThemePreference.
func (t ThemePreference) String() string {
	return string(t)
}

// IsValid checks if the ThemePreference is a valid value.
func (t ThemePreference) IsValid() bool {
	switch t {
	case ThemeLight, ThemeDark, ThemeSystem:
		return true
	default:
		return false
	}
}
