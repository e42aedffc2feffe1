package styled

import "github.com/fatih/color"

// DimmedColor returns a dimmed *color.Color to print secondary information
// such as row counts and NULL cells.
func DimmedColor() *color.Color {
	return color.RGB(128, 128, 128)
}

// ErrorColor returns the *color.Color used for engine errors.
func ErrorColor() *color.Color {
	return color.New(color.FgRed)
}
