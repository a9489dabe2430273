package input

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan")).Bold(true)
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Prompt asks the user for text input with an optional default value.
// If the user presses Enter without typing anything, the default is returned.
//
// Example:
//
//	symbol := input.Prompt("Token symbol", "MFT")
//	// Displays: Token symbol (MFT): _
func Prompt(message, defaultValue string) string {
	reader := bufio.NewReader(os.Stdin)

	// Format prompt with default hint
	if defaultValue != "" {
		fmt.Print(promptStyle.Render(message) + " " +
			hintStyle.Render(fmt.Sprintf("(%s)", defaultValue)) + ": ")
	} else {
		fmt.Print(promptStyle.Render(message) + ": ")
	}

	// Read input
	input, err := reader.ReadString('\n')
	if err != nil {
		return defaultValue
	}

	// Trim whitespace
	input = strings.TrimSpace(input)

	// Return default if empty
	if input == "" {
		return defaultValue
	}

	return input
}

// Confirm asks the user a yes/no question.
// Returns true if the user answers yes (y/Y/yes/YES), false otherwise.
// If defaultYes is true, pressing Enter returns true. Otherwise, returns false.
//
// Example:
//
//	if input.Confirm("Target directory is not empty. Continue?", false) {
//	    // proceed
//	}
//	// Displays: Target directory is not empty. Continue? [y/N]: _
func Confirm(message string, defaultYes bool) bool {
	reader := bufio.NewReader(os.Stdin)

	// Format prompt with [Y/n] or [y/N] hint
	hint := "[y/N]"
	if defaultYes {
		hint = "[Y/n]"
	}

	fmt.Print(promptStyle.Render(message) + " " +
		hintStyle.Render(hint) + ": ")

	// Read input
	input, err := reader.ReadString('\n')
	if err != nil {
		return defaultYes
	}

	// Trim whitespace and convert to lowercase
	input = strings.TrimSpace(strings.ToLower(input))

	// Empty input returns default
	if input == "" {
		return defaultYes
	}

	// Check for yes answers
	return input == "y" || input == "yes"
}
