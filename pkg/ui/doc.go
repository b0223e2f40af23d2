// Package ui renders Graph API models for the terminal using lipgloss.
package ui
