package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))
)

func printSuccess(msg string) { fmt.Println(successStyle.Render(msg)) }
func printError(msg string)   { fmt.Println(errorStyle.Render(msg)) }
func printInfo(msg string)    { fmt.Println(infoStyle.Render(msg)) }
