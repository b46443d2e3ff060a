package ui

import (
	"github.com/charmbracelet/huh"
)

// LoginDetails is the credential input gathered by PromptLogin.
type LoginDetails struct {
	Provider string
	Token    string
	Username string
}

// PromptLogin asks for a hosting provider and an API token interactively.
func PromptLogin() (LoginDetails, error) {
	details := LoginDetails{Provider: "github"}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Hosting provider").
				Options(
					huh.NewOption("GitHub", "github"),
				).
				Value(&details.Provider),
			huh.NewInput().
				Title("API token").
				EchoMode(huh.EchoModePassword).
				Value(&details.Token),
			huh.NewInput().
				Title("Username (optional)").
				Value(&details.Username),
		),
	)

	if err := form.Run(); err != nil {
		return LoginDetails{}, err
	}
	return details, nil
}
