package main

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/julianshen/aidocgen/internal/config"
)

func configureCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "configure",
		Short: "Configure API key and model",
		RunE: func(_ *cobra.Command, _ []string) error {
			_, err := runConfigureForm()
			return err
		},
	}
}

// runConfigureForm interactively collects backend credentials and persists
// them to the per-user config file. It returns the saved configuration so
// gen can continue directly after a first-run setup.
func runConfigureForm() (*config.Config, error) {
	cfg := &config.Config{Provider: "openai"}
	var model string

	providerGroup := huh.NewGroup(
		huh.NewSelect[string]().
			Title("Choose your backend").
			Options(
				huh.NewOption("OpenAI", "openai"),
				huh.NewOption("Ollama (local)", "ollama"),
			).
			Value(&cfg.Provider),
	).Title("Configure aidocgen")

	keyGroup := huh.NewGroup(
		huh.NewInput().
			Title("OpenAI API Key").
			Placeholder("sk-...").
			EchoMode(huh.EchoModePassword).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return errors.New("API key is required")
				}
				return nil
			}).
			Value(&cfg.APIKey),
	).Title("Authentication").
		WithHideFunc(func() bool { return cfg.Provider != "openai" })

	modelGroup := huh.NewGroup(
		huh.NewInput().
			Title(fmt.Sprintf("Model to use (default: %s)", config.DefaultModel)).
			Value(&model),
	)

	if err := huh.NewForm(providerGroup, keyGroup, modelGroup).Run(); err != nil {
		return nil, fmt.Errorf("configure: %w", err)
	}

	cfg.Model = strings.TrimSpace(model)
	if cfg.Model == "" {
		cfg.Model = config.DefaultModel
	}

	path, err := config.DefaultPath()
	if err != nil {
		return nil, err
	}
	if err := config.Save(path, cfg); err != nil {
		return nil, err
	}
	log.Printf("configuration saved to %s", path)

	return cfg, nil
}
