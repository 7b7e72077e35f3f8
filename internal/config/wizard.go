package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .atlas.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to atlas! Let's configure your catalog.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Catalog source.
	sourcePrompt := promptui.Select{
		Label: "Select catalog",
		Items: []string{
			"built-in reference catalog",
			"definition file (YAML)",
		},
	}
	sourceIdx, _, err := sourcePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("catalog selection: %w", err)
	}
	if sourceIdx == 1 {
		catalogPrompt := promptui.Prompt{
			Label:    "Path to the definition file",
			Default:  "catalog.yml",
			Validate: fileExists,
		}
		if cfg.Catalog, err = catalogPrompt.Run(); err != nil {
			return nil, fmt.Errorf("catalog path: %w", err)
		}
	}

	// 2. Title.
	titlePrompt := promptui.Prompt{
		Label:   "Title shown above every view",
		Default: cfg.Title,
	}
	if cfg.Title, err = titlePrompt.Run(); err != nil {
		return nil, fmt.Errorf("title: %w", err)
	}

	// 3. Explorer port.
	portPrompt := promptui.Prompt{
		Label:    "Web explorer port",
		Default:  strconv.Itoa(cfg.Server.Port),
		Validate: validPort,
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Server.Port, _ = strconv.Atoi(strings.TrimSpace(portStr))

	// 4. Layout seed.
	seedPrompt := promptui.Prompt{
		Label:    "Layout seed",
		Default:  strconv.FormatInt(cfg.Layout.Seed, 10),
		Validate: validSeed,
	}
	seedStr, err := seedPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("layout seed: %w", err)
	}
	cfg.Layout.Seed, _ = strconv.ParseInt(strings.TrimSpace(seedStr), 10, 64)

	// 5. Output directory.
	outputPrompt := promptui.Prompt{
		Label:   "Output directory for the static site",
		Default: cfg.OutputDir,
	}
	if cfg.OutputDir, err = outputPrompt.Run(); err != nil {
		return nil, fmt.Errorf("output dir: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := cfg.Save(FileName); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", FileName)
	return cfg, nil
}

func fileExists(s string) error {
	info, err := os.Stat(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("no such file")
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", s)
	}
	return nil
}

func validPort(s string) error {
	p, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || p < 1 || p > 65535 {
		return fmt.Errorf("port must be a number between 1 and 65535")
	}
	return nil
}

func validSeed(s string) error {
	if _, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err != nil {
		return fmt.Errorf("seed must be an integer")
	}
	return nil
}
