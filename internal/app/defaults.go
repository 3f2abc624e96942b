package app

import (
	"fmt"
	"os"
	"path/filepath"

	"tidy-go/internal/model"
)

// GetDefaults returns application default paths, checking environment
// variables first. Environment variables:
//   - TIDY_CONFIG_PATH: config file location (default: ~/.config/tidy.toml)
//   - TIDY_HOME: base directory for tidy data (default: ~/.local/share/tidy)
func GetDefaults() (map[string]string, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	baseDir, err := getBaseDir()
	if err != nil {
		return nil, err
	}

	return map[string]string{
		"config_path": configPath,
		"base_dir":    baseDir,
		"log_dir":     filepath.Join(baseDir, "log"),
	}, nil
}

func getConfigPath() (string, error) {
	if path := os.Getenv("TIDY_CONFIG_PATH"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "tidy.toml"), nil
}

func getBaseDir() (string, error) {
	if path := os.Getenv("TIDY_HOME"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".local", "share", "tidy"), nil
}

// DefaultRules returns the rule set installed on first run: documents,
// images, and videos are routed into category subfolders under
// ~/Organized.
func DefaultRules() []model.Rule {
	categories := []struct {
		name     string
		fileType model.FileType
		dest     string
	}{
		{"Documents", model.FileTypeDocument, "~/Organized/Documents"},
		{"Images", model.FileTypeImage, "~/Organized/Images"},
		{"Videos", model.FileTypeVideo, "~/Organized/Videos"},
	}

	rules := make([]model.Rule, 0, len(categories))
	for _, c := range categories {
		rules = append(rules, model.Rule{
			Name:    "Organize " + c.name,
			Enabled: true,
			Conditions: []model.RuleCondition{
				{
					Type:     model.ConditionFileType,
					Operator: model.OperatorEquals,
					Value:    string(c.fileType),
				},
			},
			Actions: []model.RuleAction{
				{
					Type: model.ActionMoveToFolder,
					Parameters: map[string]string{
						model.ParamDestinationPath: c.dest,
					},
				},
			},
		})
	}
	return rules
}
