package vault

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Settings is the resolved configuration: which vault to scan, which
// front-matter fields carry titles and dates, and how bars are colored.
type Settings struct {
	Path         string
	CachePath    string
	Editor       string
	ShowProjects bool
	ShowTasks    bool
	ProjectColor string
	TaskColor    string
	TitleFields  []string
	StartFields  []string
	EndFields    []string
}

const (
	KeyPath         = "path"
	KeyCachePath    = "cache-path"
	KeyEditor       = "editor"
	KeyShowProjects = "show-projects"
	KeyShowTasks    = "show-tasks"
	KeyProjectColor = "project-color"
	KeyTaskColor    = "task-color"
	KeyTitleFields  = "title-fields"
	KeyStartFields  = "start-fields"
	KeyEndFields    = "end-fields"
)

var settingKeys = map[string]struct{}{
	KeyPath:         {},
	KeyCachePath:    {},
	KeyEditor:       {},
	KeyShowProjects: {},
	KeyShowTasks:    {},
	KeyProjectColor: {},
	KeyTaskColor:    {},
	KeyTitleFields:  {},
	KeyStartFields:  {},
	KeyEndFields:    {},
}

// Keys lists the valid setting names, sorted.
func Keys() []string {
	keys := make([]string, 0, len(settingKeys))
	for k := range settingKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func setDefaults() {
	viper.SetDefault(KeyPath, "~/vault")
	viper.SetDefault(KeyCachePath, "~/.gantt.cache")
	viper.SetDefault(KeyEditor, "")
	viper.SetDefault(KeyShowProjects, true)
	viper.SetDefault(KeyShowTasks, true)
	viper.SetDefault(KeyProjectColor, "#8250df")
	viper.SetDefault(KeyTaskColor, "#2f81f7")
	viper.SetDefault(KeyTitleFields, []string{"title"})
	viper.SetDefault(KeyStartFields, []string{"start_date", "start"})
	viper.SetDefault(KeyEndFields, []string{"finish_date", "end_date", "due_date", "end"})
}

// LoadSettings reads the .gantt config file (current directory, then home),
// layered under GANTT_* environment overrides and the built-in defaults.
func LoadSettings() (*Settings, error) {
	setDefaults()
	viper.SetConfigName(".gantt") // .yaml is implicit
	viper.SetEnvPrefix("GANTT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if override := os.Getenv("GANTT_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}
	viper.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		viper.AddConfigPath(home)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("vault: read config: %w", err)
		}
	}

	path, err := homedir.Expand(viper.GetString(KeyPath))
	if err != nil {
		return nil, fmt.Errorf("vault: expand path: %w", err)
	}
	cachePath, err := homedir.Expand(viper.GetString(KeyCachePath))
	if err != nil {
		return nil, fmt.Errorf("vault: expand cache path: %w", err)
	}

	return &Settings{
		Path:         path,
		CachePath:    cachePath,
		Editor:       viper.GetString(KeyEditor),
		ShowProjects: viper.GetBool(KeyShowProjects),
		ShowTasks:    viper.GetBool(KeyShowTasks),
		ProjectColor: viper.GetString(KeyProjectColor),
		TaskColor:    viper.GetString(KeyTaskColor),
		TitleFields:  viper.GetStringSlice(KeyTitleFields),
		StartFields:  viper.GetStringSlice(KeyStartFields),
		EndFields:    viper.GetStringSlice(KeyEndFields),
	}, nil
}

// Get returns the current value of a setting as a display string.
func Get(key string) (string, error) {
	if _, ok := settingKeys[key]; !ok {
		return "", fmt.Errorf("vault: unknown setting %q", key)
	}
	return viper.GetString(key), nil
}

// Set stores a setting and persists it to the config file, creating
// ~/.gantt.yaml when no config file exists yet.
func Set(key, value string) error {
	if _, ok := settingKeys[key]; !ok {
		return fmt.Errorf("vault: unknown setting %q", key)
	}
	viper.Set(key, value)
	if file := viper.ConfigFileUsed(); file != "" {
		if err := viper.WriteConfig(); err != nil {
			return fmt.Errorf("vault: write config: %w", err)
		}
		return nil
	}
	home, err := homedir.Dir()
	if err != nil {
		return fmt.Errorf("vault: resolve home: %w", err)
	}
	if err := viper.WriteConfigAs(filepath.Join(home, ".gantt.yaml")); err != nil {
		return fmt.Errorf("vault: write config: %w", err)
	}
	return nil
}
