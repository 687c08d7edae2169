package vault

import (
	"testing"

	"github.com/spf13/viper"
)

func TestLoadSettingsDefaults(t *testing.T) {
	viper.Reset()
	t.Setenv("GANTT_CONFIG_PATH", t.TempDir()) // no config file there

	s, err := LoadSettings()
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}
	if !s.ShowProjects || !s.ShowTasks {
		t.Errorf("expected both kinds visible by default")
	}
	if s.ProjectColor == "" || s.TaskColor == "" {
		t.Errorf("expected default colors")
	}
	if len(s.TitleFields) == 0 || len(s.StartFields) == 0 || len(s.EndFields) == 0 {
		t.Errorf("expected default field lists")
	}
	if s.Path == "" || s.CachePath == "" {
		t.Errorf("expected default paths")
	}
}

func TestLoadSettingsEnvOverride(t *testing.T) {
	viper.Reset()
	t.Setenv("GANTT_CONFIG_PATH", t.TempDir())
	t.Setenv("GANTT_PROJECT_COLOR", "#112233")

	s, err := LoadSettings()
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}
	if s.ProjectColor != "#112233" {
		t.Fatalf("expected env override, got %q", s.ProjectColor)
	}
}

func TestSetRejectsUnknownKey(t *testing.T) {
	viper.Reset()
	if err := Set("no-such-setting", "x"); err == nil {
		t.Fatalf("expected an error")
	}
	if _, err := Get("no-such-setting"); err == nil {
		t.Fatalf("expected an error")
	}
}

func TestKeysAreSorted(t *testing.T) {
	keys := Keys()
	if len(keys) != len(settingKeys) {
		t.Fatalf("expected %d keys, got %d", len(settingKeys), len(keys))
	}
	for i := 1; i < len(keys); i++ {
		if keys[i-1] >= keys[i] {
			t.Fatalf("keys out of order at %d: %v", i, keys)
		}
	}
}
