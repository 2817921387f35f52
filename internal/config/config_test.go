package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.FPS != 60 {
		t.Errorf("FPS = %d, want 60", cfg.FPS)
	}
	if cfg.LEDCount != 225 {
		t.Errorf("LEDCount = %d, want 225", cfg.LEDCount)
	}
	if cfg.OSCBindAddr != "127.0.0.1" {
		t.Errorf("OSCBindAddr = %q, want 127.0.0.1", cfg.OSCBindAddr)
	}
	if cfg.OSCPort != 5005 {
		t.Errorf("OSCPort = %d, want 5005", cfg.OSCPort)
	}
	if cfg.Headless {
		t.Error("Headless default = true, want false")
	}
}

func TestLoad_CustomEnvironment(t *testing.T) {
	t.Setenv("FPS", "30")
	t.Setenv("LED_COUNT", "100")
	t.Setenv("OSC_BIND_ADDR", "0.0.0.0")
	t.Setenv("OSC_PORT", "7700")
	t.Setenv("NO_GUI", "true")
	t.Setenv("ENV", "production")

	cfg := Load()

	if cfg.FPS != 30 {
		t.Errorf("FPS = %d, want 30", cfg.FPS)
	}
	if cfg.LEDCount != 100 {
		t.Errorf("LEDCount = %d, want 100", cfg.LEDCount)
	}
	if cfg.OSCBindAddr != "0.0.0.0" {
		t.Errorf("OSCBindAddr = %q, want 0.0.0.0", cfg.OSCBindAddr)
	}
	if cfg.OSCPort != 7700 {
		t.Errorf("OSCPort = %d, want 7700", cfg.OSCPort)
	}
	if !cfg.Headless {
		t.Error("Headless = false, want true")
	}
	if cfg.Env != "production" {
		t.Errorf("Env = %q, want production", cfg.Env)
	}
}

func TestIsDevelopment(t *testing.T) {
	tests := []struct {
		env      string
		expected bool
	}{
		{"development", true},
		{"production", false},
		{"staging", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			cfg := &Config{Env: tt.env}
			if got := cfg.IsDevelopment(); got != tt.expected {
				t.Errorf("IsDevelopment() = %v, want %v for env %q", got, tt.expected, tt.env)
			}
		})
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("TEST_GET_ENV", "custom_value")
	if got := getEnv("TEST_GET_ENV", "default"); got != "custom_value" {
		t.Errorf("getEnv = %q, want custom_value", got)
	}
	if got := getEnv("NON_EXISTING_VAR_12345_UNIQUE", "default_value"); got != "default_value" {
		t.Errorf("getEnv = %q, want default_value", got)
	}
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("TEST_INT_VAR", "42")
	if got := getEnvInt("TEST_INT_VAR", 10); got != 42 {
		t.Errorf("getEnvInt = %d, want 42", got)
	}

	t.Setenv("TEST_INVALID_INT", "not_a_number")
	if got := getEnvInt("TEST_INVALID_INT", 10); got != 10 {
		t.Errorf("getEnvInt with invalid value = %d, want default 10", got)
	}

	if got := getEnvInt("NON_EXISTING_INT_VAR_12345_UNIQUE", 100); got != 100 {
		t.Errorf("getEnvInt = %d, want default 100", got)
	}
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		name         string
		envValue     string
		defaultValue bool
		expected     bool
		setEnv       bool
	}{
		{"true_string", "true", false, true, true},
		{"false_string", "false", true, false, true},
		{"invalid_string_returns_default", "invalid", true, true, true},
		{"non_existing_returns_default", "", true, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			envKey := "TEST_BOOL_VAR_" + tt.name + "_UNIQUE"
			if tt.setEnv {
				t.Setenv(envKey, tt.envValue)
			}
			if got := getEnvBool(envKey, tt.defaultValue); got != tt.expected {
				t.Errorf("getEnvBool(%s, %v) = %v, want %v", envKey, tt.defaultValue, got, tt.expected)
			}
		})
	}
}
