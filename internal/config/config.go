package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App    App    `mapstructure:"app"`
	Sports Sports `mapstructure:"sports"`
	AI     AI     `mapstructure:"ai"`
	Story  StoryC `mapstructure:"story"`
	Output Output `mapstructure:"output"`
}

// App holds general application configuration
type App struct {
	Debug      bool   `mapstructure:"debug"`
	ConfigFile string `mapstructure:"config_file"`
}

// Sports holds match data provider configuration
type Sports struct {
	BaseURL string          `mapstructure:"base_url"`
	Timeout string          `mapstructure:"timeout"`
	Teams   map[string]Team `mapstructure:"teams"`
}

// Team describes one team that stories can be generated for.
type Team struct {
	ID      string `mapstructure:"id"`       // TheSportsDB numeric team id
	Name    string `mapstructure:"name"`     // Display name
	APIName string `mapstructure:"api_name"` // Name as it appears in provider responses
	Sport   string `mapstructure:"sport"`
	League  string `mapstructure:"league"`
}

// AI holds AI/LLM configuration
type AI struct {
	Gemini GeminiConfig `mapstructure:"gemini"`
}

// GeminiConfig holds Google Gemini configuration
type GeminiConfig struct {
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	MaxTokens   int32   `mapstructure:"max_tokens"`
	Temperature float32 `mapstructure:"temperature"`
}

// StoryC holds story validation configuration
type StoryC struct {
	ExpectedSlides int `mapstructure:"expected_slides"`
}

// Output holds output configuration
type Output struct {
	Directory   string `mapstructure:"directory"`
	OpenPreview bool   `mapstructure:"open_preview"`
}

var globalConfig *Config

// Load reads configuration from file and environment into the global Config.
// Precedence: explicit file > ./storygen.yaml or $HOME/.storygen.yaml >
// environment variables (STORYGEN_*) > defaults.
func Load(configFile string) (*Config, error) {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
		viper.SetConfigName(".storygen")
		viper.SetConfigType("yaml")
	}

	setDefaults()
	bindEnvironmentVariables()

	viper.SetEnvPrefix("STORYGEN")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	config.App.ConfigFile = viper.ConfigFileUsed()

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	globalConfig = config
	return config, nil
}

// Get returns the global configuration, loading it if necessary
func Get() *Config {
	if globalConfig == nil {
		config, err := Load("")
		if err != nil {
			panic(fmt.Sprintf("Failed to load configuration: %v", err))
		}
		return config
	}
	return globalConfig
}

// TeamKeys returns the configured team keys. Map iteration order is not
// stable, so callers that need a fixed ordering sort the result.
func (c *Config) TeamKeys() []string {
	keys := make([]string, 0, len(c.Sports.Teams))
	for key := range c.Sports.Teams {
		keys = append(keys, key)
	}
	return keys
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("app.debug", false)

	// TheSportsDB free tier. "123" is the public free API key segment.
	viper.SetDefault("sports.base_url", "https://www.thesportsdb.com/api/v1/json/123")
	viper.SetDefault("sports.timeout", "10s")
	viper.SetDefault("sports.teams", map[string]map[string]string{
		"manutd": {
			"id":       "133612",
			"name":     "Manchester United",
			"api_name": "Manchester United",
			"sport":    "football",
			"league":   "Premier League",
		},
		"lakers": {
			"id":       "134867",
			"name":     "Los Angeles Lakers",
			"api_name": "Los Angeles Lakers",
			"sport":    "basketball",
			"league":   "NBA",
		},
	})

	viper.SetDefault("ai.gemini.model", "gemini-2.5-flash")
	viper.SetDefault("ai.gemini.max_tokens", 1024)
	viper.SetDefault("ai.gemini.temperature", 0.7)

	viper.SetDefault("story.expected_slides", 4)

	viper.SetDefault("output.directory", "output")
	viper.SetDefault("output.open_preview", false)
}

// bindEnvironmentVariables sets up flexible environment variable binding
func bindEnvironmentVariables() {
	bindEnvKeys("ai.gemini.api_key", []string{
		"GEMINI_API_KEY",
		"GOOGLE_GEMINI_API_KEY",
		"GOOGLE_AI_API_KEY",
	})
}

// bindEnvKeys binds the first set environment variable from candidates to key
func bindEnvKeys(key string, candidates []string) {
	args := append([]string{key}, candidates...)
	_ = viper.BindEnv(args...)
}

// validateConfig checks constraints that would otherwise surface as confusing
// failures deep in the pipeline.
func validateConfig(config *Config) error {
	if len(config.Sports.Teams) == 0 {
		return fmt.Errorf("no teams configured under sports.teams")
	}
	for key, team := range config.Sports.Teams {
		if team.ID == "" {
			return fmt.Errorf("team %q has no sports.teams.%s.id configured", key, key)
		}
	}
	if config.Story.ExpectedSlides <= 0 {
		return fmt.Errorf("story.expected_slides must be positive, got %d", config.Story.ExpectedSlides)
	}
	return nil
}
