package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/DiegoRubas/SCC-Solver/pkg/core/model"
	"github.com/DiegoRubas/SCC-Solver/pkg/core/solver"
)

// Defaults applied to keys left out of the config file
const (
	DefaultParticipantsTab = "Participants"
	DefaultOutputDir       = "out"
)

// Columns names the participant sheet columns
type Columns struct {
	Name     string   `yaml:"name,omitempty"`
	Score    string   `yaml:"score,omitempty"`
	Choices  []string `yaml:"choices,omitempty" validate:"omitempty,min=1,max=3,unique,dive,required"`
	Redacted []string `yaml:"redacted,omitempty" validate:"omitempty,dive,required"`
}

// SolverConfig selects and tunes the solver backend
type SolverConfig struct {
	Backend         string        `yaml:"backend,omitempty" validate:"omitempty,oneof=simplex maxsat"`
	TimeLimit       time.Duration `yaml:"time_limit,omitempty"`
	MaxSATPrecision *int          `yaml:"maxsat_precision,omitempty" validate:"omitempty,min=0,max=6"`
}

// Config represents the application configuration
type Config struct {
	Missions           []string       `yaml:"missions" validate:"required,min=1,unique,dive,required"`
	CapacityPerMission int            `yaml:"capacity_per_mission,omitempty" validate:"min=0"`
	Capacities         map[string]int `yaml:"capacities,omitempty" validate:"omitempty,dive,min=1"`

	Columns      Columns `yaml:"columns,omitempty"`
	NotGranted   string  `yaml:"not_granted,omitempty"`
	OrderByScore *bool   `yaml:"order_by_score,omitempty"`

	Solver SolverConfig `yaml:"solver,omitempty"`

	ParticipantSheetID string `yaml:"participant_sheet_id,omitempty"`
	ParticipantsTab    string `yaml:"participants_tab,omitempty"`
	ResultSheetID      string `yaml:"result_sheet_id,omitempty"`
	DatabaseSheetID    string `yaml:"database_sheet_id,omitempty"`
	PostgresURL        string `yaml:"postgres_url,omitempty" validate:"omitempty,url"`
	OutputDir          string `yaml:"output_dir,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads the configuration from scc_config.yaml
func Load() (*Config, error) {
	return LoadWithEnv("")
}

// LoadWithEnv loads the configuration for an environment.
// env="dev" looks for "scc_config.dev.yaml" in the current directory, then the home directory.
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findFile(envFileName("scc_config", env, "yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads, defaults and validates the configuration at path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ApplyDefaults()

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ApplyDefaults fills every optional key that was left empty
func (c *Config) ApplyDefaults() {
	if c.Columns.Name == "" {
		c.Columns.Name = model.DefaultNameColumn
	}
	if c.Columns.Score == "" {
		c.Columns.Score = model.DefaultScoreColumn
	}
	if len(c.Columns.Choices) == 0 {
		c.Columns.Choices = slices.Clone(model.DefaultChoiceColumns)
	}
	if c.Columns.Redacted == nil {
		c.Columns.Redacted = slices.Clone(model.DefaultRedactedColumns)
	}
	if c.NotGranted == "" {
		c.NotGranted = model.DefaultNotGranted
	}
	if c.OrderByScore == nil {
		orderByScore := true
		c.OrderByScore = &orderByScore
	}
	if c.Solver.Backend == "" {
		c.Solver.Backend = solver.BackendSimplex
	}
	if c.Solver.TimeLimit == 0 {
		c.Solver.TimeLimit = solver.DefaultTimeLimit
	}
	if c.Solver.MaxSATPrecision == nil {
		precision := solver.DefaultMaxSATPrecision
		c.Solver.MaxSATPrecision = &precision
	}
	if c.ParticipantsTab == "" {
		c.ParticipantsTab = DefaultParticipantsTab
	}
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
}

// Validate validates the configuration struct and the mission capacities
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if cfg.Solver.TimeLimit < 0 {
		return fmt.Errorf("invalid solver.time_limit: %s is negative", cfg.Solver.TimeLimit)
	}

	for name := range cfg.Capacities {
		if !slices.Contains(cfg.Missions, name) {
			return fmt.Errorf("invalid capacities: %q is not a configured mission", name)
		}
	}

	for _, mission := range cfg.MissionList() {
		if mission.Capacity < 1 {
			return fmt.Errorf("invalid capacity for mission %q: set capacity_per_mission or capacities.%s", mission.Name, mission.Name)
		}
	}

	return nil
}

// MissionList returns the configured missions in order, each with its capacity
func (c *Config) MissionList() []model.Mission {
	missions := make([]model.Mission, len(c.Missions))
	for j, name := range c.Missions {
		capacity := c.CapacityPerMission
		if override, ok := c.Capacities[name]; ok {
			capacity = override
		}
		missions[j] = model.Mission{Name: name, Capacity: capacity}
	}
	return missions
}

// ColumnSpec returns the participant sheet layout
func (c *Config) ColumnSpec() model.ColumnSpec {
	return model.ColumnSpec{
		Name:     c.Columns.Name,
		Score:    c.Columns.Score,
		Choices:  slices.Clone(c.Columns.Choices),
		Redacted: slices.Clone(c.Columns.Redacted),
	}
}

// ShouldOrderByScore reports whether participants are sorted by score before modelling
func (c *Config) ShouldOrderByScore() bool {
	return c.OrderByScore == nil || *c.OrderByScore
}

// BackendOptions returns the solver construction options
func (c *Config) BackendOptions() solver.BackendOptions {
	opts := solver.BackendOptions{MaxSATPrecision: solver.DefaultMaxSATPrecision}
	if c.Solver.MaxSATPrecision != nil {
		opts.MaxSATPrecision = *c.Solver.MaxSATPrecision
	}
	return opts
}

// envFileName builds "<base>.<env>.<ext>", or "<base>.<ext>" when env is empty
func envFileName(base, env, ext string) string {
	if env == "" {
		return base + "." + ext
	}
	return base + "." + env + "." + ext
}

// findFile searches for fileName in the current directory and then the home directory
func findFile(fileName string) (string, error) {
	if _, err := os.Stat(fileName); err == nil {
		return fileName, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homePath := filepath.Join(homeDir, fileName)
	if _, err := os.Stat(homePath); err == nil {
		return homePath, nil
	}

	return "", fmt.Errorf("%s not found in current directory or home directory", fileName)
}
