package cmd

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/cosim-backend/cosim-backend/sim"
	"github.com/cosim-backend/cosim-backend/sim/cosim"
	"github.com/cosim-backend/cosim-backend/sim/scenario"
)

// RunConfig is the YAML description of one co-simulation run.
type RunConfig struct {
	Scenario             string             `yaml:"scenario"`
	StartTime            float64            `yaml:"start_time"`
	StopTime             float64            `yaml:"stop_time"`
	StopTimeDefined      bool               `yaml:"stop_time_defined"`
	DefaultEventStepSize float64            `yaml:"default_event_step_size"`
	RandomSeed           int64              `yaml:"random_seed"`
	Parameters           map[string]float64 `yaml:"parameters"` // scenario parameters by name
	Senders              []SenderSpec       `yaml:"senders"`
	Observe              []string           `yaml:"observe"`
}

// SenderSpec configures one periodic message source.
type SenderSpec struct {
	Input   string  `yaml:"input"`
	Period  float64 `yaml:"period"`
	FirstID int64   `yaml:"first_id"`
	Offset  float64 `yaml:"offset"`
}

// LoadRunConfig reads and parses a YAML run configuration file.
func LoadRunConfig(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run config: %w", err)
	}
	return ParseRunConfig(bytes.NewReader(data))
}

// ParseRunConfig decodes a run configuration. Unknown fields are an error.
func ParseRunConfig(r io.Reader) (*RunConfig, error) {
	var cfg RunConfig
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing run config: %w", err)
	}
	return &cfg, nil
}

// Validate checks the scenario name and the time and sender ranges.
func (c *RunConfig) Validate() error {
	if !scenario.IsValid(c.Scenario) {
		return fmt.Errorf("unknown scenario %q; valid scenarios: %v", c.Scenario, scenario.Names())
	}
	if math.IsNaN(c.StopTime) || math.IsInf(c.StopTime, 0) {
		return fmt.Errorf("stop_time must be finite, got %g", c.StopTime)
	}
	if c.StopTime < c.StartTime {
		return fmt.Errorf("stop_time %g precedes start_time %g", c.StopTime, c.StartTime)
	}
	for i, s := range c.Senders {
		if s.Input == "" {
			return fmt.Errorf("senders[%d]: input is required", i)
		}
		if s.Period <= 0 {
			return fmt.Errorf("senders[%d] (%s): period must be positive, got %g", i, s.Input, s.Period)
		}
		if s.Offset < 0 {
			return fmt.Errorf("senders[%d] (%s): offset must be non-negative, got %g", i, s.Input, s.Offset)
		}
	}
	return nil
}

// NewBackend builds the scenario's backend and applies the step size, the
// random seed and the scenario parameters. The backend is not initialized.
func (c *RunConfig) NewBackend() (*sim.Backend, error) {
	sc, err := scenario.New(c.Scenario)
	if err != nil {
		return nil, err
	}
	b := sim.NewBackend(sc)
	slots := b.Slots()
	if err := slots.SetReal(sim.VarDefaultStepSize, c.DefaultEventStepSize); err != nil {
		return nil, err
	}
	if err := slots.SetInteger(sim.VarRandomSeed, c.RandomSeed); err != nil {
		return nil, err
	}

	types := make(map[string]sim.Variable)
	for _, v := range slots.Variables() {
		types[v.Name] = v
	}
	names := make([]string, 0, len(c.Parameters))
	for name := range c.Parameters {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		value := c.Parameters[name]
		v, ok := types[name]
		if !ok || v.Causality != sim.CausalityParameter {
			return nil, fmt.Errorf("parameters: %q is not a parameter of scenario %s", name, c.Scenario)
		}
		if v.Type == sim.TypeInteger {
			if value != math.Trunc(value) {
				return nil, fmt.Errorf("parameters: %q is an integer, got %g", name, value)
			}
			err = slots.SetInteger(name, int64(value))
		} else {
			err = slots.SetReal(name, value)
		}
		if err != nil {
			return nil, fmt.Errorf("parameters: %w", err)
		}
	}
	return b, nil
}

// InitConfig returns the experiment setup passed to Backend.Initialize.
func (c *RunConfig) InitConfig() sim.InitConfig {
	return sim.InitConfig{
		StartTime:       c.StartTime,
		StopTime:        c.StopTime,
		StopTimeDefined: c.StopTimeDefined,
	}
}

// CosimConfig returns the orchestrator configuration.
func (c *RunConfig) CosimConfig() cosim.Config {
	senders := make([]cosim.SenderConfig, len(c.Senders))
	for i, s := range c.Senders {
		senders[i] = cosim.SenderConfig{Input: s.Input, Period: s.Period, FirstID: s.FirstID, Offset: s.Offset}
	}
	return cosim.Config{
		StartTime: c.StartTime,
		StopTime:  c.StopTime,
		Senders:   senders,
		Observe:   c.Observe,
	}
}
