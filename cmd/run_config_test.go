package cmd

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cosim-backend/cosim-backend/sim"
	"github.com/cosim-backend/cosim-backend/sim/scenario"
)

func TestLoadRunConfig_Simple(t *testing.T) {
	cfg, err := LoadRunConfig("testdata/simple.yaml")
	require.NoError(t, err)

	assert.Equal(t, "simple", cfg.Scenario)
	assert.Equal(t, 4.0, cfg.StopTime)
	assert.True(t, cfg.StopTimeDefined)
	assert.Equal(t, 0.3, cfg.Parameters["channel_delay"])
	require.Len(t, cfg.Senders, 1)
	assert.Equal(t, SenderSpec{Input: "nodeA_send", Period: 1, FirstID: 1}, cfg.Senders[0])
	assert.Equal(t, []string{"nodeB_receive"}, cfg.Observe)
	assert.NoError(t, cfg.Validate())
}

func TestParseRunConfig_UnknownFieldRejected(t *testing.T) {
	// GIVEN a config with a typo in a field name
	yamlText := "scenario: simple\nstop_tme: 4\n"

	// WHEN parsed
	_, err := ParseRunConfig(strings.NewReader(yamlText))

	// THEN strict parsing rejects it
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stop_tme")
}

func TestLoadRunConfig_MissingFile(t *testing.T) {
	_, err := LoadRunConfig("testdata/does-not-exist.yaml")

	assert.ErrorContains(t, err, "reading run config")
}

func TestRunConfig_Validate(t *testing.T) {
	valid := func() RunConfig {
		return RunConfig{Scenario: "simple", StopTime: 4, Senders: []SenderSpec{{Input: "nodeA_send", Period: 1}}}
	}
	tests := []struct {
		name    string
		mutate  func(*RunConfig)
		wantErr string
	}{
		{"valid", func(*RunConfig) {}, ""},
		{"unknown scenario", func(c *RunConfig) { c.Scenario = "ns3" }, "unknown scenario"},
		{"stop before start", func(c *RunConfig) { c.StartTime = 5 }, "precedes start_time"},
		{"infinite stop", func(c *RunConfig) { c.StopTime = math.Inf(1) }, "must be finite"},
		{"zero period", func(c *RunConfig) { c.Senders[0].Period = 0 }, "period must be positive"},
		{"negative period", func(c *RunConfig) { c.Senders[0].Period = -1 }, "period must be positive"},
		{"negative offset", func(c *RunConfig) { c.Senders[0].Offset = -1 }, "offset must be non-negative"},
		{"missing input", func(c *RunConfig) { c.Senders[0].Input = "" }, "input is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)

			err := cfg.Validate()

			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestRunConfig_NewBackend_AppliesParameters(t *testing.T) {
	// GIVEN lss2 with integer and real parameters
	cfg := RunConfig{
		Scenario:             "lss2",
		StopTime:             1,
		DefaultEventStepSize: 0.5,
		RandomSeed:           9,
		Parameters: map[string]float64{
			scenario.LSS2NumDevices: 20,
			scenario.LSS2MaxJitter:  0.01,
		},
	}

	// WHEN the backend is built
	b, err := cfg.NewBackend()
	require.NoError(t, err)

	// THEN each value lands in its slot
	n, err := b.Slots().GetInteger(scenario.LSS2NumDevices)
	require.NoError(t, err)
	assert.Equal(t, int64(20), n)
	j, err := b.Slots().GetReal(scenario.LSS2MaxJitter)
	require.NoError(t, err)
	assert.Equal(t, 0.01, j)
	step, err := b.Slots().GetReal(sim.VarDefaultStepSize)
	require.NoError(t, err)
	assert.Equal(t, 0.5, step)
	s, err := b.Slots().GetInteger(sim.VarRandomSeed)
	require.NoError(t, err)
	assert.Equal(t, int64(9), s)
}

func TestRunConfig_NewBackend_ParameterErrors(t *testing.T) {
	tests := []struct {
		name    string
		params  map[string]float64
		wantErr string
	}{
		{"unknown parameter", map[string]float64{"bandwidth": 1}, "not a parameter"},
		{"input is not a parameter", map[string]float64{"device0_data_send": 1}, "not a parameter"},
		{"fractional integer", map[string]float64{scenario.LSS2NumDevices: 2.5}, "is an integer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := RunConfig{Scenario: "lss2", StopTime: 1, Parameters: tt.params}

			_, err := cfg.NewBackend()

			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestRunConfig_CosimConfig(t *testing.T) {
	cfg := RunConfig{
		StartTime: 1,
		StopTime:  3,
		Senders:   []SenderSpec{{Input: "x", Period: 0.5, FirstID: 7, Offset: 0.1}},
		Observe:   []string{"y"},
	}

	cc := cfg.CosimConfig()

	assert.Equal(t, 1.0, cc.StartTime)
	assert.Equal(t, 3.0, cc.StopTime)
	require.Len(t, cc.Senders, 1)
	assert.Equal(t, int64(7), cc.Senders[0].FirstID)
	assert.Equal(t, 0.1, cc.Senders[0].Offset)
	assert.Equal(t, []string{"y"}, cc.Observe)
}
