// Package config holds the fixed machine parameters of the simulated core:
// register and memory sizing, structural unit counts, and the per-opcode
// latency table. Values default to the reference configuration and can be
// overridden from a JSON file.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sarchlab/tomasim/insts"
)

// Config holds the machine parameters for one simulation run.
type Config struct {
	// NumRegisters is the number of floating-point registers in the
	// register file. Default: 11.
	NumRegisters int `json:"num_registers"`

	// MemorySize is the number of addressable words of (symbolic) memory.
	// Default: 1024.
	MemorySize int `json:"memory_size"`

	// NumLoadBuffers is the number of load-buffer reservation stations.
	// Default: 2.
	NumLoadBuffers int `json:"num_load_buffers"`

	// NumROBEntries is the capacity of the reorder buffer. Default: 6.
	NumROBEntries int `json:"num_rob_entries"`

	// NumAddStations is the number of reservation stations in the Add unit.
	// Default: 3.
	NumAddStations int `json:"num_add_stations"`

	// NumMultStations is the number of reservation stations in the Mult
	// unit. Default: 2.
	NumMultStations int `json:"num_mult_stations"`

	// AddLatency is the execution latency, in cycles, of ADDD/SUBD.
	// Default: 2.
	AddLatency int `json:"add_latency"`

	// SubLatency is kept distinct from AddLatency for configurability even
	// though the reference machine gives ADDD and SUBD the same latency.
	// Default: 2.
	SubLatency int `json:"sub_latency"`

	// MultLatency is the execution latency, in cycles, of MULTD.
	// Default: 10.
	MultLatency int `json:"mult_latency"`

	// DivLatency is the execution latency, in cycles, of DIVD.
	// Default: 20.
	DivLatency int `json:"div_latency"`

	// LoadLatency is the combined effective-address + memory-access
	// latency, in cycles, of LD. Default: 2.
	LoadLatency int `json:"load_latency"`
}

// DefaultConfig returns the reference machine configuration from the
// simulator's external interface contract.
func DefaultConfig() *Config {
	return &Config{
		NumRegisters:    11,
		MemorySize:      1024,
		NumLoadBuffers:  2,
		NumROBEntries:   6,
		NumAddStations:  3,
		NumMultStations: 2,
		AddLatency:      2,
		SubLatency:      2,
		MultLatency:     10,
		DivLatency:      20,
		LoadLatency:     2,
	}
}

// LoadConfig loads a Config from a JSON file, starting from the default
// configuration so that an override file need only specify the fields it
// changes.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SaveConfig writes a Config to a JSON file.
func (c *Config) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks that all structural counts and latencies are usable.
func (c *Config) Validate() error {
	if c.NumRegisters <= 0 {
		return fmt.Errorf("num_registers must be > 0")
	}
	if c.MemorySize <= 0 {
		return fmt.Errorf("memory_size must be > 0")
	}
	if c.NumLoadBuffers <= 0 {
		return fmt.Errorf("num_load_buffers must be > 0")
	}
	if c.NumROBEntries <= 0 {
		return fmt.Errorf("num_rob_entries must be > 0")
	}
	if c.NumAddStations <= 0 {
		return fmt.Errorf("num_add_stations must be > 0")
	}
	if c.NumMultStations <= 0 {
		return fmt.Errorf("num_mult_stations must be > 0")
	}
	if c.AddLatency <= 0 || c.SubLatency <= 0 || c.MultLatency <= 0 ||
		c.DivLatency <= 0 || c.LoadLatency <= 0 {
		return fmt.Errorf("all opcode latencies must be > 0")
	}
	return nil
}

// Clone returns a deep copy of the Config.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// AddUnitLatencies returns the latency table for the Add functional unit.
func (c *Config) AddUnitLatencies() map[insts.Op]int {
	return map[insts.Op]int{
		insts.OpADDD: c.AddLatency,
		insts.OpSUBD: c.SubLatency,
	}
}

// MultUnitLatencies returns the latency table for the Mult functional unit.
func (c *Config) MultUnitLatencies() map[insts.Op]int {
	return map[insts.Op]int{
		insts.OpMULTD: c.MultLatency,
		insts.OpDIVD:  c.DivLatency,
	}
}
