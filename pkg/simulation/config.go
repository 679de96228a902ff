package simulation

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/lao-tseu-is-alive/go-butterflies/pkg/flight"
	"github.com/lao-tseu-is-alive/go-butterflies/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-butterflies/pkg/layout"
)

//go:embed config.schema.json
var configSchema string

// Zone is an axis-aligned box given as one [min, max] interval per axis.
type Zone struct {
	X [2]float64 `json:"x"`
	Y [2]float64 `json:"y"`
	Z [2]float64 `json:"z"`
}

// Bounds converts the zone for the boundary enforcer.
func (z Zone) Bounds() flight.Bounds {
	return flight.NewBounds(z.X, z.Y, z.Z)
}

// Config describes a meadow: how many butterflies, where they fly and land, and
// how they behave.
type Config struct {
	// Population
	Count int    `json:"count"`
	Seed  uint64 `json:"seed"` // same seed and frame times replay the same flight

	// Space
	FlightZone Zone `json:"flightZone"`
	SpawnZone  Zone `json:"spawnZone"`

	// Landing sites, given directly and/or as page cards whose upper corners are used
	LandingSites []geometry.Vector3D `json:"landingSites"`
	Page         layout.Page         `json:"page"`
	Cards        []layout.Card       `json:"cards"`

	Flight flight.Params `json:"flight"`
}

func DefaultConfig() *Config {
	return &Config{
		Count:      3,
		Seed:       1,
		FlightZone: Zone{X: [2]float64{-4, 4}, Y: [2]float64{-3, 3}, Z: [2]float64{-3, 3}},
		SpawnZone:  Zone{X: [2]float64{-3, 3}, Y: [2]float64{-2, 2}, Z: [2]float64{-2, 2}},
		LandingSites: []geometry.Vector3D{
			{X: -2, Y: 1, Z: 0},
			{X: 2, Y: 1, Z: 0},
			{X: -2, Y: -1.5, Z: 0},
			{X: 2, Y: -1.5, Z: 0},
		},
		Page:   layout.DefaultPage(),
		Flight: flight.DefaultParams(),
	}
}

// Sites returns the explicit landing sites followed by those derived from the cards.
func (c *Config) Sites() ([]geometry.Vector3D, error) {
	sites := append([]geometry.Vector3D(nil), c.LandingSites...)
	if len(c.Cards) == 0 {
		return sites, nil
	}
	fromCards, err := layout.LandingSites(c.page(), c.Cards)
	if err != nil {
		return nil, fmt.Errorf("cards: %w", err)
	}
	return append(sites, fromCards...), nil
}

// page stretches the configured page over the front face of the flight zone.
func (c *Config) page() layout.Page {
	p := c.Page
	p.World.Min[0], p.World.Max[0] = c.FlightZone.X[0], c.FlightZone.X[1]
	p.World.Min[1], p.World.Max[1] = c.FlightZone.Y[0], c.FlightZone.Y[1]
	return p
}

// Validate reports every semantic problem of the configuration, wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	var errs []error

	if c.Count < 0 {
		errs = append(errs, fmt.Errorf("count %d must not be negative", c.Count))
	}

	zone := c.FlightZone.Bounds()
	if err := zone.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("flightZone: %w", err))
	}
	spawn := c.SpawnZone.Bounds()
	if err := spawn.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("spawnZone: %w", err))
	} else if !zone.Contains(spawn.Min) || !zone.Contains(spawn.Max) {
		errs = append(errs, errors.New("spawnZone must lie inside flightZone"))
	}

	if err := c.Flight.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("flight: %w", err))
	}

	sites, err := c.Sites()
	if err != nil {
		errs = append(errs, err)
	}
	if err == nil && len(sites) == 0 && c.Flight.LandingProbability > 0 {
		errs = append(errs, errors.New("no landing sites while landingProbability is above zero"))
	}
	for i, s := range sites {
		if !zone.Contains(s) {
			errs = append(errs, fmt.Errorf("landing site %d %v is outside the flight zone", i, s))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// LoadConfig reads a JSON or YAML (.yaml, .yml) file, validates it against the
// embedded schema and overlays it on DefaultConfig.
func LoadConfig(configFile string) (*Config, error) {
	// 1. Compile Schema
	sch, err := jsonschema.CompileString("config.schema.json", configSchema)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	// 2. Read Config File
	raw, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	switch strings.ToLower(filepath.Ext(configFile)) {
	case ".yaml", ".yml":
		if raw, err = yamlToJSON(raw); err != nil {
			return nil, fmt.Errorf("failed to decode config yaml: %w", err)
		}
	}

	// 3. Validate
	var v interface{}
	if err := json.NewDecoder(bytes.NewReader(raw)).Decode(&v); err != nil {
		return nil, fmt.Errorf("failed to decode config json: %w", err)
	}
	if err := sch.Validate(v); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	// 4. Unmarshal over the defaults
	cfg := DefaultConfig()
	if err := json.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func yamlToJSON(raw []byte) ([]byte, error) {
	var doc interface{}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		doc = map[string]interface{}{}
	}
	return json.Marshal(doc)
}
