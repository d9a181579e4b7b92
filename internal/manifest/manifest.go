// Package manifest records everything needed to reproduce a generation run as
// a YAML sidecar next to the image.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"crystal-ca/internal/sims/crystal"
)

// Manifest describes one generation run.
type Manifest struct {
	RunID     string    `yaml:"run_id"`
	CreatedAt time.Time `yaml:"created_at"`
	Output    string    `yaml:"output"`
	Elapsed   string    `yaml:"elapsed"`

	// Config has both seeds pinned, so generating from it reproduces Output.
	Config crystal.Config     `yaml:"config"`
	Stats  crystal.Stats      `yaml:"stats"`
	Seeds  []crystal.SeedCell `yaml:"seeds"`
}

// NewRunID returns a time-ordered identifier for a run.
func NewRunID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// New builds a manifest for a finished run.
func New(runID string, cfg crystal.Config, res *crystal.Result, output string, elapsed time.Duration) *Manifest {
	cfg.Seed = res.Seed
	cfg = cfg.WithNoiseSeed(res.NoiseSeed)
	return &Manifest{
		RunID:     runID,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
		Output:    output,
		Elapsed:   elapsed.Round(time.Millisecond).String(),
		Config:    cfg,
		Stats:     res.Stats,
		Seeds:     res.Seeds,
	}
}

// SidecarPath returns the manifest path for an image path: out.png -> out.yaml.
func SidecarPath(output string) string {
	return strings.TrimSuffix(output, filepath.Ext(output)) + ".yaml"
}

// Write stores the manifest as YAML.
func (m *Manifest) Write(path string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// Load reads a manifest written by Write.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	m := &Manifest{Config: crystal.DefaultConfig()}
	if err := yaml.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if m.Config.NoiseSeed == nil {
		return nil, fmt.Errorf("parse manifest: %s has no noise_seed", path)
	}
	return m, nil
}
