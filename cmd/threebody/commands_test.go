package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/threebody/internal/config"
	"github.com/san-kum/threebody/internal/storage"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	preset, configFile = "", ""
	cmd := &cobra.Command{Use: "test"}
	addConfigFlags(cmd)
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func TestResolveConfig_Layering(t *testing.T) {
	cfg, err := resolveConfig(parse(t))
	require.NoError(t, err)
	assert.Equal(t, config.DefaultDt, cfg.Dt)
	assert.Equal(t, config.DefaultNumSteps, cfg.NumSteps)

	cfg, err = resolveConfig(parse(t, "--preset", "leo-hour", "--steps", "5", "--dm3", "2.5"))
	require.NoError(t, err)
	assert.Equal(t, 3600.0, cfg.Dt)
	assert.Equal(t, 5, cfg.NumSteps)
	assert.Equal(t, []float64{0, 0, 2.5}, cfg.MassDeltas)

	path := filepath.Join(t.TempDir(), "run.yaml")
	file := config.DefaultConfig()
	file.Name = "from-file"
	file.Dt = 42
	require.NoError(t, config.Save(path, file))

	cfg, err = resolveConfig(parse(t, "--preset", "leo-hour", "--config", path))
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.Name)
	assert.Equal(t, 42.0, cfg.Dt)
}

func TestResolveConfig_Errors(t *testing.T) {
	_, err := resolveConfig(parse(t, "--preset", "nope"))
	assert.ErrorIs(t, err, config.ErrUnknownPreset)

	_, err = resolveConfig(parse(t, "--dt=-1"))
	assert.ErrorIs(t, err, config.ErrInvalid)

	_, err = resolveConfig(parse(t, "--config", filepath.Join(t.TempDir(), "missing.yaml")))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRunMetadata(t *testing.T) {
	cfg, err := config.GetPreset("accretion")
	require.NoError(t, err)
	cfg.NumSteps = 9

	sim, _, err := simulate(cfg)
	require.NoError(t, err)

	meta := runMetadata(cfg, sim)
	assert.Equal(t, cfg.BodyNames(), meta.BodyNames)
	assert.Equal(t, meta.Masses[2]+6*5, meta.FinalMasses[2])
	assert.NotZero(t, meta.G)
}

func TestExportSVG_WritesFile(t *testing.T) {
	dataDir = t.TempDir()
	frameMs, static, allBodies = 0, false, true

	cfg := config.DefaultConfig()
	sim, hist, err := simulate(cfg)
	require.NoError(t, err)

	store := storage.New(dataDir, logger)
	require.NoError(t, store.Init())
	runID, err := store.Save(runMetadata(cfg, sim), hist)
	require.NoError(t, err)

	output = filepath.Join(t.TempDir(), "run.svg")
	require.NoError(t, exportSVG(nil, []string{runID}))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "</svg>")
	assert.Equal(t, 3*(cfg.NumSteps+1), strings.Count(string(data), "<circle"))

	output = filepath.Join(t.TempDir(), "missing-dir", "run.svg")
	assert.Error(t, exportSVG(nil, []string{runID}))
}
