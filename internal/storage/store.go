package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/san-kum/threebody/internal/dynamo"
	"go.uber.org/zap"
)

const (
	metadataFile     = "metadata.json"
	trajectoriesFile = "trajectories.csv"
)

var ErrRunNotFound = errors.New("storage: run not found")

type Store struct {
	baseDir string
	logger  *zap.Logger
}

func New(baseDir string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{baseDir: baseDir, logger: logger}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Timestamp   time.Time  `json:"timestamp"`
	Dt          float64    `json:"dt"`
	NumSteps    int        `json:"num_steps"`
	G           float64    `json:"g"`
	BodyNames   [3]string  `json:"body_names"`
	Masses      [3]float64 `json:"masses"`
	FinalMasses [3]float64 `json:"final_masses"`
	MassDeltas  [3]float64 `json:"mass_deltas"`
	FrameMs     int        `json:"frame_ms"`
	Finite      bool       `json:"finite"`
}

// Save writes trajectories and then metadata under a new run directory
// and returns the run ID. ID, Timestamp and Finite in meta are derived
// here. A failed save leaves no run directory behind.
func (s *Store) Save(meta RunMetadata, hist dynamo.Histories) (string, error) {
	if hist.Len() < 0 {
		return "", dynamo.ErrHistoryMismatch
	}

	now := time.Now()
	meta.ID = fmt.Sprintf("%s_%d_%s", pathSafe(meta.Name), now.Unix(), uuid.NewString()[:8])
	meta.Timestamp = now
	meta.Finite = true
	for _, t := range hist {
		if !t.IsValid() {
			meta.Finite = false
			break
		}
	}

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	if err := writeRun(runDir, meta, hist); err != nil {
		if rmErr := os.RemoveAll(runDir); rmErr != nil {
			s.logger.Warn("removing incomplete run", zap.String("dir", runDir), zap.Error(rmErr))
		}
		return "", err
	}

	s.logger.Info("run saved",
		zap.String("id", meta.ID),
		zap.String("dir", runDir),
		zap.Int("samples", hist.Len()),
		zap.Bool("finite", meta.Finite),
	)

	return meta.ID, nil
}

// writeRun writes metadata last so List never sees a run without
// trajectories.
func writeRun(runDir string, meta RunMetadata, hist dynamo.Histories) error {
	err := writeFile(filepath.Join(runDir, trajectoriesFile), func(w io.Writer) error {
		return WriteCSV(w, meta.Dt, hist)
	})
	if err != nil {
		return err
	}

	return writeFile(filepath.Join(runDir, metadataFile), func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	})
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// pathSafe maps anything but letters, digits, '-' and '_' to '-'.
func pathSafe(name string) string {
	safe := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			return r
		}
		return '-'
	}, name)
	if safe == "" {
		return "run"
	}
	return safe
}

// List returns every readable run, oldest first. Unreadable directories
// are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			s.logger.Debug("skipping run directory", zap.String("dir", entry.Name()), zap.Error(err))
			continue
		}

		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("decode %s metadata: %w", runID, err)
	}

	return &meta, nil
}

func (s *Store) LoadTrajectories(runID string) (dynamo.Histories, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, trajectoriesFile))
	if err != nil {
		if os.IsNotExist(err) {
			return dynamo.Histories{}, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return dynamo.Histories{}, err
	}
	defer file.Close()

	hist, err := ReadCSV(file)
	if err != nil {
		return dynamo.Histories{}, fmt.Errorf("decode %s trajectories: %w", runID, err)
	}
	return hist, nil
}
