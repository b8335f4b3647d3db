package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/threebody/internal/dynamo"
)

// ErrNonFinite is returned by WriteJSON for runs that diverged; JSON has
// no encoding for NaN or Inf. WriteCSV handles them.
var ErrNonFinite = errors.New("storage: trajectory contains NaN or Inf")

type ExportData struct {
	Meta   RunMetadata  `json:"meta"`
	Steps  int          `json:"steps"`
	Times  []float64    `json:"times"`
	Bodies []BodyExport `json:"bodies"`
}

type BodyExport struct {
	Name      string       `json:"name"`
	Positions [][3]float64 `json:"positions"`
}

// WriteJSON encodes the run metadata and every sample as indented JSON.
func WriteJSON(w io.Writer, meta RunMetadata, hist dynamo.Histories) error {
	n := hist.Len()
	if n < 0 {
		return dynamo.ErrHistoryMismatch
	}
	for _, t := range hist {
		if !t.IsValid() {
			return ErrNonFinite
		}
	}

	data := ExportData{
		Meta:   meta,
		Steps:  max(n-1, 0),
		Times:  make([]float64, n),
		Bodies: make([]BodyExport, len(hist)),
	}
	for i := range data.Times {
		data.Times[i] = float64(i) * meta.Dt
	}
	for b, traj := range hist {
		pos := make([][3]float64, len(traj))
		for i, p := range traj {
			pos[i] = [3]float64{p.X, p.Y, p.Z}
		}
		data.Bodies[b] = BodyExport{Name: meta.BodyNames[b], Positions: pos}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// WriteCSV writes one row per step: step, time, then x/y/z for each body.
func WriteCSV(w io.Writer, dt float64, hist dynamo.Histories) error {
	n := hist.Len()
	if n < 0 {
		return dynamo.ErrHistoryMismatch
	}

	cw := csv.NewWriter(w)

	header := []string{"step", "time"}
	for b := 1; b <= len(hist); b++ {
		header = append(header, fmt.Sprintf("x%d", b), fmt.Sprintf("y%d", b), fmt.Sprintf("z%d", b))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	row := make([]string, len(header))
	for i := 0; i < n; i++ {
		row[0] = strconv.Itoa(i)
		row[1] = formatFloat(float64(i) * dt)
		for b, traj := range hist {
			p := traj[i]
			row[2+3*b] = formatFloat(p.X)
			row[3+3*b] = formatFloat(p.Y)
			row[4+3*b] = formatFloat(p.Z)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// Shortest representation that parses back to the same float, NaN and
// Inf included.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// ReadCSV parses the layout written by WriteCSV.
func ReadCSV(r io.Reader) (dynamo.Histories, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return dynamo.Histories{}, err
	}

	var hist dynamo.Histories
	if len(records) < 2 {
		return hist, nil
	}

	want := 2 + 3*dynamo.NumBodies
	for i := range hist {
		hist[i] = make(dynamo.Trajectory, 0, len(records)-1)
	}

	for line, record := range records[1:] {
		if len(record) != want {
			return dynamo.Histories{}, fmt.Errorf("row %d: expected %d fields, got %d", line+1, want, len(record))
		}
		for b := range hist {
			var v [3]float64
			for k := range v {
				v[k], err = strconv.ParseFloat(record[2+3*b+k], 64)
				if err != nil {
					return dynamo.Histories{}, fmt.Errorf("row %d: %w", line+1, err)
				}
			}
			hist[b] = append(hist[b], dynamo.Vec3{X: v[0], Y: v[1], Z: v[2]})
		}
	}

	return hist, nil
}
