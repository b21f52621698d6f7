package memory

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/interactiv/extension/pkg/core"
	"github.com/klauspost/compress/gzip"
)

// JournalExport is the root JSON structure of an exported session.
type JournalExport struct {
	SessionID        string            `json:"sessionId"`
	ExtensionVersion string            `json:"extensionVersion"`
	Character        string            `json:"character"`
	PropsFile        string            `json:"propsFile"`
	PropsLoaded      int               `json:"propsLoaded"`
	StartTime        time.Time         `json:"startTime"`
	EndTime          time.Time         `json:"endTime"`
	Interactions     []InteractionJSON `json:"interactions"`
	TyreSlashes      []TyreSlashJSON   `json:"tyreSlashes"`
	ActionCounts     []ActionCount     `json:"actionCounts"`
}

// InteractionJSON is one fired prop action.
type InteractionJSON struct {
	Time          time.Time    `json:"time"`
	Tick          uint64       `json:"tick"`
	ModelName     string       `json:"modelName"`
	Action        string       `json:"action"`
	Control       uint16       `json:"control"`
	Accessibility uint32       `json:"accessibility"`
	Position      [3]float32   `json:"position"`
	Offsets       [][3]float32 `json:"offsets"`
}

// TyreSlashJSON is one burst tyre.
type TyreSlashJSON struct {
	Time         time.Time  `json:"time"`
	Tick         uint64     `json:"tick"`
	VehicleModel string     `json:"vehicleModel"`
	Tyre         int        `json:"tyre"`
	Position     [3]float32 `json:"position"`
}

// ActionCount is how often an action fired during the session.
type ActionCount struct {
	Action string `json:"action"`
	Count  int    `json:"count"`
}

func vec(v core.Vector3) [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}

// exportJSON writes the journal to a (gzipped) JSON file. Callers hold b.mu.
func (b *Backend) exportJSON() error {
	export := b.buildExport()

	name := sanitizeFileName(b.session.Character)
	if name == "" {
		name = "session"
	}
	timestamp := b.session.StartTime.Format("20060102_150405")

	filename := fmt.Sprintf("interactiv_%s_%s.json", name, timestamp)
	if b.cfg.CompressOutput {
		filename += ".gz"
	}
	outputPath := filepath.Join(b.cfg.OutputDir, filename)

	if err := os.MkdirAll(b.cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := writeExport(outputPath, export, b.cfg.CompressOutput); err != nil {
		return err
	}

	b.lastExportPath = outputPath
	return nil
}

func (b *Backend) buildExport() JournalExport {
	export := JournalExport{
		SessionID:        b.session.ID,
		ExtensionVersion: b.session.ExtensionVersion,
		Character:        b.session.Character,
		PropsFile:        b.session.PropsFile,
		PropsLoaded:      b.session.PropsLoaded,
		StartTime:        b.session.StartTime,
		EndTime:          b.endTime,
		Interactions:     make([]InteractionJSON, 0, len(b.interactions)),
		TyreSlashes:      make([]TyreSlashJSON, 0, len(b.tyreSlashes)),
		ActionCounts:     make([]ActionCount, 0),
	}

	counts := make(map[string]int)
	for _, i := range b.interactions {
		offsets := make([][3]float32, 0, len(i.Offsets))
		for _, o := range i.Offsets {
			offsets = append(offsets, vec(o))
		}
		export.Interactions = append(export.Interactions, InteractionJSON{
			Time:          i.Time,
			Tick:          i.Tick,
			ModelName:     i.ModelName,
			Action:        i.Action,
			Control:       i.Control,
			Accessibility: i.Accessible,
			Position:      vec(i.Position),
			Offsets:       offsets,
		})
		counts[i.Action]++
	}

	for _, t := range b.tyreSlashes {
		export.TyreSlashes = append(export.TyreSlashes, TyreSlashJSON{
			Time:         t.Time,
			Tick:         t.Tick,
			VehicleModel: t.VehicleModel,
			Tyre:         t.Tyre,
			Position:     vec(t.Position),
		})
	}

	for action, n := range counts {
		export.ActionCounts = append(export.ActionCounts, ActionCount{Action: action, Count: n})
	}
	sort.Slice(export.ActionCounts, func(i, j int) bool {
		return export.ActionCounts[i].Action < export.ActionCounts[j].Action
	})

	return export
}

func writeExport(path string, data JournalExport, compress bool) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("failed to close file: %w", cerr)
		}
	}()

	var w io.Writer = f
	if compress {
		gz := gzip.NewWriter(f)
		defer func() {
			if cerr := gz.Close(); err == nil && cerr != nil {
				err = fmt.Errorf("failed to finish gzip stream: %w", cerr)
			}
		}()
		w = gz
	}

	if err := json.NewEncoder(w).Encode(data); err != nil {
		return fmt.Errorf("failed to encode journal: %w", err)
	}
	return nil
}

// ReadExport decodes an exported journal, gzipped or not.
func ReadExport(path string) (JournalExport, error) {
	var export JournalExport

	f, err := os.Open(path)
	if err != nil {
		return export, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return export, fmt.Errorf("opening gzip stream: %w", err)
		}
		defer gz.Close()
		r = gz
	}

	if err := json.NewDecoder(r).Decode(&export); err != nil {
		return export, fmt.Errorf("decoding journal: %w", err)
	}
	return export, nil
}

func sanitizeFileName(s string) string {
	r := strings.NewReplacer(" ", "_", ":", "_", "/", "_", "\\", "_")
	return r.Replace(strings.TrimSpace(s))
}
