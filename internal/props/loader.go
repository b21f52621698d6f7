package props

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/interactiv/extension/internal/util"
	"github.com/interactiv/extension/pkg/core"
)

// DefaultFileName is the props document looked up in the addon folder.
const DefaultFileName = "propsList.xml"

// document mirrors the props XML. Pointers tell a missing element apart from
// an empty one.
type document struct {
	XMLName xml.Name      `xml:"props"`
	Props   []propElement `xml:"prop"`
}

type propElement struct {
	ModelName     *string         `xml:"modelName"`
	Action        *string         `xml:"action"`
	Offsets       *offsetsElement `xml:"offsets"`
	Control       *string         `xml:"control"`
	ControlInput  *string         `xml:"controlInput"`
	Accessibility *string         `xml:"accessibility"`
	Marker        *string         `xml:"marker"`
	HelpText      *string         `xml:"helpText"`
}

type offsetsElement struct {
	Offsets []offsetElement `xml:"offset"`
}

type offsetElement struct {
	X *string `xml:"x"`
	Y *string `xml:"y"`
	Z *string `xml:"z"`
}

// Parse reads a props document.
//
// Missing elements fall back to defaults and numbers that do not parse become
// 0 on that axis. An unknown action, control, accessibility or marker token
// skips that prop only: the returned error joins one *PropError per skipped
// prop while defs still holds every valid prop in document order. A document
// that is not well-formed XML returns no definitions.
func Parse(r io.Reader) ([]Definition, error) {
	var doc document
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding props document: %w", err)
	}

	defs := make([]Definition, 0, len(doc.Props))
	var errs []error
	for i, p := range doc.Props {
		d, err := p.definition(i)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		defs = append(defs, d)
	}
	return defs, errors.Join(errs...)
}

func (p propElement) definition(index int) (Definition, error) {
	d := Definition{
		control:       ControlDefault,
		accessibility: AccessNone,
		marker:        MarkerNone,
	}

	if p.ModelName != nil {
		d.modelName = strings.TrimSpace(*p.ModelName)
	}
	fail := func(field string, err error) (Definition, error) {
		return Definition{}, &PropError{Index: index, ModelName: d.modelName, Field: field, Err: err}
	}

	var err error
	if p.Action != nil {
		if d.action, err = ParseAction(*p.Action); err != nil {
			return fail("action", err)
		}
	}

	if p.Offsets != nil {
		for _, o := range p.Offsets.Offsets {
			d.offsets = append(d.offsets, o.vector())
		}
	}

	control := p.Control
	if control == nil {
		control = p.ControlInput
	}
	if control != nil {
		if d.control, err = ParseControl(*control); err != nil {
			return fail("control", err)
		}
	}

	if p.Accessibility != nil {
		if d.accessibility, err = ParseAccessibility(*p.Accessibility); err != nil {
			return fail("accessibility", err)
		}
	}

	if p.Marker != nil {
		if d.marker, err = ParseMarker(*p.Marker); err != nil {
			return fail("marker", err)
		}
	}

	if p.HelpText != nil {
		d.helpText = *p.HelpText
	}

	return d, nil
}

func (o offsetElement) vector() core.Vector3 {
	return core.Vector3{X: axis(o.X), Y: axis(o.Y), Z: axis(o.Z)}
}

func axis(s *string) float32 {
	if s == nil {
		return 0
	}
	v, ok := util.ParseFloat(*s)
	if !ok {
		return 0
	}
	return v
}

// Load reads the props document at path. A missing file is logged and yields
// no props; skipped props are logged one by one.
func Load(path string, logger *slog.Logger) []Definition {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Error("Props file does not exist", "path", path)
		} else {
			logger.Error("Failed to open props file", "path", path, "error", err)
		}
		return []Definition{}
	}
	defer f.Close()

	defs, err := Parse(f)
	if err != nil {
		var propErrs []*PropError
		collectPropErrors(err, &propErrs)
		if len(propErrs) == 0 {
			logger.Error("Failed to parse props file", "path", path, "error", err)
			return []Definition{}
		}
		for _, pe := range propErrs {
			logger.Warn("Skipping prop", "path", path, "index", pe.Index, "model", pe.ModelName, "field", pe.Field, "error", pe.Err)
		}
	}

	logger.Info("Loaded props", "path", path, "count", len(defs))
	return defs
}

func collectPropErrors(err error, out *[]*PropError) {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			collectPropErrors(e, out)
		}
		return
	}
	var pe *PropError
	if errors.As(err, &pe) {
		*out = append(*out, pe)
	}
}
