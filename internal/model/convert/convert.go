// Package convert maps journal records between pkg/core and the GORM models.
package convert

import (
	"encoding/json"

	"github.com/interactiv/extension/internal/model"
	"github.com/interactiv/extension/pkg/core"
	geom "github.com/peterstace/simplefeatures/geom"
	"gorm.io/datatypes"
)

// vectorToPoint converts a core.Vector3 to a geom.Point. Coordinates the
// geometry rejects (NaN or Inf) give an empty point.
func vectorToPoint(v core.Vector3) geom.Point {
	coords := geom.Coordinates{XY: geom.XY{X: float64(v.X), Y: float64(v.Y)}, Z: float64(v.Z), Type: geom.DimXYZ}
	pt, err := geom.NewPoint(coords)
	if err != nil {
		return geom.Point{}
	}
	return pt
}

// pointToVector converts a geom.Point to a core.Vector3. Empty points give the zero vector.
func pointToVector(p geom.Point) core.Vector3 {
	coord, ok := p.Coordinates()
	if !ok {
		return core.Vector3{}
	}
	return core.Vector3{X: float32(coord.XY.X), Y: float32(coord.XY.Y), Z: float32(coord.Z)}
}

// SessionToGorm converts a core.Session. The journal id is assigned on insert.
func SessionToGorm(s core.Session) model.Session {
	return model.Session{
		UUID:             s.ID,
		StartTime:        s.StartTime,
		ExtensionVersion: s.ExtensionVersion,
		Character:        s.Character,
		PropsFile:        s.PropsFile,
		PropsLoaded:      s.PropsLoaded,
		Settings:         datatypes.JSON("{}"),
	}
}

// InteractionToGorm converts a core.Interaction for the session with the given journal id.
func InteractionToGorm(i core.Interaction, sessionID uint) model.Interaction {
	offsets := i.Offsets
	if offsets == nil {
		offsets = []core.Vector3{}
	}
	raw, err := json.Marshal(offsets)
	if err != nil {
		raw = []byte("[]")
	}
	return model.Interaction{
		Time:          i.Time,
		SessionID:     sessionID,
		Tick:          i.Tick,
		ModelName:     i.ModelName,
		Action:        i.Action,
		Control:       i.Control,
		Accessibility: i.Accessible,
		Position:      vectorToPoint(i.Position),
		Offsets:       datatypes.JSON(raw),
	}
}

// InteractionToCore converts a stored interaction back.
func InteractionToCore(m model.Interaction, sessionUUID string) core.Interaction {
	var offsets []core.Vector3
	if len(m.Offsets) > 0 {
		_ = json.Unmarshal(m.Offsets, &offsets)
	}
	return core.Interaction{
		SessionID:  sessionUUID,
		Time:       m.Time,
		Tick:       m.Tick,
		ModelName:  m.ModelName,
		Action:     m.Action,
		Control:    m.Control,
		Position:   pointToVector(m.Position),
		Offsets:    offsets,
		Accessible: m.Accessibility,
	}
}

// TyreSlashToGorm converts a core.TyreSlash for the session with the given journal id.
func TyreSlashToGorm(t core.TyreSlash, sessionID uint) model.TyreSlash {
	return model.TyreSlash{
		Time:         t.Time,
		SessionID:    sessionID,
		Tick:         t.Tick,
		VehicleModel: t.VehicleModel,
		Tyre:         t.Tyre,
		Position:     vectorToPoint(t.Position),
	}
}

// TyreSlashToCore converts a stored tyre slash back.
func TyreSlashToCore(m model.TyreSlash, sessionUUID string) core.TyreSlash {
	return core.TyreSlash{
		SessionID:    sessionUUID,
		Time:         m.Time,
		Tick:         m.Tick,
		VehicleModel: m.VehicleModel,
		Tyre:         m.Tyre,
		Position:     pointToVector(m.Position),
	}
}
