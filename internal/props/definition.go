// Package props holds the interactive prop model: definitions loaded from the
// props XML document, their accessibility rules and the read-only catalog the
// scanner walks every tick.
package props

import "github.com/interactiv/extension/pkg/core"

// Definition describes one interactive prop. It is immutable once built.
type Definition struct {
	modelName     string
	action        ActionTag
	offsets       []core.Vector3
	control       Control
	accessibility Accessibility
	marker        Marker
	helpText      string
}

// Option overrides a Definition default in NewDefinition.
type Option func(*Definition)

// WithControl sets the input control that triggers the action.
func WithControl(c Control) Option {
	return func(d *Definition) { d.control = c }
}

// WithAccessibility sets the situations in which the prop is usable.
func WithAccessibility(a Accessibility) Option {
	return func(d *Definition) { d.accessibility = a }
}

// WithMarker sets the marker drawn over the prop.
func WithMarker(m Marker) Option {
	return func(d *Definition) { d.marker = m }
}

// WithHelpText sets the help text shown while the prop is in range.
func WithHelpText(text string) Option {
	return func(d *Definition) { d.helpText = text }
}

// NewDefinition builds a definition. Unless overridden the prop is triggered
// by ControlContext, usable everywhere, has no marker and no help text.
func NewDefinition(modelName string, action ActionTag, offsets []core.Vector3, opts ...Option) Definition {
	d := Definition{
		modelName:     modelName,
		action:        action,
		offsets:       append([]core.Vector3(nil), offsets...),
		control:       ControlDefault,
		accessibility: AccessAll,
		marker:        MarkerNone,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func (d Definition) ModelName() string            { return d.modelName }
func (d Definition) Action() ActionTag            { return d.action }
func (d Definition) Control() Control             { return d.control }
func (d Definition) Accessibility() Accessibility { return d.accessibility }
func (d Definition) Marker() Marker               { return d.marker }
func (d Definition) HelpText() string             { return d.helpText }

// Offsets returns a copy of the prop's offsets, in document order.
func (d Definition) Offsets() []core.Vector3 {
	return append([]core.Vector3(nil), d.offsets...)
}

// Accessible reports whether the prop is usable in situation s.
func (d Definition) Accessible(s core.Situation) bool {
	return Accessible(d.accessibility, s)
}
