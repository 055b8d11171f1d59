package main

import (
	"github.com/pthm-cable/dodge/session"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the autopilot path parameters.
func NewParamVector() *ParamVector {
	def := session.NewAutopilot()
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "freq_x", Min: 0.001, Max: 0.1, Default: def.FreqX},
			{Name: "freq_y", Min: 0.001, Max: 0.1, Default: def.FreqY},
			{Name: "reach", Min: 0.05, Max: 1.0, Default: def.Reach},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := v[i]
		if val < spec.Min {
			val = spec.Min
		}
		if val > spec.Max {
			val = spec.Max
		}
		clamped[i] = val
	}
	return clamped
}

// Autopilot builds an autopilot from parameter values. Order matches Specs.
func (pv *ParamVector) Autopilot(values []float64) *session.Autopilot {
	clamped := pv.Clamp(values)
	return &session.Autopilot{
		FreqX: clamped[0],
		FreqY: clamped[1],
		Reach: clamped[2],
	}
}
