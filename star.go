/*
 * star.go, part of gotov.
 *
 * Copyright 2025 The gotov authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package tov

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"
)

// Star solves the interior structure of one compact star. A Star is created for
// an EOS and a surface pressure, then solved for one central pressure at a time;
// a new SolveTOV call discards the previous solution. A Star is not safe for
// concurrent use, but independent Stars share nothing and may be solved in
// parallel freely.
type Star struct {
	eos      EOS
	pSurface float64
	cfg      SolveConfig

	//Results of the last successful solve, in geometrized units.
	PCenter float64
	Radius  float64
	Mass    float64
	K2      float64 //filled by SolveTidal

	rs, ps, ms, rhos   []float64
	pOfR, mOfR, rhoOfR interp.NaturalCubic
	solved             bool
	tidalSolved        bool
}

// NewStar returns an unsolved star for the given EOS and surface pressure.
// The surface pressure may be zero for closed-form EOS; for a TableEOS it must
// be at least the lowest tabulated pressure, conventionally a small positive
// floor such as 1e-22 to keep the integration inside the table.
func NewStar(eos EOS, pSurface float64, cfg SolveConfig) *Star {
	if eos == nil {
		panic("gotov: NewStar called with a nil EOS")
	}
	return &Star{eos: eos, pSurface: pSurface, cfg: cfg}
}

//The TOV system in geometrized units: y[0] is the pressure, y[1] the mass
//enclosed within r.
func (s *Star) tovSystem(r float64, y, dy []float64) {
	p, m := y[0], y[1]
	//Stage evaluations during surface bracketing probe a hair below p_surface,
	//outside a tabulated domain; keep the density on the physical side.
	rho := s.eos.Rho(math.Max(p, s.pSurface))
	dy[0] = -((rho + p) * (m + 4*math.Pi*r*r*r*p)) / (r * (r - 2*m))
	dy[1] = 4 * math.Pi * r * r * rho
}

// SolveTOV integrates the star from RBegin outward until the pressure drops to
// the surface value, then fixes Radius and Mass from the event-localized state
// and builds dense interpolants of pressure, mass and density over
// [RBegin, Radius]. The returned error, when non-nil, is a *DomainError,
// *IntegrationError or *EventError.
func (s *Star) SolveTOV(pCenter float64) error {
	s.solved = false
	s.tidalSolved = false
	s.K2 = 0

	if !(pCenter > s.pSurface) {
		return &DomainError{Op: "Star.SolveTOV", Value: pCenter, Reason: "central pressure must exceed the surface pressure"}
	}
	if t, ok := s.eos.(*TableEOS); ok {
		if s.pSurface < t.PSurface() {
			return &DomainError{Op: "Star.SolveTOV", Value: s.pSurface, Reason: "surface pressure below the tabulated range"}
		}
		if pCenter > t.PCenter() {
			return &DomainError{Op: "Star.SolveTOV", Value: pCenter, Reason: "central pressure above the tabulated range"}
		}
	}
	rhoCenter := s.eos.Rho(pCenter)
	if math.IsNaN(rhoCenter) || math.IsInf(rhoCenter, 0) {
		return &DomainError{Op: "Star.SolveTOV", Value: pCenter, Reason: "EOS density is not finite at the central pressure"}
	}

	event := func(r float64, y []float64) float64 { return y[0] - s.pSurface }
	sol, status := integrate(s.tovSystem, s.cfg.RBegin, []float64{pCenter, 0}, event, s.cfg.AbsTol, s.cfg.RelTol, &s.cfg)
	switch status {
	case odeFailed:
		return &IntegrationError{PCenter: pCenter, R: sol.rStop, Reason: sol.msg}
	case odeDomainEnd:
		return &EventError{PCenter: pCenter, PSurface: s.pSurface, R: sol.rStop, Steps: sol.steps}
	}

	s.PCenter = pCenter
	s.Radius = sol.eventR
	s.Mass = sol.eventY[1]

	n := len(sol.rs)
	s.rs = make([]float64, n)
	s.ps = make([]float64, n)
	s.ms = make([]float64, n)
	s.rhos = make([]float64, n)
	for i, r := range sol.rs {
		s.rs[i] = r
		s.ps[i] = sol.ys[i][0]
		s.ms[i] = sol.ys[i][1]
		//The event state may undershoot p_surface by roundoff; keep the density
		//node on the physical domain.
		s.rhos[i] = s.eos.Rho(math.Max(sol.ys[i][0], s.pSurface))
	}
	if err := s.pOfR.Fit(s.rs, s.ps); err != nil {
		return &IntegrationError{PCenter: pCenter, R: s.Radius, Reason: "pressure interpolant: " + err.Error()}
	}
	if err := s.mOfR.Fit(s.rs, s.ms); err != nil {
		return &IntegrationError{PCenter: pCenter, R: s.Radius, Reason: "mass interpolant: " + err.Error()}
	}
	if err := s.rhoOfR.Fit(s.rs, s.rhos); err != nil {
		return &IntegrationError{PCenter: pCenter, R: s.Radius, Reason: "density interpolant: " + err.Error()}
	}
	s.solved = true
	return nil
}

// Solved reports whether the star holds a valid solution.
func (s *Star) Solved() bool { return s.solved }

func (s *Star) mustBeSolved() {
	if !s.solved {
		panic("gotov: star queried before a successful SolveTOV")
	}
}

// P returns the interpolated pressure at radial coordinate r, NaN outside
// [RBegin, Radius].
func (s *Star) P(r float64) float64 {
	s.mustBeSolved()
	if r < s.rs[0] || r > s.Radius {
		return math.NaN()
	}
	return s.pOfR.Predict(r)
}

// M returns the interpolated enclosed mass at r, NaN outside [RBegin, Radius].
func (s *Star) M(r float64) float64 {
	s.mustBeSolved()
	if r < s.rs[0] || r > s.Radius {
		return math.NaN()
	}
	return s.mOfR.Predict(r)
}

// RhoAt returns the interpolated density at r, NaN outside [RBegin, Radius].
func (s *Star) RhoAt(r float64) float64 {
	s.mustBeSolved()
	if r < s.rs[0] || r > s.Radius {
		return math.NaN()
	}
	return s.rhoOfR.Predict(r)
}

// Compactness returns M/R, the dimensionless relativistic strength of the star.
func (s *Star) Compactness() float64 {
	s.mustBeSolved()
	return s.Mass / s.Radius
}

// Profile samples the radial solution at n evenly spaced points over
// [RBegin, Radius], returning parallel slices of radius, pressure, enclosed
// mass and density. n must be at least 2.
func (s *Star) Profile(n int) (rs, ps, ms, rhos []float64) {
	s.mustBeSolved()
	if n < 2 {
		panic("gotov: Star.Profile needs at least 2 sample points")
	}
	rs = make([]float64, n)
	floats.Span(rs, s.rs[0], s.Radius)
	ps = make([]float64, n)
	ms = make([]float64, n)
	rhos = make([]float64, n)
	for i, r := range rs {
		ps[i] = s.pOfR.Predict(r)
		ms[i] = s.mOfR.Predict(r)
		rhos[i] = s.rhoOfR.Predict(r)
	}
	return rs, ps, ms, rhos
}
