/*
 * tides.go, part of gotov.
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

//tides.go computes the quadrupolar tidal deformability of a solved star: the
//perturbation variable y(r) is integrated over the TOV background and combined
//with the compactness into the Love number k2.

package tov

import "math"

//The tidal perturbation equation, a single Riccati-type ODE in y(r) whose
//coefficients come from the solved background:
//
//	r y' = -(y^2 + y F(r) + r^2 Q(r))
//	F    = (1 - 4 pi r^2 (rho - p)) / E
//	r^2 Q = 4 pi r^2 (5 rho + 9 p + (rho + p) drho/dp) / E - 6/E - r^2 nu'^2
//	E    = 1 - 2 m / r,  nu' = 2 (m + 4 pi r^3 p) / (r^2 E)
//
//It shares the TOV center singularity; y(RBegin) = 2 is the regular solution.
func (s *Star) tidalSystem(r float64, y, dy []float64) {
	//Stage evaluations may land a roundoff outside the background domain.
	if r > s.Radius {
		r = s.Radius
	}
	if r < s.rs[0] {
		r = s.rs[0]
	}
	p := s.pOfR.Predict(r)
	if p < s.pSurface {
		p = s.pSurface
	}
	m := s.mOfR.Predict(r)
	rho := s.rhoOfR.Predict(r)

	e := 1 - 2*m/r
	stiff := (rho + p) * s.eos.DRhoDP(p)
	if math.IsNaN(stiff) || math.IsInf(stiff, 0) {
		//Exactly at a vacuum surface both factors degenerate; the term vanishes
		//with the density.
		stiff = 0
	}
	f := (1 - 4*math.Pi*r*r*(rho-p)) / e
	nuP := 2 * (m + 4*math.Pi*r*r*r*p) / (r * r * e)
	r2q := (4*math.Pi*r*r/e)*(5*rho+9*p+stiff) - 6/e - r*r*nuP*nuP
	dy[0] = -(y[0]*y[0] + y[0]*f + r2q) / r
}

// SolveTidal integrates the tidal perturbation over the radial domain of the
// last SolveTOV call and stores the Love number in K2. It must be called on a
// solved star. The integration uses TidalAbsTol as its absolute tolerance; the
// relative tolerance is shared with the TOV solve.
func (s *Star) SolveTidal() error {
	s.mustBeSolved()
	cfg := s.cfg
	cfg.REnd = s.Radius
	sol, status := integrate(s.tidalSystem, s.rs[0], []float64{2}, nil, s.cfg.TidalAbsTol, s.cfg.RelTol, &cfg)
	if status == odeFailed {
		return &IntegrationError{PCenter: s.PCenter, R: sol.rStop, Reason: "tidal perturbation: " + sol.msg}
	}
	if sol.rStop < s.Radius*(1-1e-12) {
		return &IntegrationError{PCenter: s.PCenter, R: sol.rStop, Reason: "tidal perturbation: step budget exhausted before the surface"}
	}
	yR := sol.ys[len(sol.ys)-1][0]
	s.K2 = LoveNumber(s.Compactness(), yR)
	s.tidalSolved = true
	return nil
}

// TidalSolved reports whether K2 holds a valid Love number.
func (s *Star) TidalSolved() bool { return s.tidalSolved }

// TidalDeformability returns the dimensionless tidal deformability
// Lambda = (2/3) k2 C^-5 of a tidally solved star.
func (s *Star) TidalDeformability() float64 {
	if !s.tidalSolved {
		panic("gotov: TidalDeformability queried before a successful SolveTidal")
	}
	c := s.Compactness()
	return (2.0 / 3.0) * s.K2 / (c * c * c * c * c)
}

// LoveNumber is the closed-form quadrupolar Love number k2 for a star of
// compactness c with surface perturbation value y = y(R). It is a single
// deterministic rational expression; given the same c and y it is
// bit-reproducible.
func LoveNumber(c, y float64) float64 {
	c2 := c * c
	oneMinus2c := 1 - 2*c
	num := (8.0 / 5.0) * c2 * c2 * c * oneMinus2c * oneMinus2c * (2 + 2*c*(y-1) - y)
	den := 2*c*(6-3*y+3*c*(5*y-8)) +
		4*c2*c*(13-11*y+c*(3*y-2)+2*c2*(1+y)) +
		3*oneMinus2c*oneMinus2c*(2-y+2*c*(y-1))*math.Log1p(-2*c)
	return num / den
}
