/*
 * eos.go, part of gotov.
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

//eos.go contains the equation-of-state abstraction and the two closed-form models,
//polytropic and quark matter. The tabulated model lives in tableeos.go.

package tov

import "math"

// EOS is the equation of state of stellar matter in geometrized units. Rho and P
// must be inverses of each other and monotonically non-decreasing on the physical
// domain. Outside that domain both return NaN; they never clamp. DRhoDP is the
// derivative of Rho with respect to pressure, needed by the tidal perturbation
// (the inverse squared sound speed).
type EOS interface {
	Rho(p float64) float64
	P(rho float64) float64
	DRhoDP(p float64) float64
}

// PolytropicEOS is the polytrope p = k * rho^(1 + 1/n), valid for every
// non-negative density and pressure.
type PolytropicEOS struct {
	k     float64 //proportionality constant [m^2]
	gamma float64 //adiabatic exponent 1 + 1/n
}

// NewPolytropicEOS returns the polytropic EOS with proportionality constant k and
// polytropic index n, both of which must be positive.
func NewPolytropicEOS(k, n float64) (*PolytropicEOS, error) {
	if !(k > 0) || math.IsInf(k, 0) {
		return nil, &DomainError{Op: "NewPolytropicEOS", Value: k, Reason: "the constant k must be positive and finite"}
	}
	if !(n > 0) || math.IsInf(n, 0) {
		return nil, &DomainError{Op: "NewPolytropicEOS", Value: n, Reason: "the polytropic index n must be positive and finite"}
	}
	return &PolytropicEOS{k: k, gamma: 1.0 + 1.0/n}, nil
}

// Rho returns the density at pressure p. Negative pressures, which the surface
// event localization may probe transiently, are treated by absolute value as in
// the usual polytrope convention.
func (e *PolytropicEOS) Rho(p float64) float64 {
	return math.Pow(math.Abs(p/e.k), 1.0/e.gamma)
}

// P returns the pressure at density rho.
func (e *PolytropicEOS) P(rho float64) float64 {
	return e.k * math.Pow(rho, e.gamma)
}

// DRhoDP returns d(rho)/dp at pressure p.
func (e *PolytropicEOS) DRhoDP(p float64) float64 {
	if p == 0 {
		return math.Inf(1)
	}
	return e.Rho(p) / (e.gamma * math.Abs(p))
}

// QuarkEOS is the quark-matter model derived from the grand thermodynamic
// potential
//
//	Omega = (3 / (4 pi^2)) * (-a4 mu^4 + a2 mu^2) + B
//
// with bag constant B [m^-2], quadratic coefficient a2 [m^-1] and quartic
// coefficient a4 [dimensionless]. Rho and P are exact algebraic inverses.
type QuarkEOS struct {
	b  float64
	a2 float64
	a4 float64
}

// NewQuarkEOS returns the quark-matter EOS with parameters B, a2 and a4, in that
// order (bag constant first, matching the order they appear in Omega). B must be
// non-negative, a2 and a4 strictly positive.
func NewQuarkEOS(b, a2, a4 float64) (*QuarkEOS, error) {
	if !(b >= 0) || math.IsInf(b, 0) {
		return nil, &DomainError{Op: "NewQuarkEOS", Value: b, Reason: "the bag constant B must be non-negative and finite"}
	}
	if !(a2 > 0) || math.IsInf(a2, 0) {
		return nil, &DomainError{Op: "NewQuarkEOS", Value: a2, Reason: "the a2 coefficient must be positive and finite"}
	}
	if !(a4 > 0) || math.IsInf(a4, 0) {
		return nil, &DomainError{Op: "NewQuarkEOS", Value: a4, Reason: "the a4 coefficient must be positive and finite"}
	}
	return &QuarkEOS{b: b, a2: a2, a4: a4}, nil
}

// Rho returns the density at pressure p, or NaN if the radicand of the model
// turns negative there (p below -B, outside the physical domain).
func (e *QuarkEOS) Rho(p float64) float64 {
	s := 1 + (16*math.Pi*math.Pi*e.a4/(3*e.a2*e.a2))*(p+e.b)
	if s < 0 {
		return math.NaN()
	}
	return 3*p + 4*e.b + (3*e.a2*e.a2/(4*math.Pi*math.Pi*e.a4))*(1+math.Sqrt(s))
}

// P returns the pressure at density rho, or NaN outside the physical domain.
func (e *QuarkEOS) P(rho float64) float64 {
	s := 1 + (16*math.Pi*math.Pi*e.a4/(e.a2*e.a2))*(rho-e.b)
	if s < 0 {
		return math.NaN()
	}
	return (rho-4*e.b)/3 - (e.a2*e.a2/(12*math.Pi*math.Pi*e.a4))*(1+math.Sqrt(s))
}

// DRhoDP returns d(rho)/dp at pressure p.
func (e *QuarkEOS) DRhoDP(p float64) float64 {
	s := 1 + (16*math.Pi*math.Pi*e.a4/(3*e.a2*e.a2))*(p+e.b)
	if s <= 0 {
		return math.NaN()
	}
	return 3 + 2/math.Sqrt(s)
}

// CheckEOS verifies an EOS over the given, increasing pressure grid: every
// density must be finite and non-negative, the rho(p) curve non-decreasing, and
// P(Rho(p)) must reproduce p to within rtol relative error. It returns the first
// violation found as a DomainError.
func CheckEOS(e EOS, pSpace []float64, rtol float64) error {
	prev := math.Inf(-1)
	for _, p := range pSpace {
		rho := e.Rho(p)
		if math.IsNaN(rho) || math.IsInf(rho, 0) || rho < 0 {
			return &DomainError{Op: "CheckEOS", Value: p, Reason: "rho(p) is not finite and non-negative"}
		}
		if rho < prev {
			return &DomainError{Op: "CheckEOS", Value: p, Reason: "rho(p) is not monotonically non-decreasing"}
		}
		prev = rho
		pBack := e.P(rho)
		if math.IsNaN(pBack) {
			return &DomainError{Op: "CheckEOS", Value: p, Reason: "P(Rho(p)) is NaN"}
		}
		if diff := math.Abs(pBack - p); diff > rtol*math.Max(math.Abs(p), 1e-300) && diff > rtol {
			return &DomainError{Op: "CheckEOS", Value: p, Reason: "P and Rho are not inverses within tolerance"}
		}
	}
	return nil
}
