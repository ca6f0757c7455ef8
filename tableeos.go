/*
 * tableeos.go, part of gotov.
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

	"gonum.org/v1/gonum/interp"
)

// TableEOS is an equation of state interpolated from an ordered (rho, p) table
// with natural cubic splines, one for each direction. Evaluation outside the
// covered range returns NaN; the table bounds are exposed as the physically valid
// surface and center values. Immutable after construction.
type TableEOS struct {
	rho, p []float64
	rhoOfP interp.NaturalCubic
	pOfRho interp.NaturalCubic
}

// NewTableEOS builds a tabulated EOS from parallel density and pressure columns
// in geometrized units, ordered from the surface (lowest values) to the center.
// Both columns must be strictly increasing and at least four entries long. The
// slices are not copied; the caller must not modify them afterwards.
func NewTableEOS(rho, p []float64) (*TableEOS, error) {
	if len(rho) != len(p) {
		return nil, &DomainError{Op: "NewTableEOS", Value: float64(len(p)), Reason: "density and pressure columns differ in length"}
	}
	if len(rho) < 4 {
		return nil, &DomainError{Op: "NewTableEOS", Value: float64(len(rho)), Reason: "an EOS table needs at least 4 rows"}
	}
	for i := 0; i < len(rho); i++ {
		if math.IsNaN(rho[i]) || math.IsNaN(p[i]) || rho[i] < 0 || p[i] < 0 {
			return nil, &DomainError{Op: "NewTableEOS", Value: float64(i), Reason: "table rows must be finite and non-negative"}
		}
		if i > 0 && (rho[i] <= rho[i-1] || p[i] <= p[i-1]) {
			return nil, &DomainError{Op: "NewTableEOS", Value: float64(i), Reason: "table columns must be strictly increasing"}
		}
	}
	t := &TableEOS{rho: rho, p: p}
	if err := t.rhoOfP.Fit(p, rho); err != nil {
		return nil, &DomainError{Op: "NewTableEOS", Value: math.NaN(), Reason: err.Error()}
	}
	if err := t.pOfRho.Fit(rho, p); err != nil {
		return nil, &DomainError{Op: "NewTableEOS", Value: math.NaN(), Reason: err.Error()}
	}
	return t, nil
}

// Rho returns the interpolated density at pressure p, NaN outside the table.
func (t *TableEOS) Rho(p float64) float64 {
	if p < t.p[0] || p > t.p[len(t.p)-1] || math.IsNaN(p) {
		return math.NaN()
	}
	return t.rhoOfP.Predict(p)
}

// P returns the interpolated pressure at density rho, NaN outside the table.
func (t *TableEOS) P(rho float64) float64 {
	if rho < t.rho[0] || rho > t.rho[len(t.rho)-1] || math.IsNaN(rho) {
		return math.NaN()
	}
	return t.pOfRho.Predict(rho)
}

// DRhoDP returns the derivative of the rho(p) spline at p, NaN outside the table.
func (t *TableEOS) DRhoDP(p float64) float64 {
	if p < t.p[0] || p > t.p[len(t.p)-1] || math.IsNaN(p) {
		return math.NaN()
	}
	return t.rhoOfP.PredictDerivative(p)
}

// Table bounds. PSurface/RhoSurface are the lowest tabulated values and the
// natural choice of surface pressure when solving stars with this EOS;
// PCenter/RhoCenter are the highest tabulated values, an upper limit for the
// central pressure.
func (t *TableEOS) PSurface() float64   { return t.p[0] }
func (t *TableEOS) PCenter() float64    { return t.p[len(t.p)-1] }
func (t *TableEOS) RhoSurface() float64 { return t.rho[0] }
func (t *TableEOS) RhoCenter() float64  { return t.rho[len(t.rho)-1] }
