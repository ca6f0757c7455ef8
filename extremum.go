/*
 * extremum.go, part of gotov.
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

//extremum.go locates features of a swept family: the maximum-mass turning point,
//the maximum-k2 star and the canonical (target-mass) star. A cubic spline of the
//property over central density supplies the candidate, which is then re-solved
//exactly and refined on shrinking local grids.

package tov

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"
)

// ExtremumResult is a located family feature: the refined star solved exactly at
// the feature, the central density where it occurs and the property value there.
type ExtremumResult struct {
	Star      *Star
	RhoCenter float64
	Value     float64
}

// FindMaximumMassStar locates the maximum-mass turning point of a swept family:
// the first maximum of the mass vs central-density spline in increasing
// central-density order. When several turning points exist the first one wins;
// this is a documented policy, not a global search. It returns a *NotFoundError
// when the sweep does not bracket a maximum.
func (f *StarFamily) FindMaximumMassStar() (*ExtremumResult, error) {
	f.mustBeSwept()
	return f.findMaximum(f.Mass, func(s *Star) float64 { return s.Mass }, "mass")
}

// FindMaximumK2Star locates the maximum of the Love number over central density,
// with the same first-turning-point policy as FindMaximumMassStar. The family
// must have been swept with SolveTidal.
func (f *StarFamily) FindMaximumK2Star() (*ExtremumResult, error) {
	f.mustBeSwept()
	if !f.tidal {
		return nil, &DomainError{Op: "StarFamily.FindMaximumK2Star", Value: math.NaN(), Reason: "family was swept without the tidal solve"}
	}
	return f.findMaximum(f.K2, func(s *Star) float64 { return s.K2 }, "k2")
}

// FindCanonicalStar locates the star whose mass equals targetMass: the first
// crossing of the mass spline in increasing central-density order, re-solved and
// refined until the mass matches within RefineTol relative error. It returns a
// *NotFoundError when the swept mass range does not bracket the target.
func (f *StarFamily) FindCanonicalStar(targetMass float64) (*ExtremumResult, error) {
	f.mustBeSwept()
	xs := append([]float64(nil), f.RhoCenter...)
	ys := append([]float64(nil), f.Mass...)
	var best *ExtremumResult
	for iter := 0; iter <= f.RefineIters; iter++ {
		x, j, ok := firstCrossing(xs, ys, targetMass)
		if !ok {
			if best != nil {
				return best, nil
			}
			return nil, &NotFoundError{Property: "mass", Target: targetMass, Lo: xs[0], Hi: xs[len(xs)-1]}
		}
		star, err := f.resolve(x)
		if err != nil {
			return nil, err
		}
		best = &ExtremumResult{Star: star, RhoCenter: x, Value: star.Mass}
		if math.Abs(star.Mass-targetMass) <= f.RefineTol*math.Max(1, math.Abs(targetMass)) {
			return best, nil
		}
		xs, ys, err = f.refineGrid(xs[j], xs[j+1], func(s *Star) float64 { return s.Mass })
		if err != nil {
			return nil, err
		}
	}
	return best, nil
}

//findMaximum drives the generic two-level search: spline the property over the
//sampled central densities, bracket the first turning point, re-solve a star
//there, and iterate on a refined local grid until the extremal value converges.
func (f *StarFamily) findMaximum(prop []float64, eval func(*Star) float64, name string) (*ExtremumResult, error) {
	xs := append([]float64(nil), f.RhoCenter...)
	ys := append([]float64(nil), prop...)
	var best *ExtremumResult
	prev := math.Inf(1)
	for iter := 0; iter <= f.RefineIters; iter++ {
		x, j, ok := firstTurningPoint(xs, ys)
		if !ok {
			if best != nil {
				return best, nil
			}
			return nil, &NotFoundError{Property: name, Target: math.NaN(), Lo: xs[0], Hi: xs[len(xs)-1]}
		}
		star, err := f.resolve(x)
		if err != nil {
			return nil, err
		}
		v := eval(star)
		best = &ExtremumResult{Star: star, RhoCenter: x, Value: v}
		if math.Abs(v-prev) <= f.RefineTol*math.Max(1, math.Abs(v)) {
			return best, nil
		}
		prev = v
		xs, ys, err = f.refineGrid(xs[j], xs[j+1], eval)
		if err != nil {
			return nil, err
		}
	}
	return best, nil
}

//resolve solves a single star at central density x, including the tidal
//perturbation when the family was swept with it.
func (f *StarFamily) resolve(x float64) (*Star, error) {
	pc := f.eos.P(x)
	if math.IsNaN(pc) {
		return nil, &DomainError{Op: "StarFamily.resolve", Value: x, Reason: "central density outside the EOS domain"}
	}
	star := NewStar(f.eos, f.pSurface, f.cfg)
	if err := star.SolveTOV(pc); err != nil {
		return nil, err
	}
	if f.tidal {
		if err := star.SolveTidal(); err != nil {
			return nil, err
		}
	}
	return star, nil
}

//refineGrid solves RefinePoints stars evenly spaced over [lo, hi] and returns
//the refined sample arrays.
func (f *StarFamily) refineGrid(lo, hi float64, eval func(*Star) float64) ([]float64, []float64, error) {
	n := f.RefinePoints
	if n < 4 {
		n = 4
	}
	xs := make([]float64, n)
	floats.Span(xs, lo, hi)
	ys := make([]float64, n)
	for i, x := range xs {
		star, err := f.resolve(x)
		if err != nil {
			return nil, nil, err
		}
		ys[i] = eval(star)
	}
	return xs, ys, nil
}

//firstTurningPoint returns the first root of the derivative of the natural
//cubic spline of ys over xs, scanning in increasing xs order and keeping only
//maxima (derivative changing from positive to non-positive). j indexes the
//bracketing interval [xs[j], xs[j+1]].
func firstTurningPoint(xs, ys []float64) (x float64, j int, ok bool) {
	var nc interp.NaturalCubic
	if err := nc.Fit(xs, ys); err != nil {
		return 0, 0, false
	}
	for i := 0; i < len(xs)-1; i++ {
		d0 := nc.PredictDerivative(xs[i])
		d1 := nc.PredictDerivative(xs[i+1])
		if d0 == 0 {
			return xs[i], i, true
		}
		if d0 > 0 && d1 <= 0 {
			return bisect(nc.PredictDerivative, xs[i], xs[i+1]), i, true
		}
	}
	return 0, 0, false
}

//firstCrossing returns the first root of spline(ys over xs) - target, scanning
//in increasing xs order.
func firstCrossing(xs, ys []float64, target float64) (x float64, j int, ok bool) {
	var nc interp.NaturalCubic
	if err := nc.Fit(xs, ys); err != nil {
		return 0, 0, false
	}
	g := func(x float64) float64 { return nc.Predict(x) - target }
	for i := 0; i < len(xs)-1; i++ {
		g0, g1 := ys[i]-target, ys[i+1]-target
		if g0 == 0 {
			return xs[i], i, true
		}
		if (g0 > 0) != (g1 > 0) {
			return bisect(g, xs[i], xs[i+1]), i, true
		}
	}
	if ys[len(ys)-1] == target {
		return xs[len(xs)-1], len(xs) - 2, true
	}
	return 0, 0, false
}

//bisect locates a sign change of g inside [a, b], assuming g(a) and g(b)
//bracket it. Plain bisection: ~50 halvings reach machine precision and the
//result is deterministic, which the turning-point search needs for
//reproducibility.
func bisect(g func(float64) float64, a, b float64) float64 {
	ga := g(a)
	for i := 0; i < 200 && b-a > 1e-15*math.Max(math.Abs(b), 1e-300); i++ {
		m := 0.5 * (a + b)
		gm := g(m)
		if gm == 0 {
			return m
		}
		if (ga > 0) == (gm > 0) {
			a, ga = m, gm
		} else {
			b = m
		}
	}
	return 0.5 * (a + b)
}
