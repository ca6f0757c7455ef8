/*
 * star_test.go, part of gotov.
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
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//solveTestStar integrates the test polytrope at central density 2.376364e-9,
//a relativistic configuration near the maximum of the k = 1e8, n = 1 family.
func solveTestStar(t *testing.T) *Star {
	t.Helper()
	eos := testPolytrope(t)
	s := NewStar(eos, 0, DefaultSolveConfig())
	pCenter := eos.P(2.376364e-9)
	require.NoError(t, s.SolveTOV(pCenter))
	return s
}

func TestSolveTOVPolytrope(t *testing.T) {
	s := solveTestStar(t)

	//a neutron star: kilometers across, a fraction of the radius in mass
	assert.Greater(t, s.Radius, 1.0e3)
	assert.Less(t, s.Radius, 1.0e5)
	assert.Greater(t, s.Mass, 0.0)
	assert.Less(t, s.Mass, s.Radius/2, "solution crossed the Schwarzschild bound")

	c := s.Compactness()
	assert.Greater(t, c, 0.01)
	assert.Less(t, c, 0.5)
}

func TestSolveTOVSurface(t *testing.T) {
	s := solveTestStar(t)

	//the localized surface pressure is small on the central scale
	pSurf := s.P(s.Radius)
	require.False(t, math.IsNaN(pSurf))
	assert.Less(t, math.Abs(pSurf), 1e-8*s.PCenter)

	//monotonic pressure, monotonic enclosed mass
	rs, ps, ms, rhos := s.Profile(200)
	for i := 1; i < len(rs); i++ {
		assert.LessOrEqual(t, ps[i], ps[i-1]*(1+1e-9), "pressure rose outward at r = %g", rs[i])
		assert.GreaterOrEqual(t, ms[i], ms[i-1]*(1-1e-9), "mass shrank outward at r = %g", rs[i])
	}
	assert.InDelta(t, s.Mass, ms[len(ms)-1], 1e-9*s.Mass)
	assert.Greater(t, rhos[0], rhos[len(rhos)-1])
}

func TestStarInterpolantsMatchNodes(t *testing.T) {
	s := solveTestStar(t)

	//evaluating inside the domain stays finite; outside is NaN
	mid := 0.5 * (s.rs[0] + s.Radius)
	assert.False(t, math.IsNaN(s.P(mid)))
	assert.False(t, math.IsNaN(s.M(mid)))
	assert.False(t, math.IsNaN(s.RhoAt(mid)))
	assert.True(t, math.IsNaN(s.P(s.Radius*2)))
	assert.True(t, math.IsNaN(s.M(-1)))
	assert.True(t, math.IsNaN(s.RhoAt(s.Radius*1.5)))
}

func TestSolveTOVRejectsBadCentralPressure(t *testing.T) {
	eos := testPolytrope(t)
	s := NewStar(eos, 1e-15, DefaultSolveConfig())

	var derr *DomainError
	err := s.SolveTOV(1e-16) //below the surface pressure
	require.Error(t, err)
	assert.True(t, errors.As(err, &derr))
	assert.False(t, s.Solved())

	err = s.SolveTOV(1e-15) //equal is not enough either
	require.Error(t, err)
	assert.True(t, errors.As(err, &derr))
}

func TestSolveTOVTableBounds(t *testing.T) {
	tab := testTableEOS(t)

	//surface pressure below the tabulated range is rejected up front
	s := NewStar(tab, tab.PSurface()*0.1, DefaultSolveConfig())
	var derr *DomainError
	err := s.SolveTOV(tab.PCenter() * 0.5)
	require.Error(t, err)
	assert.True(t, errors.As(err, &derr))

	//central pressure above the table is rejected too
	s = NewStar(tab, tab.PSurface(), DefaultSolveConfig())
	err = s.SolveTOV(tab.PCenter() * 2)
	require.Error(t, err)
	assert.True(t, errors.As(err, &derr))
}

func TestSolveTOVTableAtTableSurface(t *testing.T) {
	//the table's own minimum pressure is the documented surface default, yet
	//event bracketing evaluates stages a hair below it, where the splines
	//return NaN; the solver must stay on the physical side and surface cleanly
	tab := testTableEOS(t)
	require.True(t, math.IsNaN(tab.Rho(tab.PSurface()*(1-1e-9))))

	s := NewStar(tab, tab.PSurface(), DefaultSolveConfig())
	require.NoError(t, s.SolveTOV(tab.PCenter()*0.9))
	assert.Greater(t, s.Radius, 0.0)
	assert.Greater(t, s.Mass, 0.0)
}

func TestSolveTOVEventNotFound(t *testing.T) {
	//a step budget too small to reach the surface is an event-not-found
	//condition, distinct from an integration failure
	eos := testPolytrope(t)
	cfg := DefaultSolveConfig()
	cfg.MaxSteps = 5
	s := NewStar(eos, 0, cfg)

	err := s.SolveTOV(eos.P(2.376364e-9))
	require.Error(t, err)
	var everr *EventError
	require.True(t, errors.As(err, &everr))
	assert.Equal(t, 5, everr.Steps)
	assert.Greater(t, everr.R, 0.0)
	assert.False(t, s.Solved())
}

func TestSolveTOVTablePolytropeAgreement(t *testing.T) {
	//the same physics through the closed form and through its tabulation
	//should give nearly the same star
	poly := testPolytrope(t)
	tab := testTableEOS(t)

	pCenter := tab.PCenter() * 0.9
	exact := NewStar(poly, tab.PSurface(), DefaultSolveConfig())
	require.NoError(t, exact.SolveTOV(pCenter))
	splined := NewStar(tab, tab.PSurface(), DefaultSolveConfig())
	require.NoError(t, splined.SolveTOV(pCenter))

	assert.InEpsilon(t, exact.Radius, splined.Radius, 1e-2)
	assert.InEpsilon(t, exact.Mass, splined.Mass, 1e-2)
}

func TestStarResolve(t *testing.T) {
	eos := testPolytrope(t)
	s := NewStar(eos, 0, DefaultSolveConfig())
	p1 := eos.P(1.0e-9)
	p2 := eos.P(2.376364e-9)

	require.NoError(t, s.SolveTOV(p1))
	r1, m1 := s.Radius, s.Mass
	require.NoError(t, s.SolveTOV(p2))
	assert.NotEqual(t, r1, s.Radius, "re-solving must replace the previous solution")

	//solving the first configuration again reproduces it bit for bit
	require.NoError(t, s.SolveTOV(p1))
	assert.Equal(t, r1, s.Radius)
	assert.Equal(t, m1, s.Mass)
}

func TestStarPanicsBeforeSolve(t *testing.T) {
	s := NewStar(testPolytrope(t), 0, DefaultSolveConfig())
	assert.Panics(t, func() { s.P(1e3) })
	assert.Panics(t, func() { s.Compactness() })
	assert.Panics(t, func() { s.Profile(10) })
	assert.Panics(t, func() { NewStar(nil, 0, DefaultSolveConfig()) })
}
