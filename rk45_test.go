/*
 * rk45_test.go, part of gotov.
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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegrateExponentialDecay(t *testing.T) {
	//y' = -y over [0, 1]; exact solution e^-r
	decay := func(r float64, y, dy []float64) { dy[0] = -y[0] }
	cfg := DefaultSolveConfig()
	cfg.REnd = 1

	sol, status := integrate(decay, 0, []float64{1}, nil, 1e-12, 1e-10, &cfg)
	require.Equal(t, odeDomainEnd, status)
	assert.InEpsilon(t, 1.0, sol.rStop, 1e-9)
	got := sol.ys[len(sol.ys)-1][0]
	assert.InEpsilon(t, math.Exp(-1), got, 1e-8)

	//nodes come out in increasing order
	for i := 1; i < len(sol.rs); i++ {
		assert.Greater(t, sol.rs[i], sol.rs[i-1])
	}
}

func TestIntegrateEventLocalization(t *testing.T) {
	//y' = -y, event at y = 1/2; the exact event radius is ln 2
	decay := func(r float64, y, dy []float64) { dy[0] = -y[0] }
	event := func(r float64, y []float64) float64 { return y[0] - 0.5 }
	cfg := DefaultSolveConfig()

	sol, status := integrate(decay, 0, []float64{1}, event, 1e-12, 1e-10, &cfg)
	require.Equal(t, odeEvent, status)
	assert.InEpsilon(t, math.Ln2, sol.eventR, 1e-8)
	assert.InDelta(t, 0.5, sol.eventY[0], 1e-8)
	assert.LessOrEqual(t, sol.eventR, sol.rStop+1e-12)
}

func TestIntegrateTolerancesControlError(t *testing.T) {
	decay := func(r float64, y, dy []float64) { dy[0] = -y[0] }
	cfg := DefaultSolveConfig()
	cfg.REnd = 5

	loose, status := integrate(decay, 0, []float64{1}, nil, 1e-6, 1e-4, &cfg)
	require.Equal(t, odeDomainEnd, status)
	tight, status := integrate(decay, 0, []float64{1}, nil, 1e-13, 1e-11, &cfg)
	require.Equal(t, odeDomainEnd, status)

	exact := math.Exp(-5)
	errLoose := math.Abs(loose.ys[len(loose.ys)-1][0] - exact)
	errTight := math.Abs(tight.ys[len(tight.ys)-1][0] - exact)
	assert.Less(t, errTight, errLoose, "tighter tolerances must not integrate worse")
	assert.Greater(t, len(tight.rs), len(loose.rs), "tighter tolerances take more steps")
}

func TestIntegrateMaxSteps(t *testing.T) {
	decay := func(r float64, y, dy []float64) { dy[0] = -y[0] }
	cfg := DefaultSolveConfig()
	cfg.REnd = 1e6
	cfg.MaxStep = 1e-3 //forces far more steps than the budget allows
	cfg.MaxSteps = 50

	sol, status := integrate(decay, 0, []float64{1}, nil, 1e-9, 1e-6, &cfg)
	require.Equal(t, odeDomainEnd, status)
	assert.LessOrEqual(t, sol.steps, 50)
	assert.Less(t, sol.rStop, 1e6)
}

func TestIntegrateNonFiniteDerivative(t *testing.T) {
	bad := func(r float64, y, dy []float64) { dy[0] = math.NaN() }
	cfg := DefaultSolveConfig()
	cfg.REnd = 1

	_, status := integrate(bad, 0, []float64{1}, nil, 1e-9, 1e-6, &cfg)
	assert.Equal(t, odeFailed, status)
}

func TestIntegrateTwoComponentSystem(t *testing.T) {
	//harmonic oscillator y'' = -y as a 2-component system; energy is conserved
	osc := func(r float64, y, dy []float64) {
		dy[0] = y[1]
		dy[1] = -y[0]
	}
	cfg := DefaultSolveConfig()
	cfg.REnd = 2 * math.Pi

	sol, status := integrate(osc, 0, []float64{1, 0}, nil, 1e-12, 1e-10, &cfg)
	require.Equal(t, odeDomainEnd, status)
	last := sol.ys[len(sol.ys)-1]
	assert.InDelta(t, 1.0, last[0], 1e-7, "one full period returns to the start")
	assert.InDelta(t, 0.0, last[1], 1e-7)
}

func TestDefaultSolveConfig(t *testing.T) {
	cfg := DefaultSolveConfig()
	assert.Greater(t, cfg.RBegin, 0.0, "the TOV equations are singular at r = 0")
	assert.True(t, math.IsInf(cfg.REnd, 1))
	assert.True(t, math.IsInf(cfg.MaxStep, 1))
	assert.Greater(t, cfg.MaxSteps, 0)
	assert.Greater(t, cfg.RelTol, 0.0)
	assert.Greater(t, cfg.AbsTol, 0.0)
	assert.Greater(t, cfg.TidalAbsTol, 0.0)
}
