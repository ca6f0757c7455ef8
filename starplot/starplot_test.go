/*
 * starplot_test.go, part of gotov.
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

package starplot

import (
	"os"
	"path/filepath"
	"testing"

	tov "github.com/rsantos/gotov"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

func solvedFamily(t *testing.T, tidal bool) *tov.StarFamily {
	t.Helper()
	eos, err := tov.NewPolytropicEOS(1.0e8, 1)
	require.NoError(t, err)
	pcs := tov.LogCenters(eos.P(2.376364e-9), -3, -1, 6)
	f, err := tov.NewStarFamily(eos, pcs, 0, tov.DefaultSolveConfig())
	require.NoError(t, err)
	if tidal {
		require.NoError(t, f.SolveTidal())
	} else {
		require.NoError(t, f.SolveTOV())
	}
	return f
}

//saved checks that fname now exists and is not empty.
func saved(t *testing.T, fname string) {
	t.Helper()
	fi, err := os.Stat(fname)
	require.NoError(t, err)
	assert.Greater(t, fi.Size(), int64(0))
}

func TestMassRadiusCurve(t *testing.T) {
	f := solvedFamily(t, false)
	fname := filepath.Join(t.TempDir(), "mr.png")
	require.NoError(t, MassRadiusCurve(f, fname))
	saved(t, fname)
}

func TestK2Curve(t *testing.T) {
	f := solvedFamily(t, true)
	fname := filepath.Join(t.TempDir(), "k2.png")
	require.NoError(t, K2Curve(f, fname))
	saved(t, fname)

	//a family swept without tides cannot be plotted
	plain := solvedFamily(t, false)
	assert.Panics(t, func() { K2Curve(plain, fname) })
}

func TestEOSCurve(t *testing.T) {
	eos, err := tov.NewPolytropicEOS(1.0e8, 1)
	require.NoError(t, err)
	ps := make([]float64, 50)
	floats.Span(ps, 1e-12, 1e-9)
	fname := filepath.Join(t.TempDir(), "eos.png")
	require.NoError(t, EOSCurve(eos, ps, fname))
	saved(t, fname)
}

func TestStructureCurves(t *testing.T) {
	eos, err := tov.NewPolytropicEOS(1.0e8, 1)
	require.NoError(t, err)
	s := tov.NewStar(eos, 0, tov.DefaultSolveConfig())
	require.NoError(t, s.SolveTOV(eos.P(2.376364e-9)))
	fname := filepath.Join(t.TempDir(), "profiles.png")
	require.NoError(t, StructureCurves(s, 100, fname))
	saved(t, fname)
}
