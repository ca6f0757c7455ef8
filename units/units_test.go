/*
 * units_test.go, part of gotov.
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

package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSolarMassGeometrized(t *testing.T) {
	//the textbook value: one solar mass is about 1.477 km
	assert.InDelta(t, 1477.0, MassSolarMassToGU, 1.0)
}

func TestInversesCancel(t *testing.T) {
	cases := []struct {
		name     string
		fwd, inv float64
	}{
		{"pressure GU/SI", PressureGUToSI, PressureSIToGU},
		{"energy density GU/SI", EnergyDensityGUToSI, EnergyDensitySIToGU},
		{"mass density GU/SI", MassDensityGUToSI, MassDensitySIToGU},
		{"mass GU/SI", MassGUToSI, MassSIToGU},
		{"pressure GU/CGS", PressureGUToCGS, PressureCGSToGU},
		{"mass density GU/CGS", MassDensityGUToCGS, MassDensityCGSToGU},
		{"energy density NU/SI", EnergyDensityNUToSI, EnergyDensitySIToNU},
		{"energy density NU/GU", EnergyDensityNUToGU, EnergyDensityGUToNU},
		{"solar mass", MassSolarMassToGU, MassGUToSolarMass},
	}
	for _, c := range cases {
		assert.InEpsilon(t, 1.0, c.fwd*c.inv, 1e-12, c.name)
	}
}

func TestKnownMagnitudes(t *testing.T) {
	//nuclear saturation density, 2.7e14 g/cm^3, is about 2e-10 m^-2
	rhoSat := 2.7e14 * MassDensityCGSToGU
	assert.InEpsilon(t, 2.0e-10, rhoSat, 0.05)

	//the MIT bag constant (145 MeV)^4 is 57.5 MeV/fm^3, about 9.2e33 Pa
	b := 145.0 * 145.0 * 145.0 * 145.0 * EnergyDensityNUToSI
	assert.InEpsilon(t, 9.2e33, b, 0.05)

	//CGS pressure carries the extra factor of ten over SI
	assert.InEpsilon(t, 10.0, PressureGUToCGS/PressureGUToSI, 1e-12)
	assert.InEpsilon(t, 1e-3, MassDensityGUToCGS/MassDensityGUToSI, 1e-12)
}
