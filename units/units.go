/*
 * units.go, part of gotov.
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

//Package units holds the conversion constants between the geometrized units (GU,
//G = c = 1, lengths in meters) used by the solvers and SI, CGS, natural units
//(NU, energies in MeV) and astronomical units. Multiply a GU value by a *GUTo*
//constant to leave geometrized units, and vice versa.
package units

//Universal constants in SI (CODATA 2018 / IAU nominal values).
const (
	C         = 2.99792458e8    //speed of light [m s^-1]
	G         = 6.6743e-11      //gravitational constant [m^3 kg^-1 s^-2]
	SolarMass = 1.98840987e30   //solar mass [kg]
	MeV       = 1.602176634e-13 //mega-electronvolt [J]
	Hbar      = 1.054571817e-34 //reduced Planck constant [J s]
)

//Conversion between SI and CGS.
const (
	PressureSIToCGS    = 10
	MassDensitySIToCGS = 1e-3
)

//Conversion between GU and SI.
const (
	PressureGUToSI      = C * C * C * C / G //[Pa per m^-2]
	EnergyDensityGUToSI = C * C * C * C / G
	MassDensityGUToSI   = C * C / G //[kg m^-3 per m^-2]
	MassGUToSI          = C * C / G //[kg per m]

	PressureSIToGU      = 1 / PressureGUToSI
	EnergyDensitySIToGU = 1 / EnergyDensityGUToSI
	MassDensitySIToGU   = 1 / MassDensityGUToSI
	MassSIToGU          = 1 / MassGUToSI
)

//Conversion between GU and CGS.
const (
	PressureGUToCGS    = PressureGUToSI * PressureSIToCGS
	MassDensityGUToCGS = MassDensityGUToSI * MassDensitySIToCGS
	PressureCGSToGU    = 1 / PressureGUToCGS
	MassDensityCGSToGU = 1 / MassDensityGUToCGS
)

//Conversion between NU (E = MeV) and SI/GU energy density.
const (
	EnergyDensityNUToSI = MeV * MeV * MeV * MeV / (Hbar * Hbar * Hbar * C * C * C)
	EnergyDensitySIToNU = 1 / EnergyDensityNUToSI
	EnergyDensityNUToGU = EnergyDensityNUToSI * EnergyDensitySIToGU
	EnergyDensityGUToNU = 1 / EnergyDensityNUToGU
)

//Conversion between astronomical units and GU.
const (
	MassSolarMassToGU = SolarMass * MassSIToGU //[m per solar mass]
	MassGUToSolarMass = 1 / MassSolarMassToGU
)
