/*
 * doc.go, part of gotov.
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

//Package tov models the interior structure of compact stars. It integrates the
//Tolman-Oppenheimer-Volkoff equations of relativistic hydrostatic equilibrium for a
//given equation of state, optionally together with the quadrupolar tidal perturbation
//that yields the Love number k2, and sweeps families of stars over central pressure to
//locate the maximum-mass turning point, the maximum-k2 star and the star of a given
//("canonical") mass.
//
//All quantities are in geometrized units (G = c = 1), with lengths in meters; pressure
//and density therefore carry units of m^-2 and mass units of m. The units subpackage
//has the conversion constants to SI, CGS and natural units.
package tov
