/*
 * errors.go, part of gotov.
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

import "fmt"

//The error taxonomy of the library. Solver outcomes are encoded as typed errors
//rather than plain strings so a caller can tell a misconfigured sweep apart from a
//genuine numerical failure with errors.As. Every error carries the central pressure
//(or density) that produced it, so any failing configuration can be reproduced in
//isolation with a single-star solve.

// DomainError reports input outside the physically valid domain of an EOS: invalid
// construction parameters, a non-monotonic table, or an evaluation outside a
// tabulated range.
type DomainError struct {
	Op     string  //the constructor or method that rejected the input
	Value  float64 //the offending value, NaN when not applicable
	Reason string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("gotov/%s: domain-invalid input (value %g): %s", e.Op, e.Value, e.Reason)
}

// IntegrationError reports that the adaptive stepper failed before the surface
// event was found: a step-size underflow or a non-finite derivative.
type IntegrationError struct {
	PCenter float64 //central pressure of the failing star
	R       float64 //radial coordinate reached when the stepper gave up
	Reason  string  //the stepper's diagnostic
}

func (e *IntegrationError) Error() string {
	return fmt.Sprintf("gotov/Star.SolveTOV: integration failure at r = %g for p_center = %g: %s", e.R, e.PCenter, e.Reason)
}

// EventError reports that integration exhausted its radial domain or step budget
// without the pressure ever crossing the surface value. It usually means p_surface
// or RBegin is misconfigured for the EOS at hand, not that the stepper failed.
type EventError struct {
	PCenter  float64
	PSurface float64
	R        float64 //radial coordinate reached
	Steps    int
}

func (e *EventError) Error() string {
	return fmt.Sprintf("gotov/Star.SolveTOV: surface event p = %g not found for p_center = %g after %d steps (r = %g)", e.PSurface, e.PCenter, e.Steps, e.R)
}

// NotFoundError reports that a requested family feature (maximum, target-mass
// crossing) does not exist inside the swept central-density range. It is not a
// solver failure: the sweep simply does not bracket the feature.
type NotFoundError struct {
	Property string  //"mass", "k2", ...
	Target   float64 //target value for crossings, NaN for maxima
	Lo, Hi   float64 //swept rho_center range
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("gotov/StarFamily: no %s extremum/crossing (target %g) in rho_center range [%g, %g]", e.Property, e.Target, e.Lo, e.Hi)
}

// SweepError wraps a single star's failure during a family sweep with the index
// and central pressure of the star that failed. The sweep aborts on first failure.
type SweepError struct {
	Index   int
	PCenter float64
	Err     error
}

func (e *SweepError) Error() string {
	return fmt.Sprintf("gotov/StarFamily: star %d (p_center = %g) failed: %v", e.Index, e.PCenter, e.Err)
}

func (e *SweepError) Unwrap() error { return e.Err }
