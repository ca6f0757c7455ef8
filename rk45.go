/*
 * rk45.go, part of gotov.
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

//rk45.go contains the embedded Dormand-Prince 5(4) stepper that drives both the
//TOV and the tidal integrations, including the terminal surface event, which is
//localized to sub-step precision by bisecting the step length.

package tov

import "math"

//The right-hand side of a first-order ODE system y'(r) = f(r, y). The derivative
//is written into dy, which has the same length as y.
type odeFunc func(r float64, y, dy []float64)

// SolveConfig collects every knob of a single-star solve. The zero value is not
// usable; start from DefaultSolveConfig. One value is passed explicitly into each
// solver; there are no process-wide defaults.
type SolveConfig struct {
	//RBegin is the radial coordinate where integration starts. It must be a small
	//positive value, not zero, to stay clear of the coordinate singularity at the
	//center. Default: the machine epsilon.
	RBegin float64
	//REnd bounds the radial domain. Integration that reaches it without the
	//surface event is reported as an EventError. Default: +Inf (the event is the
	//only stop).
	REnd float64
	//InitialStep, if positive, is the first step size. Otherwise the stepper
	//picks one from the local derivative scale.
	InitialStep float64
	//MaxStep caps the step size. Default: +Inf.
	MaxStep float64
	//AbsTol and RelTol control the local error of the TOV integration.
	//Defaults: 1e-9 and 1e-6.
	AbsTol float64
	RelTol float64
	//TidalAbsTol is the absolute tolerance of the tidal integration, separate
	//from AbsTol because the perturbation variable is order unity while the
	//pressure spans many orders of magnitude. Default: 1e-21.
	TidalAbsTol float64
	//MaxSteps bounds the number of accepted-or-rejected steps of one solve.
	//Default: 1e6.
	MaxSteps int
}

// DefaultSolveConfig returns the documented default configuration.
func DefaultSolveConfig() SolveConfig {
	return SolveConfig{
		RBegin:      2.220446049250313e-16,
		REnd:        math.Inf(1),
		MaxStep:     math.Inf(1),
		AbsTol:      1e-9,
		RelTol:      1e-6,
		TidalAbsTol: 1e-21,
		MaxSteps:    1000000,
	}
}

//Dormand-Prince 5(4) tableau. dpE is the difference between the 5th-order
//weights and the embedded 4th-order weights, applied directly to the stage
//derivatives to estimate the local error.
var (
	dpC = [7]float64{0, 1.0 / 5, 3.0 / 10, 4.0 / 5, 8.0 / 9, 1, 1}
	dpA = [7][6]float64{
		{},
		{1.0 / 5},
		{3.0 / 40, 9.0 / 40},
		{44.0 / 45, -56.0 / 15, 32.0 / 9},
		{19372.0 / 6561, -25360.0 / 2187, 64448.0 / 6561, -212.0 / 729},
		{9017.0 / 3168, -355.0 / 33, 46732.0 / 5247, 49.0 / 176, -5103.0 / 18656},
		{35.0 / 384, 0, 500.0 / 1113, 125.0 / 192, -2187.0 / 6784, 11.0 / 84},
	}
	dpB = [7]float64{35.0 / 384, 0, 500.0 / 1113, 125.0 / 192, -2187.0 / 6784, 11.0 / 84, 0}
	dpE = [7]float64{71.0 / 57600, 0, -71.0 / 16695, 71.0 / 1920, -17253.0 / 339200, 22.0 / 525, -1.0 / 40}
)

type odeStatus int

const (
	odeEvent     odeStatus = iota //terminal event localized
	odeDomainEnd                  //REnd or MaxSteps reached without the event
	odeFailed                     //step underflow or non-finite derivative
)

//odeSolution holds the accepted integration nodes plus, when the terminal event
//fired, the event-localized state. Nodes are in increasing r order.
type odeSolution struct {
	rs     []float64
	ys     [][]float64 //ys[i] is the state at rs[i]
	eventR float64
	eventY []float64
	steps  int
	rStop  float64 //last radial coordinate reached
	msg    string  //diagnostic for odeFailed
}

//stepper owns the workspace of one integration. Nothing is shared between
//stepper instances, which keeps concurrent solves lock-free.
type stepper struct {
	f    odeFunc
	n    int
	k    [7][]float64
	ytmp []float64
}

func newStepper(f odeFunc, n int) *stepper {
	s := &stepper{f: f, n: n, ytmp: make([]float64, n)}
	for i := range s.k {
		s.k[i] = make([]float64, n)
	}
	return s
}

//step takes a single trial step of size h from (r, y) into yOut, writing the
//embedded error estimate into yErr. k[0] must hold f(r, y) on entry; on exit
//k[6] holds f(r+h, yOut) (the FSAL property, so an accepted step seeds the next
//one for free and a rejected one leaves k[0] intact).
func (s *stepper) step(r, h float64, y, yOut, yErr []float64) {
	for i := 1; i < 7; i++ {
		for j := 0; j < s.n; j++ {
			sum := 0.0
			for l := 0; l < i; l++ {
				sum += dpA[i][l] * s.k[l][j]
			}
			s.ytmp[j] = y[j] + h*sum
		}
		s.f(r+dpC[i]*h, s.ytmp, s.k[i])
	}
	for j := 0; j < s.n; j++ {
		sum, esum := 0.0, 0.0
		for i := 0; i < 7; i++ {
			sum += dpB[i] * s.k[i][j]
			esum += dpE[i] * s.k[i][j]
		}
		yOut[j] = y[j] + h*sum
		yErr[j] = h * esum
	}
}

//errNorm is the RMS of the error estimate scaled by atol + rtol*max(|y0|,|y1|).
//A value <= 1 accepts the step.
func errNorm(yErr, y0, y1 []float64, atol, rtol float64) float64 {
	sum := 0.0
	for j := range yErr {
		sc := atol + rtol*math.Max(math.Abs(y0[j]), math.Abs(y1[j]))
		e := yErr[j] / sc
		sum += e * e
	}
	return math.Sqrt(sum / float64(len(yErr)))
}

func allFinite(y []float64) bool {
	for _, v := range y {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

//initialStep picks a first step size from the scale of y and f(r0, y0),
//following the usual Hairer heuristic.
func initialStep(f odeFunc, r0 float64, y0, f0 []float64, atol, rtol float64) float64 {
	n := len(y0)
	d0, d1 := 0.0, 0.0
	for j := 0; j < n; j++ {
		sc := atol + rtol*math.Abs(y0[j])
		d0 += (y0[j] / sc) * (y0[j] / sc)
		d1 += (f0[j] / sc) * (f0[j] / sc)
	}
	d0 = math.Sqrt(d0 / float64(n))
	d1 = math.Sqrt(d1 / float64(n))
	h0 := 1e-6
	if d0 >= 1e-5 && d1 >= 1e-5 {
		h0 = 0.01 * d0 / d1
	}
	y1 := make([]float64, n)
	f1 := make([]float64, n)
	for j := 0; j < n; j++ {
		y1[j] = y0[j] + h0*f0[j]
	}
	f(r0+h0, y1, f1)
	d2 := 0.0
	for j := 0; j < n; j++ {
		sc := atol + rtol*math.Abs(y0[j])
		d := (f1[j] - f0[j]) / sc
		d2 += d * d
	}
	d2 = math.Sqrt(d2/float64(n)) / h0
	h1 := math.Max(1e-6, h0*1e-3)
	if d1 > 1e-15 || d2 > 1e-15 {
		h1 = math.Pow(0.01/math.Max(d1, d2), 0.2)
	}
	return math.Min(100*h0, h1)
}

//integrate marches the system outward from (r0, y0) until the terminal event
//g(r, y) crosses zero from above, REnd or the step budget is reached, or the
//stepper fails. A nil event disables event detection and the integration runs to
//REnd. The event state is localized by bisecting the step length from the last
//pre-event node, which keeps the left stage derivatives valid.
func integrate(f odeFunc, r0 float64, y0 []float64, event func(r float64, y []float64) float64, atol, rtol float64, cfg *SolveConfig) (*odeSolution, odeStatus) {
	n := len(y0)
	st := newStepper(f, n)
	sol := &odeSolution{}

	r := r0
	y := append([]float64(nil), y0...)
	f(r, y, st.k[0])
	if !allFinite(st.k[0]) {
		sol.rStop = r
		sol.msg = "non-finite derivative at the initial point"
		return sol, odeFailed
	}
	g0 := math.Inf(1)
	if event != nil {
		g0 = event(r, y)
	}
	sol.rs = append(sol.rs, r)
	sol.ys = append(sol.ys, append([]float64(nil), y...))

	h := cfg.InitialStep
	if h <= 0 {
		h = initialStep(f, r, y, st.k[0], atol, rtol)
	}
	yNew := make([]float64, n)
	yErr := make([]float64, n)

	for sol.steps < cfg.MaxSteps && r < cfg.REnd {
		//A finite REnd may be missed by one ulp; close enough counts as reached.
		if !math.IsInf(cfg.REnd, 1) && cfg.REnd-r <= 1e-12*math.Max(cfg.REnd, 1) {
			break
		}
		sol.steps++
		if h > cfg.MaxStep {
			h = cfg.MaxStep
		}
		if r+h > cfg.REnd {
			h = cfg.REnd - r
		}
		if h <= 1e-14*math.Max(math.Abs(r), 1) {
			sol.rStop = r
			sol.msg = "step size underflow"
			return sol, odeFailed
		}

		st.step(r, h, y, yNew, yErr)
		if !allFinite(yNew) || !allFinite(yErr) {
			h *= 0.1
			continue
		}
		en := errNorm(yErr, y, yNew, atol, rtol)
		if en > 1 {
			h *= math.Max(0.1, 0.9*math.Pow(en, -0.2))
			continue
		}

		rNew := r + h
		g1 := g0
		if event != nil {
			g1 = event(rNew, yNew)
		}
		if event != nil && g0 > 0 && g1 <= 0 {
			//Terminal event inside this step: bisect the step length.
			hLo, hHi := 0.0, h
			ym := make([]float64, n)
			ye := make([]float64, n)
			copy(ym, yNew)
			hm := h
			for i := 0; i < 128 && hHi-hLo > 4e-16*math.Max(rNew, 1e-30); i++ {
				hm = 0.5 * (hLo + hHi)
				st.step(r, hm, y, ym, ye)
				if event(r+hm, ym) > 0 {
					hLo = hm
				} else {
					hHi = hm
				}
			}
			st.step(r, hHi, y, ym, ye)
			sol.eventR = r + hHi
			sol.eventY = ym
			if sol.eventR > sol.rs[len(sol.rs)-1] {
				sol.rs = append(sol.rs, sol.eventR)
				sol.ys = append(sol.ys, append([]float64(nil), ym...))
			}
			sol.rStop = sol.eventR
			return sol, odeEvent
		}

		r, g0 = rNew, g1
		copy(y, yNew)
		copy(st.k[0], st.k[6]) //FSAL
		sol.rs = append(sol.rs, r)
		sol.ys = append(sol.ys, append([]float64(nil), y...))

		fac := 0.9 * math.Pow(math.Max(en, 1e-10), -0.2)
		h *= math.Min(10, math.Max(0.2, fac))
	}
	sol.rStop = r
	return sol, odeDomainEnd
}
