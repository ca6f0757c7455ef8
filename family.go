/*
 * family.go, part of gotov.
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
	"sync"

	"gonum.org/v1/gonum/floats"
)

// StarFamily sweeps a sequence of central pressures for one EOS, solving each
// star independently and assembling parallel property arrays in the order of the
// input sequence. A family is filled by one SolveTOV or SolveTidal call and
// read-only afterwards; sweeping again overwrites it.
//
// Failure policy: the sweep aborts on the first star that fails and returns the
// failure wrapped in a *SweepError carrying the index and central pressure, so
// the offending configuration can be re-run in isolation. No partial results are
// kept.
type StarFamily struct {
	eos      EOS
	pCenters []float64
	pSurface float64
	cfg      SolveConfig

	//Workers sets the number of concurrent single-star solves. Values <= 1 mean
	//a sequential sweep. Stars share no state, so any worker count is safe.
	Workers int
	//OnStarSolved, if non-nil, is called once per finished star with its index
	//and the family size, after that star's results are stored. Calls are
	//serialized but not ordered when Workers > 1.
	OnStarSolved func(i, n int)

	//Extremum refinement policy, used by the Find* methods.
	RefineTol    float64 //relative convergence tolerance on the extremal value
	RefineIters  int     //maximum refinement rounds
	RefinePoints int     //grid points per refinement round

	//Property arrays, parallel to the input central-pressure sequence.
	Radius    []float64
	Mass      []float64
	RhoCenter []float64
	K2        []float64 //filled only by SolveTidal

	tidal bool
	swept bool
}

// NewStarFamily returns an unsolved family over the given central-pressure
// sequence, conventionally increasing. A single-entry family is valid.
func NewStarFamily(eos EOS, pCenters []float64, pSurface float64, cfg SolveConfig) (*StarFamily, error) {
	if eos == nil {
		panic("gotov: NewStarFamily called with a nil EOS")
	}
	if len(pCenters) == 0 {
		return nil, &DomainError{Op: "NewStarFamily", Value: 0, Reason: "the central-pressure sequence is empty"}
	}
	return &StarFamily{
		eos:          eos,
		pCenters:     append([]float64(nil), pCenters...),
		pSurface:     pSurface,
		cfg:          cfg,
		RefineTol:    1e-6,
		RefineIters:  6,
		RefinePoints: 9,
	}, nil
}

// LogCenters returns n central pressures logarithmically spaced over
// [pCenter*10^minExp, pCenter*10^maxExp], the conventional way to cover a star
// family around a reference central pressure.
func LogCenters(pCenter, minExp, maxExp float64, n int) []float64 {
	return floats.LogSpan(make([]float64, n), pCenter*math.Pow(10, minExp), pCenter*math.Pow(10, maxExp))
}

// PCenters returns the central-pressure sequence of the family.
func (f *StarFamily) PCenters() []float64 { return f.pCenters }

// SolveTOV solves every star of the family, filling Radius, Mass and RhoCenter.
func (f *StarFamily) SolveTOV() error { return f.sweep(false) }

// SolveTidal solves every star of the family including the tidal perturbation,
// filling Radius, Mass, RhoCenter and K2.
func (f *StarFamily) SolveTidal() error { return f.sweep(true) }

func (f *StarFamily) solveOne(star *Star, i int, tidal bool) error {
	if err := star.SolveTOV(f.pCenters[i]); err != nil {
		return &SweepError{Index: i, PCenter: f.pCenters[i], Err: err}
	}
	if tidal {
		if err := star.SolveTidal(); err != nil {
			return &SweepError{Index: i, PCenter: f.pCenters[i], Err: err}
		}
		f.K2[i] = star.K2
	}
	f.Radius[i] = star.Radius
	f.Mass[i] = star.Mass
	f.RhoCenter[i] = f.eos.Rho(f.pCenters[i])
	return nil
}

func (f *StarFamily) sweep(tidal bool) error {
	n := len(f.pCenters)
	f.Radius = make([]float64, n)
	f.Mass = make([]float64, n)
	f.RhoCenter = make([]float64, n)
	f.K2 = nil
	if tidal {
		f.K2 = make([]float64, n)
	}
	f.swept = false
	f.tidal = tidal

	if f.Workers <= 1 {
		star := NewStar(f.eos, f.pSurface, f.cfg)
		for i := 0; i < n; i++ {
			if err := f.solveOne(star, i, tidal); err != nil {
				return err
			}
			if f.OnStarSolved != nil {
				f.OnStarSolved(i, n)
			}
		}
		f.swept = true
		return nil
	}

	//Worker-pool sweep. Each worker owns its Star, so no solver state is shared;
	//results land in distinct slice elements keyed by index.
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr *SweepError
	)
	idx := make(chan int)
	workers := f.Workers
	if workers > n {
		workers = n
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			star := NewStar(f.eos, f.pSurface, f.cfg)
			for i := range idx {
				err := f.solveOne(star, i, tidal)
				mu.Lock()
				if err != nil {
					se := err.(*SweepError)
					if firstErr == nil || se.Index < firstErr.Index {
						firstErr = se
					}
				} else if f.OnStarSolved != nil {
					f.OnStarSolved(i, n)
				}
				mu.Unlock()
			}
		}()
	}
	for i := 0; i < n; i++ {
		mu.Lock()
		stop := firstErr != nil
		mu.Unlock()
		if stop {
			break
		}
		idx <- i
	}
	close(idx)
	wg.Wait()
	if firstErr != nil {
		return firstErr
	}
	f.swept = true
	return nil
}

// Swept reports whether the family holds a complete sweep.
func (f *StarFamily) Swept() bool { return f.swept }

func (f *StarFamily) mustBeSwept() {
	if !f.swept {
		panic("gotov: star family queried before a successful sweep")
	}
}

// TurningPointIndex returns the index of the largest sampled mass, the coarse
// location of the stability turning point: stars below it (with mass rising in
// central density) are on the stable branch.
func (f *StarFamily) TurningPointIndex() int {
	f.mustBeSwept()
	return floats.MaxIdx(f.Mass)
}
