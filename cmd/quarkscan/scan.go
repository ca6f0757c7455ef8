/*
 * scan.go, part of gotov.
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

package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"runtime"
	"strconv"
	"sync"

	tov "github.com/rsantos/gotov"
	"github.com/rsantos/gotov/units"
	"gonum.org/v1/gonum/floats"
)

//Stability-window constants of strange quark matter, in natural units.
//g0 is the Gibbs free energy per baryon of quark matter at null pressure: below
//it, two-flavor matter would be stabler than nuclei; above ~930 MeV strange
//matter is never the ground state. alpha is the slope of the a2_max vs a4 line.
const (
	g0    = 930.0 //[MeV]
	third = 1.0 / 3.0
)

var (
	cube3 = math.Pow(1+math.Cbrt(2), 3)
	alpha = (third - 8/(3*cube3)) * g0 * g0 //[MeV^2]
	bMax  = g0 * g0 * g0 * g0 / (108 * math.Pi * math.Pi)
)

//calcBMax and calcBMin bound the bag constant of a stable strange-matter EOS
//for given a2 [MeV^2] and a4, both in MeV^4.
func calcBMax(a2, a4 float64) float64 {
	return (g0 * g0 / (108 * math.Pi * math.Pi)) * (g0*g0*a4 - 9*a2)
}

func calcBMin(a2, a4 float64) float64 {
	return (g0 * g0 / (54 * math.Pi * math.Pi)) * ((4*g0*g0*a4)/cube3 - 3*a2)
}

type scanOptions struct {
	meshSize   int
	workers    int
	output     string
	maxRhoCGS  float64
	familySize int
}

//point is one parameter-space grid point, in natural units.
type point struct {
	index int
	a2    float64 //[MeV^2]
	a4    float64 //[dimensionless]
	b     float64 //[MeV^4]
}

//result carries the family properties of one point; failed is set when the
//point's family could not be solved or a feature was not bracketed.
type result struct {
	point
	rhoMaxMass   float64 //central density of the maximum-mass star [GU]
	maxMass      float64 //[GU]
	rhoCanonical float64
	rCanonical   float64 //[m]
	lamCanonical float64
	rhoMaxK2     float64
	maxK2        float64
	failed       string //diagnostic, empty on success
}

//gridPoints builds the (a2, a4, B) mesh over the stability region. a2 is
//sampled uniformly in sqrt(a2) and B uniformly in B^(1/4), which concentrates
//points where the EOS actually varies.
func gridPoints(meshSize int) []point {
	a2Sqrt := make([]float64, meshSize)
	floats.Span(a2Sqrt, 0, math.Sqrt(alpha))
	a4s := make([]float64, meshSize)
	floats.Span(a4s, 0, 1)
	bQuart := make([]float64, meshSize)
	floats.Span(bQuart, 0, math.Pow(bMax, 0.25))

	var pts []point
	for _, sa2 := range a2Sqrt {
		a2 := sa2 * sa2
		for _, a4 := range a4s {
			if a4 <= 0 || a4 > 1 || a2 <= 0 || a2 >= alpha*a4 {
				continue
			}
			for _, qb := range bQuart {
				b := qb * qb * qb * qb
				if b <= calcBMin(a2, a4) || b >= calcBMax(a2, a4) {
					continue
				}
				pts = append(pts, point{index: len(pts), a2: a2, a4: a4, b: b})
			}
		}
	}
	return pts
}

//analyze solves the star family of one grid point and extracts its extremal
//properties. EOS parameters are converted from natural to geometrized units
//here; everything downstream is GU.
func analyze(pt point, opts scanOptions) result {
	res := result{point: pt}
	a2GU := pt.a2 * math.Sqrt(units.EnergyDensityNUToGU)
	bGU := pt.b * units.EnergyDensityNUToGU
	eos, err := tov.NewQuarkEOS(bGU, a2GU, pt.a4)
	if err != nil {
		res.failed = err.Error()
		return res
	}

	maxRho := opts.maxRhoCGS * units.MassDensityCGSToGU
	pCenter := eos.P(maxRho)
	if err := tov.CheckEOS(eos, tov.LogCenters(pCenter, -15, 0, 1000), 1e-6); err != nil {
		res.failed = err.Error()
		return res
	}

	cfg := tov.DefaultSolveConfig()
	cfg.MaxStep = 100
	family, err := tov.NewStarFamily(eos, tov.LogCenters(pCenter, -3, 0, opts.familySize), 0, cfg)
	if err != nil {
		res.failed = err.Error()
		return res
	}
	if err := family.SolveTidal(); err != nil {
		res.failed = err.Error()
		return res
	}

	maxMass, err := family.FindMaximumMassStar()
	if err != nil {
		res.failed = err.Error()
		return res
	}
	res.rhoMaxMass = maxMass.RhoCenter
	res.maxMass = maxMass.Value

	canonical, err := family.FindCanonicalStar(1.4 * units.MassSolarMassToGU)
	var nf *tov.NotFoundError
	switch {
	case err == nil:
		res.rhoCanonical = canonical.RhoCenter
		res.rCanonical = canonical.Star.Radius
		res.lamCanonical = canonical.Star.TidalDeformability()
	case errors.As(err, &nf):
		//A family whose maximum mass is below canonical has no such star;
		//the point is still reported.
		res.rhoCanonical = math.NaN()
		res.rCanonical = math.NaN()
		res.lamCanonical = math.NaN()
	default:
		res.failed = err.Error()
		return res
	}

	maxK2, err := family.FindMaximumK2Star()
	switch {
	case err == nil:
		res.rhoMaxK2 = maxK2.RhoCenter
		res.maxK2 = maxK2.Value
	case errors.As(err, &nf):
		//k2 peaking at the edge of the swept range is no interior maximum.
		res.rhoMaxK2 = math.NaN()
		res.maxK2 = math.NaN()
	default:
		res.failed = err.Error()
		return res
	}
	return res
}

func runScan(opts scanOptions) error {
	if opts.workers <= 0 {
		opts.workers = runtime.NumCPU()
	}
	pts := gridPoints(opts.meshSize)
	log.Printf("quarkscan: %d stable parameter points on a %d^3 mesh, %d workers", len(pts), opts.meshSize, opts.workers)

	results := make([]result, len(pts))
	jobs := make(chan point)
	var wg sync.WaitGroup
	var done int
	var mu sync.Mutex
	for w := 0; w < opts.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for pt := range jobs {
				res := analyze(pt, opts)
				results[pt.index] = res
				mu.Lock()
				done++
				if res.failed != "" {
					log.Printf("quarkscan: point %d (a2=%.4g a4=%.4g B=%.4g) failed: %s", pt.index, pt.a2, pt.a4, pt.b, res.failed)
				} else if done%10 == 0 || done == len(pts) {
					log.Printf("quarkscan: %d/%d families solved", done, len(pts))
				}
				mu.Unlock()
			}
		}()
	}
	for _, pt := range pts {
		jobs <- pt
	}
	close(jobs)
	wg.Wait()

	return writeReport(opts.output, results)
}

func fmtCell(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'g', 10, 64)
}

func writeReport(fname string, results []result) error {
	fh, err := os.Create(fname)
	if err != nil {
		return fmt.Errorf("quarkscan: %w", err)
	}
	defer fh.Close()
	w := csv.NewWriter(fh)
	defer w.Flush()

	header := []string{
		"a2^(1/2) [MeV]", "a4 [dimensionless]", "B^(1/4) [MeV]",
		"rho_center_max [10^15 g cm^-3]", "M_max [solar mass]",
		"rho_center_canonical [10^15 g cm^-3]", "R_canonical [km]", "Lambda_canonical [dimensionless]",
		"rho_center_k2_max [10^15 g cm^-3]", "k2_max [dimensionless]",
		"error",
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("quarkscan: %w", err)
	}
	toCGS15 := units.MassDensityGUToCGS / 1e15
	for _, r := range results {
		row := []string{
			fmtCell(math.Sqrt(r.a2)), fmtCell(r.a4), fmtCell(math.Pow(r.b, 0.25)),
			fmtCell(r.rhoMaxMass * toCGS15), fmtCell(r.maxMass * units.MassGUToSolarMass),
			fmtCell(r.rhoCanonical * toCGS15), fmtCell(r.rCanonical / 1e3), fmtCell(r.lamCanonical),
			fmtCell(r.rhoMaxK2 * toCGS15), fmtCell(r.maxK2),
			r.failed,
		}
		if r.failed != "" {
			row = []string{
				fmtCell(math.Sqrt(r.a2)), fmtCell(r.a4), fmtCell(math.Pow(r.b, 0.25)),
				"", "", "", "", "", "", "", r.failed,
			}
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("quarkscan: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}
