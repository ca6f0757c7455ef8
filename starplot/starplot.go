/*
 * starplot.go, part of gotov.
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

//Package starplot draws the standard diagnostic curves of solved stars and star
//families as PNG files: the mass-radius curve, the EOS curve, the Love number
//curve and single-star radial profiles. Radii are plotted in km and masses in
//solar masses; the core itself stays in geometrized units.
package starplot

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	tov "github.com/rsantos/gotov"
	"github.com/rsantos/gotov/units"
)

func line(p *plot.Plot, xs, ys []float64, name string, col color.RGBA) error {
	if len(xs) != len(ys) {
		panic("gotov/starplot: mismatched curve slices")
	}
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}
	l, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("gotov/starplot: %w", err)
	}
	l.Color = col
	p.Add(l)
	if name != "" {
		p.Legend.Add(name, l)
	}
	return nil
}

// MassRadiusCurve plots the radius-mass curve of a swept family, radius in km
// against gravitational mass in solar masses, and saves it to fname.
func MassRadiusCurve(f *tov.StarFamily, fname string) error {
	if !f.Swept() {
		panic("gotov/starplot: family not swept")
	}
	p := plot.New()
	p.Title.Text = "Radius-Mass curve for the star family"
	p.X.Label.Text = "R [km]"
	p.Y.Label.Text = "M [solar mass]"
	p.Add(plotter.NewGrid())

	xs := make([]float64, len(f.Radius))
	ys := make([]float64, len(f.Mass))
	for i := range f.Radius {
		xs[i] = f.Radius[i] / 1e3
		ys[i] = f.Mass[i] * units.MassGUToSolarMass
	}
	if err := line(p, xs, ys, "Calculated curve", color.RGBA{B: 255, A: 255}); err != nil {
		return err
	}
	return p.Save(6*vg.Inch, 4*vg.Inch, fname)
}

// K2Curve plots the Love number of a tidally swept family against central
// density in units of 10^15 g cm^-3 and saves it to fname.
func K2Curve(f *tov.StarFamily, fname string) error {
	if !f.Swept() || f.K2 == nil {
		panic("gotov/starplot: family not swept with tides")
	}
	p := plot.New()
	p.Title.Text = "Love number for the star family"
	p.X.Label.Text = "rho_center [10^15 g cm^-3]"
	p.Y.Label.Text = "k2 [dimensionless]"
	p.Add(plotter.NewGrid())

	xs := make([]float64, len(f.RhoCenter))
	for i := range f.RhoCenter {
		xs[i] = f.RhoCenter[i] * units.MassDensityGUToCGS / 1e15
	}
	if err := line(p, xs, f.K2, "", color.RGBA{B: 255, A: 255}); err != nil {
		return err
	}
	return p.Save(6*vg.Inch, 4*vg.Inch, fname)
}

// EOSCurve plots rho(p) over the given pressure grid, both axes in geometrized
// units, and saves it to fname.
func EOSCurve(e tov.EOS, pSpace []float64, fname string) error {
	p := plot.New()
	p.Title.Text = "EOS curve"
	p.X.Label.Text = "p [m^-2]"
	p.Y.Label.Text = "rho [m^-2]"
	p.Add(plotter.NewGrid())

	ys := make([]float64, len(pSpace))
	for i, pp := range pSpace {
		ys[i] = e.Rho(pp)
	}
	if err := line(p, pSpace, ys, "", color.RGBA{R: 255, A: 255}); err != nil {
		return err
	}
	return p.Save(6*vg.Inch, 4*vg.Inch, fname)
}

// StructureCurves plots the radial profiles of a solved star, each normalized
// by its central (or total) value so the three curves share axes, and saves
// the figure to fname. n is the number of radial samples.
func StructureCurves(s *tov.Star, n int, fname string) error {
	rs, ps, ms, rhos := s.Profile(n)
	p := plot.New()
	p.Title.Text = "TOV solution for the star"
	p.X.Label.Text = "r [km]"
	p.Y.Label.Text = "normalized value"
	p.Add(plotter.NewGrid())

	xs := make([]float64, len(rs))
	np, nm, nrho := make([]float64, n), make([]float64, n), make([]float64, n)
	rhoC := rhos[0]
	for i := range rs {
		xs[i] = rs[i] / 1e3
		np[i] = ps[i] / s.PCenter
		nm[i] = ms[i] / s.Mass
		nrho[i] = rhos[i] / rhoC
	}
	if err := line(p, xs, np, "pressure", color.RGBA{B: 255, A: 255}); err != nil {
		return err
	}
	if err := line(p, xs, nm, "mass function", color.RGBA{G: 160, A: 255}); err != nil {
		return err
	}
	if err := line(p, xs, nrho, "density", color.RGBA{R: 255, A: 255}); err != nil {
		return err
	}
	return p.Save(6*vg.Inch, 4*vg.Inch, fname)
}
