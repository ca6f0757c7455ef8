/*
 * main.go, part of gotov.
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

//quarkscan sweeps the quark-matter EOS parameter space (B, a2, a4), keeps the
//points where strange quark matter is the stable ground state, and computes for
//each surviving point the maximum mass, the canonical-star radius and tidal
//deformability, and the maximum Love number of its star family, writing one CSV
//row per point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "quarkscan",
	Short: "Scan the quark-matter EOS parameter space for strange-star families",
	Long: `quarkscan grids the (B, a2, a4) parameters of the quark-matter EOS over
the stability region of strange quark matter, solves a tidally deformed star
family at every grid point, and reports the family's extremal properties
(maximum mass, canonical 1.4 solar-mass star, maximum Love number) as CSV.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var opts scanOptions
		var err error
		if opts.meshSize, err = cmd.Flags().GetInt("mesh-size"); err != nil {
			return err
		}
		if opts.workers, err = cmd.Flags().GetInt("workers"); err != nil {
			return err
		}
		if opts.output, err = cmd.Flags().GetString("output"); err != nil {
			return err
		}
		if opts.maxRhoCGS, err = cmd.Flags().GetFloat64("max-rho"); err != nil {
			return err
		}
		if opts.familySize, err = cmd.Flags().GetInt("family-size"); err != nil {
			return err
		}
		return runScan(opts)
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().Int("mesh-size", 21, "Grid points per parameter axis")
	rootCmd.Flags().Int("workers", 0, "Concurrent families (0 means one per CPU)")
	rootCmd.Flags().String("output", "quark_scan.csv", "CSV report file")
	rootCmd.Flags().Float64("max-rho", 1.0e16, "Highest central density swept [g cm^-3]")
	rootCmd.Flags().Int("family-size", 20, "Stars per family sweep")
}

func main() {
	Execute()
}
