/*
 * table.go, part of gotov.
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

//Package table reads two-column numeric tables, the format EOS tables and
//reference curves are distributed in: whitespace-separated .dat files or
//semicolon-separated .csv files with an optional header row, transparently
//decompressed when the name ends in .gz or .zst. Unit-conversion factors are
//applied per column while reading.
package table

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	tov "github.com/rsantos/gotov"
	"github.com/rsantos/gotov/units"
)

//prepSource opens fname and wraps it in the decompressor its extension asks
//for. Extensions .gz and .zst are supported; anything else is read as is.
func prepSource(fname string) (io.Reader, func() error, error) {
	fh, err := os.Open(fname)
	if err != nil {
		return nil, nil, fmt.Errorf("gotov/table: %w", err)
	}
	reader := bufio.NewReader(fh)
	parts := strings.Split(fname, ".")
	switch strings.ToLower(parts[len(parts)-1]) {
	case "gz":
		gz, err := gzip.NewReader(reader)
		if err != nil {
			fh.Close()
			return nil, nil, fmt.Errorf("gotov/table: %s: %w", fname, err)
		}
		return gz, func() error { gz.Close(); return fh.Close() }, nil
	case "zst":
		dec, err := zstd.NewReader(reader)
		if err != nil {
			fh.Close()
			return nil, nil, fmt.Errorf("gotov/table: %s: %w", fname, err)
		}
		return dec, func() error { dec.Close(); return fh.Close() }, nil
	}
	return reader, fh.Close, nil
}

//fields splits one data line. Semicolon-separated lines are treated as CSV
//columns, anything else as whitespace-separated.
func fields(line string) []string {
	if strings.Contains(line, ";") {
		cols := strings.Split(line, ";")
		for i := range cols {
			cols[i] = strings.TrimSpace(cols[i])
		}
		return cols
	}
	return strings.Fields(line)
}

// Read reads columns xCol and yCol (0-based) from the table in fname,
// multiplying them by xConv and yConv, and returns them as parallel slices.
// Blank lines and lines starting with '#' are skipped; a leading non-numeric
// header row is tolerated, any later unparsable row is an error.
func Read(fname string, xCol, yCol int, xConv, yConv float64) (xs, ys []float64, err error) {
	src, closer, err := prepSource(fname)
	if err != nil {
		return nil, nil, err
	}
	defer closer()

	scanner := bufio.NewScanner(src)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		cols := fields(line)
		if xCol >= len(cols) || yCol >= len(cols) {
			return nil, nil, fmt.Errorf("gotov/table: %s:%d: need columns %d and %d but the row has %d", fname, lineno, xCol, yCol, len(cols))
		}
		x, errx := strconv.ParseFloat(cols[xCol], 64)
		y, erry := strconv.ParseFloat(cols[yCol], 64)
		if errx != nil || erry != nil {
			if len(xs) == 0 {
				continue //header row
			}
			return nil, nil, fmt.Errorf("gotov/table: %s:%d: non-numeric row %q", fname, lineno, line)
		}
		xs = append(xs, x*xConv)
		ys = append(ys, y*yConv)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("gotov/table: %s: %w", fname, err)
	}
	if len(xs) == 0 {
		return nil, nil, fmt.Errorf("gotov/table: %s: no numeric rows found", fname)
	}
	return xs, ys, nil
}

// LoadEOS builds a tabulated EOS from a table file with density and pressure in
// the first two columns, in CGS units (g cm^-3 and dyn cm^-2), converting them
// to geometrized units while reading. Rows must go from the stellar surface
// (lowest values) to the highest tabulated density.
func LoadEOS(fname string) (*tov.TableEOS, error) {
	rho, p, err := Read(fname, 0, 1, units.MassDensityCGSToGU, units.PressureCGSToGU)
	if err != nil {
		return nil, err
	}
	return tov.NewTableEOS(rho, p)
}
