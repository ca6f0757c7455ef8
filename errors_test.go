/*
 * errors_test.go, part of gotov.
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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweepErrorUnwrap(t *testing.T) {
	cause := &DomainError{Op: "test", Value: -1, Reason: "negative"}
	se := &SweepError{Index: 3, PCenter: 1e-10, Err: cause}

	var derr *DomainError
	require.True(t, errors.As(se, &derr))
	assert.Same(t, cause, derr)
	assert.ErrorIs(t, se, error(cause))
}

func TestErrorMessagesCarryContext(t *testing.T) {
	assert.Contains(t, (&DomainError{Op: "NewQuarkEOS", Value: -2, Reason: "negative bag"}).Error(), "NewQuarkEOS")
	assert.Contains(t, (&IntegrationError{PCenter: 1e-9, R: 500, Reason: "step underflow"}).Error(), "step underflow")
	assert.Contains(t, (&EventError{PCenter: 1e-9, PSurface: 0, Steps: 42, R: 1e4}).Error(), "42")
	assert.Contains(t, (&NotFoundError{Property: "mass", Target: 2068, Lo: 1e-10, Hi: 1e-8}).Error(), "mass")
	assert.Contains(t, (&SweepError{Index: 7, PCenter: 3e-10, Err: errors.New("boom")}).Error(), "boom")
}
