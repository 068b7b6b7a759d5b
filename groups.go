/*
 * groups.go, part of golatt.
 *
 * Copyright 2026 Matias Fuentealba
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

package latt

import "gonum.org/v1/gonum/floats"

// RGBA is a color as 4 bytes, red to alpha. It serializes as a plain JSON
// array of numbers.
type RGBA [4]uint8

// DefaultGroupColor is the color given to groups created without an explicit
// one, and UnassignedColor is the color ColorsRGBA gives to unassigned atoms.
var (
	DefaultGroupColor = RGBA{200, 200, 200, 255}
	UnassignedColor   = RGBA{160, 160, 160, 255}
)

// The fixed color wheel for newly created groups. Indexed modulo its length
// by the creation counter, so colors repeat after ten groups.
var palette = []RGBA{
	{230, 25, 75, 255},   //red
	{60, 180, 75, 255},   //green
	{255, 225, 25, 255},  //yellow
	{0, 130, 200, 255},   //blue
	{245, 130, 48, 255},  //orange
	{145, 30, 180, 255},  //purple
	{70, 240, 240, 255},  //cyan
	{240, 50, 230, 255},  //magenta
	{210, 245, 60, 255},  //lime
	{250, 190, 190, 255}, //pink
}

// NextColor returns the i-th color of the fixed palette, cycling.
func NextColor(i int) RGBA {
	if i < 0 {
		i = -i
	}
	return palette[i%len(palette)]
}

// PaletteLen returns the period of the color wheel.
func PaletteLen() int { return len(palette) }

// Group is one label a subset of atoms can be tagged with. Its id is the
// value stored in the assignment array; id 0 is reserved for "unassigned"
// and never appears in a group table. Direction is the unit vector the
// displacement exporter reads for this group; it defaults to (1,0,0).
type Group struct {
	ID        int
	Name      string
	Color     RGBA
	Direction [3]float64
}

// SetDirection sets the direction of the group to the given vector,
// normalized. A zero vector is refused.
func (G *Group) SetDirection(x, y, z float64) error {
	v := []float64{x, y, z}
	n := floats.Norm(v, 2)
	if n == 0 {
		return CError{"goLatt: Zero group direction", []string{"SetDirection"}}
	}
	floats.Scale(1/n, v)
	G.Direction = [3]float64{v[0], v[1], v[2]}
	return nil
}
