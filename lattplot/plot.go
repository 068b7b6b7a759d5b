/*
 * plot.go, part of golatt.
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

// Package lattplot renders a ProjectState as a group-colored scatter plot,
// for headless inspection of a session without a UI in front. The output
// format follows the file extension (png, svg, pdf and the other formats
// gonum/plot writes).
package lattplot

import (
	"image/color"

	latt "github.com/mfuentealba/golatt"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

func rgba(c latt.RGBA) color.RGBA {
	return color.RGBA{R: c[0], G: c[1], B: c[2], A: c[3]}
}

func basicPlot(title string, b *latt.Box) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.X.Min = b.Xlo
	p.X.Max = b.Xhi
	p.Y.Min = b.Ylo
	p.Y.Max = b.Yhi
	p.Add(plotter.NewGrid())
	return p
}

// cell outline, so carved regions can be judged against the box
func addCell(p *plot.Plot, b *latt.Box) error {
	outline := plotter.XYs{
		{X: b.Xlo, Y: b.Ylo}, {X: b.Xhi, Y: b.Ylo},
		{X: b.Xhi, Y: b.Yhi}, {X: b.Xlo, Y: b.Yhi},
		{X: b.Xlo, Y: b.Ylo},
	}
	l, err := plotter.NewLine(outline)
	if err != nil {
		return err
	}
	l.LineStyle.Color = color.RGBA{R: 120, G: 120, B: 120, A: 255}
	p.Add(l)
	return nil
}

// Groups writes a scatter plot of the whole dataset to plotname, one glyph
// per atom, colored by assigned group (unassigned atoms get the standard
// gray) with one legend entry per group in table order.
func Groups(P *latt.ProjectState, title, plotname string) error {
	if P == nil || P.Data == nil {
		panic("goLatt/lattplot: Given nil data")
	}
	p := basicPlot(title, P.Data.Box())
	if err := addCell(p, P.Data.Box()); err != nil {
		return err
	}
	//unassigned atoms first, so group glyphs draw on top of them
	sets := []struct {
		name  string
		color latt.RGBA
		idx   []int
	}{{"unassigned", latt.UnassignedColor, unassigned(P)}}
	for _, G := range P.Groups() {
		sets = append(sets, struct {
			name  string
			color latt.RGBA
			idx   []int
		}{G.Name, G.Color, P.GroupSelection(G.ID)})
	}
	for _, set := range sets {
		if len(set.idx) == 0 {
			continue
		}
		pts := make(plotter.XYs, len(set.idx))
		for k, i := range set.idx {
			pts[k].X = P.Data.X(i)
			pts[k].Y = P.Data.Y(i)
		}
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return err
		}
		s.GlyphStyle.Color = rgba(set.color)
		s.GlyphStyle.Radius = vg.Points(1.5)
		p.Add(s)
		if set.name != "unassigned" {
			p.Legend.Add(set.name, s)
		}
	}
	return p.Save(6*vg.Inch, 6*vg.Inch, plotname)
}

func unassigned(P *latt.ProjectState) []int {
	var ret []int
	for i := 0; i < P.Data.Len(); i++ {
		if P.AssignedGroupOf(i) == 0 {
			ret = append(ret, i)
		}
	}
	return ret
}
