/*
 * export.go, part of golatt.
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

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// IDsWrite writes the atom ids of one group (or, with group 0, of all
// assigned atoms) to w, one id per line in ascending index order. This is
// the list the displacement tooling consumes; the displacement synthesis
// itself lives outside this library.
func IDsWrite(P *ProjectState, w io.Writer, group int) error {
	if P == nil {
		return CError{string(ErrNilProject), []string{"IDsWrite"}}
	}
	var sel []int
	if group == 0 {
		sel = P.CurrentSelection()
	} else {
		sel = P.GroupSelection(group)
	}
	bw := bufio.NewWriter(w)
	for _, i := range sel {
		fmt.Fprintf(bw, "%d\n", P.Data.ID(i))
	}
	if err := bw.Flush(); err != nil {
		return errDecorate(err, "IDsWrite")
	}
	return nil
}

// IDsFileWrite writes the same list to the named file.
func IDsFileWrite(P *ProjectState, filename string, group int) error {
	f, err := os.Create(filename)
	if err != nil {
		return errDecorate(err, "IDsFileWrite")
	}
	defer f.Close()
	if err := IDsWrite(P, f, group); err != nil {
		return errDecorate(err, "IDsFileWrite "+filename)
	}
	return nil
}
