// Copyright (c) 2024 The Falcon Contributors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

package codegen

import (
	"fmt"

	"wincc/internal/utils"
)

// labels hands out the monotonically increasing per-construct ids
// spec.md §4.5 requires (one counter per construct kind: if, ternary,
// while, do_while, for, loc). A single id is drawn per construct
// *instance*; every label belonging to that instance (start/end,
// true/false branch) is built from the same id so the pair stays
// associated, the way end-to-end scenario 5 pairs
// _while_start_0/_while_end_0 from one loop.
type labels struct {
	counters map[string]int
	issued   *utils.Set[string]
}

func newLabels() *labels {
	return &labels{counters: make(map[string]int), issued: utils.NewSet[string]()}
}

func (l *labels) next(kind string) int {
	id := l.counters[kind]
	l.counters[kind] = id + 1
	return id
}

// mark records a label as issued, asserting the per-kind counters
// never produce the same text twice across a whole compilation.
func (l *labels) mark(label string) string {
	utils.Assert(l.issued.Add(label), "codegen: duplicate label %q", label)
	return label
}

func (l *labels) ifLabels() (elseLabel, endLabel string) {
	id := l.next("if")
	return l.mark(fmt.Sprintf("_if_%d", id)), l.mark(fmt.Sprintf("_post_conditional_if_%d", id))
}

func (l *labels) ternaryLabels() (elseLabel, endLabel string) {
	id := l.next("ternary")
	return l.mark(fmt.Sprintf("_ternary_%d_else", id)), l.mark(fmt.Sprintf("_ternary_%d_end", id))
}

func (l *labels) whileLabels() (start, end string) {
	id := l.next("while")
	return l.mark(fmt.Sprintf("_while_start_%d", id)), l.mark(fmt.Sprintf("_while_end_%d", id))
}

func (l *labels) doWhileLabels() (start, end string) {
	id := l.next("do_while")
	return l.mark(fmt.Sprintf("_do_while_start_%d", id)), l.mark(fmt.Sprintf("_do_while_end_%d", id))
}

func (l *labels) forLabels() (start, continueLabel, end string) {
	id := l.next("for")
	return l.mark(fmt.Sprintf("_for_start_%d", id)), l.mark(fmt.Sprintf("_for_continue_%d", id)), l.mark(fmt.Sprintf("_for_end_%d", id))
}

func (l *labels) locLabels() (short, end string) {
	id := l.next("loc")
	return l.mark(fmt.Sprintf("_loc_%d", id)), l.mark(fmt.Sprintf("_loc_end_%d", id))
}
