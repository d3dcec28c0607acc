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

package types

// Field is one named member of a struct declaration. Offset is a
// multiple of 8: the generator's member-access lowering (spec.md
// §4.7) always steps by a full stack slot regardless of the field's
// own declared width, the same 8-byte stride local variables use.
type Field struct {
	Name   string
	Type   DataType
	Offset int
}

// Struct is a declared struct type: a stable id (>= FirstStructID,
// assigned in declaration order), its field list in declaration
// order, and its total size.
type Struct struct {
	Name   string
	ID     int
	Fields []Field
	Size   int
}

func (s *Struct) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Registry is the program-wide struct table, keyed both by name (for
// parsing `struct Point` declarations and member expressions) and by
// id (for the operator table, which only ever sees DataType.ID).
// Grounded on y1yang0-falcon's ast.Application, which keeps parallel
// struct-by-name and function-by-name maps at the top level.
type Registry struct {
	byName map[string]*Struct
	byID   map[int]*Struct
	nextID int
}

func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]*Struct),
		byID:   make(map[int]*Struct),
		nextID: FirstStructID,
	}
}

// Declare registers a new struct type from its fields' declared
// widths, assigning each field a sequential 8-byte-stride offset and
// the whole struct the next free id.
func (r *Registry) Declare(name string, fieldDecls []FieldDecl) *Struct {
	st := &Struct{Name: name, ID: r.nextID}
	r.nextID++
	for i, fd := range fieldDecls {
		st.Fields = append(st.Fields, Field{Name: fd.Name, Type: fd.Type, Offset: i * 8})
	}
	st.Size = len(st.Fields) * 8
	r.byName[name] = st
	r.byID[st.ID] = st
	return st
}

// FieldDecl is the input to Declare: a field's declared name and type,
// before an offset has been assigned.
type FieldDecl struct {
	Name string
	Type DataType
}

func (r *Registry) ByName(name string) (*Struct, bool) {
	st, ok := r.byName[name]
	return st, ok
}

func (r *Registry) ByID(id int) (*Struct, bool) {
	st, ok := r.byID[id]
	return st, ok
}

// SizeOf adapts the registry to the sizeOf/Dereference callback shape:
// the size of struct id, or 0 if id names no declared struct.
func (r *Registry) SizeOf(id int) int {
	if st, ok := r.byID[id]; ok {
		return st.Size
	}
	return 0
}

// DataType returns the (non-pointer, rvalue) DataType naming struct
// id, suitable as a variable's declared type or a function's return
// type is not — struct-by-value return is out of scope (spec.md
// Non-goals), but struct-by-value parameters and locals use this.
func (s *Struct) DataType() DataType {
	return DataType{ID: s.ID, Pointers: 0, Size: s.Size, Lvalue: false}
}
