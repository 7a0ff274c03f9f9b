// Package model defines the report template value types shared by the editor,
// validation engine, sample generator and codecs. Builders reside in
// internal/model but return the types aliased here.
//
// A Template owns an ordered list of Sections, each owning an ordered list of
// Fields. Order indices are zero-based and contiguous; the editor package
// renumbers them after every insertion, deletion or move, and Check rejects
// templates where they drift. Field types and report types are closed
// enumerations so type-specific switches stay exhaustive.
package model
