// Package document declares planner documents and resolves their
// navigation.
//
// A document is declared once as pure data: an ordered list of
// [PageDeclaration] values, the [GroupDeclaration] tab groups and [PageSet]
// pagination sets they belong to, and optional outline entries. Nothing is
// rendered while declaring.
//
// [Builder] then runs two strictly separated passes:
//
//  1. Registration. Every page receives the next 1-based page number and a
//     [DestinationInfo] is stored in the [Registry] under its destination
//     key. The registry is sealed when the pass ends.
//  2. Rendering. For every page a [Resolver] bound to that page is handed to
//     the [Producer]. Links to any other page, including pages declared
//     later, resolve because pass 1 has already seen the whole document.
//
// # Destination Keys
//
// A page's destination key is its explicit ID when one is given. Otherwise
// it is derived from the page type and parameters:
//
//	weekly:week=12
//	monthly:month=3,year=2025
//	index
//
// Parameter names are sorted, dates are written as YYYYMMDD and integers in
// base 10. See [DestinationKey].
//
// # Lookup Misses
//
// Resolver methods never fail. A destination that does not exist resolves to
// nil and the caller decides whether to skip the link, draw a placeholder or
// log a warning. Sequence boundaries (the week before week 1) are also nil.
package document
