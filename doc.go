// Package xmltree parses, mutates, and serializes XML 1.0 documents as
// an in-memory, arena-backed tree.
//
// Its defining goal is round-trippable editing: parse an arbitrary XML
// document, change a small subset of nodes, and write it back without
// losing structural fidelity — element order, attribute order, mixed
// content, processing instructions, comments, and doctype are all
// preserved. The package checks XML 1.0 well-formedness; it does not
// validate against a DTD or XML Schema, and it does not resolve
// namespace prefixes against URIs.
package xmltree
