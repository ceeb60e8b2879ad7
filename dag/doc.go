// Package dag assembles a flat list of circuit operations into a single
// expression tree. It models the circuit as a qudit-indexed
// doubly linked DAG — one node per operation, linked to its immediate
// neighbor on each qudit it touches — and repeatedly rewrites that DAG by
// multiplying sequential operations on the same qudits, tensoring
// operations on disjoint qudits when doing so sets up a multiply, and
// contracting operations whose qudit sets overlap only partially, until a
// single node spanning every qudit remains.
package dag
