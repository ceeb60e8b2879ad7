// Package bytecode lowers an optimized expression tree (package tree) into
// a flat, linear instruction sequence over indexed matrix buffers.
// Lowering never touches numeric data: it only decides how many
// buffers the evaluation needs, how large each one is, and in what order
// Write/Matmul/Kron/FRPR instructions fill them in. Package vm is the
// other half — it sizes an arena from these buffer descriptions and
// actually executes the instructions.
package bytecode
