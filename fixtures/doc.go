// Package fixtures provides deterministic, closed-form toy kernels and
// synthetic circuit shapes used across this module's test suites. Nothing
// here is exercised by production code; it exists so that dag, tree,
// bytecode, and vm tests can build real circuits without each reaching for
// ad-hoc test doubles.
package fixtures
