// Package eval implements an exact-arithmetic expression evaluator.
//
// Expressions are parsed into an AST of rational numbers, constants and
// operators, reduced symbolically (exact big.Rat arithmetic, duplicate-term
// grouping, trig of pi multiples), and approximated numerically with
// arbitrary-precision floats. "1/3 + 1/6" reduces to the exact "1/2";
// "pi + 1" stays symbolic and is approximated alongside.
//
// Evaluation is synchronous and CPU-bound. The package never spawns
// goroutines; callers that need background evaluation wrap it themselves.
package eval
