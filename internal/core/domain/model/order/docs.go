// Package order contains the Order aggregate and its lifecycle rules: the
// seven-stage status catalog with its terminal set, the acceptance guard
// with its idempotent duplicate handling, and the subtotal consistency
// check applied at creation.
package order
