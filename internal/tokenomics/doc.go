// Package tokenomics implements the two-token economic simulator.
//
// The package models a compute-unit (CU) denominated system with two
// parallel token ledgers:
//
//   - sSTB: the stable token, pegged to $1.00 by a treasury-backed
//     reversion mechanism
//   - rSTB: the growth token, unpegged, appreciating with revenue and usage
//
// The engine is a pure function of its inputs. [Calculate] returns the
// snapshot at the end of a horizon, [Simulate] returns one snapshot per
// month, and [Step] is the single-month state transition both are built on.
//
// # Determinism
//
// Market noise comes from a sine-based generator seeded from the JSON
// encoding of the parameters ([Seed]), so the same parameters always give
// the same numbers:
//
//	a := tokenomics.Calculate(tokenomics.DefaultParameters(), 12)
//	b := tokenomics.Calculate(tokenomics.DefaultParameters(), 12)
//	// a and b are identical except for Timestamp
//
// Every growth and decay factor carries an explicit cap and every ratio is
// guarded, so no output field is ever NaN or Inf for finite input.
package tokenomics
