// Package models implements the two-country, two-party political contagion
// equations.
//
// Each country has unaffiliated potential voters and two parties:
//
//   - country 1: [V1] unaffiliated, [B] and [C] partisans
//   - country 2: [V2] unaffiliated, [D] and [E] partisans
//
// Parties recruit from the unaffiliated pool and from each other, both from
// domestic contacts and across the border. Cross-border pressure is scaled by
// the complement of the domestic intensity, so foreign influence only acts on
// the share of contacts the domestic party did not already convert.
//
// [Deterministic] evaluates the plain equations. [Stochastic] adds a linearly
// declining growth rate, a hard switch between two parameter regimes at a
// fixed time, and multiplicative noise on every contact flow.
package models
