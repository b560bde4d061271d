// Package pipe defines the contract every traversal primitive satisfies.
//
// A pipe type is a Func. The engine calls it with the step's arguments, the
// token carried from the previous position (nil when there is none) and the
// step's private State, and the Func answers with exactly one Outcome:
//
//   - Emit with a token: a token flows downstream.
//   - Emit without a token: nothing flows, the engine moves on and the next
//     position will ask for input.
//   - Pull: no output yet, ask upstream for another token.
//   - Discard: the input token was rejected; handled like Pull.
//   - Done: this position is exhausted for the current run.
//
// State survives between runs of the same query, which is how a Func
// remembers a half-consumed candidate list. The concrete pipe types live in
// the modules/ tree and are registered through the registry package.
package pipe
