// Package contact implements pairwise particle constraints and their
// iterative resolution.
//
// A [Contact] is a plain data record produced once per frame by
// [Generator] implementations ([Cable], [Rod], or host-supplied
// colliders) into a buffer the world pre-allocates and reuses. The
// [Resolver] then reconciles the whole set: each iteration it picks the
// contact with the most negative separating velocity, applies an
// impulse and a position correction to that one contact, and re-scans,
// because resolving a contact shifts every other contact sharing one of
// its particles.
//
// Resolution order is load-bearing, not an optimization: resolving the
// worst violator first minimizes the oscillation injected into
// neighboring constraints, and the acceleration-aware restitution in
// the velocity pass is what keeps resting contacts from jittering under
// gravity.
package contact
