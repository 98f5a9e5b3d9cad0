// Package shapz provides small, composable utilities for reshaping in-memory
// data: selective field copying with rename and conversion, field exclusion,
// in-place field conversion, pruning of undefined or empty fields, and
// order-preserving sequence deduplication.
//
// # Core Concepts
//
// The library operates on two structures:
//
//   - Mapping: an insertion-ordered collection of key/value entries. Keys are
//     either ordinary strings (StringKey) or opaque unique tokens (Symbol).
//     Each entry carries an enumerable flag; non-enumerable entries are still
//     own entries but are skipped by the copying operations.
//   - Sequence: a 0-based indexable list of values that may contain holes
//     (unassigned indices). Holes are explicit tombstones, not nil values.
//
// All operations are shallow: they touch only top-level entries, never
// recurse into nested structures, and mutate caller-owned values in place
// unless a fresh result is documented (Dedup's copy mode).
//
// # Operations
//
// The leaf functions are pure and synchronous:
//
//   - OwnKeys: enumerate every own key of a Mapping, string keys before
//     symbol keys, each group in insertion order.
//   - AssignWithin: copy a declared subset of fields from source to target,
//     optionally renaming and converting each value.
//   - AssignWithout: copy every enumerable field of source to target except
//     a declared exclusion set.
//   - Convert: transform declared fields of a Mapping in place via a
//     converter function or a literal replacement.
//   - Deundefined, Deempty: remove fields holding the Undefined sentinel or
//     an empty nested Mapping.
//   - Dedup, DedupInPlace, DedupSlice: duplicate-free sequences preserving
//     first-occurrence order.
//
// Malformed inputs degrade to no-ops rather than errors. The single error
// condition in the library is a nil target mapping passed to AssignWithin or
// AssignWithout, reported as ErrInvalidArgument. This permissiveness is a
// deliberate contract: callers may hand partially-formed instruction data to
// any operation without crashing.
//
// # Reshape Plans
//
// Reshape composes the leaf operations into a named, reusable plan executed
// against a target Mapping:
//
//	plan := shapz.NewReshape("normalize-user",
//	    shapz.AssignWithinStep("pick", raw, []shapz.Field{
//	        shapz.Pick(shapz.StringKey("id")),
//	        shapz.PickAs(shapz.StringKey("mail"), shapz.StringKey("email")),
//	    }),
//	    shapz.DeundefinedStep("scrub"),
//	)
//	out, err := plan.Process(ctx, shapz.NewMapping())
//
// Reshape carries metrics, tracing, and hook events; the leaf functions stay
// unobserved so their cost is a bare loop.
//
// # Concurrency
//
// The leaf functions perform no synchronization: Mappings and Sequences are
// caller-owned and must not be mutated from multiple goroutines at once.
// Reshape alone is safe for concurrent configuration and execution of the
// plan itself; it never synchronizes access to the caller's Mapping.
package shapz
