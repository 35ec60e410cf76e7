package dedupe

// Package dedupe provides the shared singleflight group used to deduplicate
// concurrent resolution attempts. Using a centralized singleflight.Group
// ensures that within one process only one resolution runs for a given
// battle while other callers wait for its result; across processes the
// storage-level compare-and-swap decides.

import "golang.org/x/sync/singleflight"

// ResolveGroup deduplicates battle resolution requests keyed by battle id
// (see keys.ResolveKey).
var ResolveGroup singleflight.Group
