package engine

import "errors"

// ErrNotIndexed reports a line-addressed operation on a path that has no
// cached line index. The caller must index the file first.
var ErrNotIndexed = errors.New("file not indexed")

// ErrStaleIndex reports that the file on disk no longer matches the cached
// snapshot it was indexed from. Returned only when revalidation is enabled.
var ErrStaleIndex = errors.New("line index is stale")
