// Package hashset implements a generic set backed by a resizable array of singly
// linked chains (separate chaining).
//
// Elements supply their own hash and equality through the Element constraint, so
// membership is decided by Equal rather than by Go's == operator. Inserting links
// the new node at the head of its bucket's chain; when the ratio of elements to
// buckets exceeds the configured limit the bucket array is rebuilt at double its
// length before Add returns. Removal never shrinks the array.
//
// A rebuild walks the old buckets in index order and each chain head to tail,
// head-inserting into the new array. Elements that land in the same new bucket
// therefore come out in reverse of their previous relative order. Callers that
// need stable chains across rebuilds can opt in with WithOrderPreservingRehash.
//
// A Set is not safe for concurrent use. Callers sharing one across goroutines
// must serialize access themselves.
package hashset
