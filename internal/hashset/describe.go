package hashset

import (
	"fmt"
	"strings"
)

// Describe renders the set as
//
//	[ <elements>, <buckets> | { b<i>: v1 v2 } { b<j>: v1 } ]
//
// with one segment per non-empty bucket in ascending index order and each chain
// listed head to tail. An empty set renders as "[ 0, 10 |  ]" for the default size.
func (s *Set[T]) Describe() string {
	segments := make([]string, 0, s.count)
	for i, head := range s.buckets {
		if head == nil {
			continue
		}
		var seg strings.Builder
		fmt.Fprintf(&seg, "{ b%d:", i)
		for n := head; n != nil; n = n.next {
			fmt.Fprintf(&seg, " %v", n.value)
		}
		seg.WriteString(" }")
		segments = append(segments, seg.String())
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[ %d, %d | ", s.count, len(s.buckets))
	b.WriteString(strings.Join(segments, " "))
	b.WriteString(" ]")
	return b.String()
}

// String implements fmt.Stringer with the Describe format.
func (s *Set[T]) String() string { return s.Describe() }
