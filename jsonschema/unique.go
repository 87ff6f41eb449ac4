package jsonschema

import "github.com/reoring/jsondoc"

// duplicate records an array element equal to an earlier one.
type duplicate struct {
	Index int // position of the repeated element
	First int // position of its first occurrence
}

// findDuplicates reports every element equal to an earlier element in
// expected linear time. Elements are bucketed by structural hash and eq
// runs only between members of the same bucket, so distinct elements are
// almost never compared. Buckets hold distinct values only: a repeat is
// matched against its first occurrence and not added again.
//
// collisions counts bucket hits that eq rejected, i.e. distinct values
// sharing a hash.
func findDuplicates(arr jsondoc.Array, eq func(a, b *jsondoc.Value) bool) (dups []duplicate, collisions int) {
	buckets := make(map[uint64][]int, len(arr))
	for i := range arr {
		h := arr[i].Hash()
		bucket := buckets[h]
		first := -1
		for _, j := range bucket {
			if eq(&arr[j], &arr[i]) {
				first = j
				break
			}
		}
		if first >= 0 {
			dups = append(dups, duplicate{Index: i, First: first})
			continue
		}
		if len(bucket) > 0 {
			collisions++
		}
		buckets[h] = append(bucket, i)
	}
	return dups, collisions
}

func structuralEqual(a, b *jsondoc.Value) bool { return a.Equal(b) }
