package jsondoc

// Merge deep-merges other into d.
//
// For every key of other: when both sides hold objects they are merged
// recursively; when both hold arrays and overwriteArrays is false, other's
// elements are appended; in every other case other's value replaces d's.
// Keys only present in d are kept. Merging a null other is a no-op.
func (d *Document) Merge(other *Document, overwriteArrays bool) {
	if other == nil || other.root.kind == KindNull {
		return
	}
	mergeInto(&d.root, &other.root, overwriteArrays)
}

// MergeValue merges src into dst with the same rules as Document.Merge.
func MergeValue(dst *Value, src *Value, overwriteArrays bool) {
	if src == nil || src.kind == KindNull {
		return
	}
	mergeInto(dst, src, overwriteArrays)
}

func mergeInto(dst, src *Value, overwriteArrays bool) {
	switch {
	case dst.kind == KindObject && src.kind == KindObject:
		for i, k := range src.obj.keys {
			sv := &src.obj.vals[i]
			if dv := dst.obj.Ref(k); dv != nil {
				mergeInto(dv, sv, overwriteArrays)
				continue
			}
			dst.obj.Set(k, sv.Clone())
		}
	case dst.kind == KindArray && src.kind == KindArray && !overwriteArrays:
		for i := range src.arr {
			dst.arr = append(dst.arr, src.arr[i].Clone())
		}
	default:
		*dst = src.Clone()
	}
}
