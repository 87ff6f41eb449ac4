package jsondoc

import (
	"fmt"

	"github.com/reoring/jsondoc/internal/path"
)

func parsePath(p string) ([]path.Step, error) {
	steps, err := path.Parse(p)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPath, err)
	}
	return steps, nil
}

// lookup walks steps from root and returns the addressed node, or nil.
func lookup(root *Value, steps []path.Step) *Value {
	cur := root
	for _, s := range steps {
		if cur = child(cur, s); cur == nil {
			return nil
		}
	}
	return cur
}

// child resolves one step without modifying v.
func child(v *Value, s path.Step) *Value {
	switch v.kind {
	case KindObject:
		if s.Kind == path.Key || s.Kind == path.Token {
			return v.obj.Ref(s.Name)
		}
	case KindArray:
		if idx, ok := arrayIndex(s); ok && idx < len(v.arr) {
			return &v.arr[idx]
		}
	}
	return nil
}

// arrayIndex returns the element position addressed by s, if s can address
// array elements at all. Append steps are never found on reads.
func arrayIndex(s path.Step) (int, bool) {
	switch s.Kind {
	case path.Index:
		return s.N, true
	case path.Token:
		return s.N, s.Numeric
	default:
		return 0, false
	}
}

// MaxPadding is the largest number of Null elements a single write may add
// in front of its target when it extends an array.
const MaxPadding = 1 << 20

// planWrite verifies that steps can be materialized under root. Null nodes
// count as absent; any other node of the wrong kind is a conflict. It never
// mutates the tree, which is what makes writes atomic.
func planWrite(root *Value, steps []path.Step) error {
	cur := root
	for i, s := range steps {
		if cur == nil || cur.kind == KindNull {
			return checkPadding(steps, i, 0)
		}
		switch cur.kind {
		case KindObject:
			if s.Kind != path.Key && s.Kind != path.Token {
				return conflict(steps, i, cur.kind)
			}
			cur = cur.obj.Ref(s.Name)
		case KindArray:
			if s.Kind == path.Append {
				return nil
			}
			idx, ok := arrayIndex(s)
			if !ok {
				return conflict(steps, i, cur.kind)
			}
			if idx >= len(cur.arr) {
				return checkPadding(steps, i, len(cur.arr))
			}
			cur = &cur.arr[idx]
		default:
			return conflict(steps, i, cur.kind)
		}
	}
	return nil
}

// checkPadding bounds the array growth of steps[i:], all of which will be
// created. have is the current length of the array addressed by steps[i].
func checkPadding(steps []path.Step, i, have int) error {
	for j := i; j < len(steps); j, have = j+1, 0 {
		if !steps[j].WantsArray() || steps[j].Kind == path.Append {
			continue
		}
		if steps[j].N-have > MaxPadding {
			return fmt.Errorf("%w: index %d at %q exceeds the padding limit of %d",
				ErrInvalidPath, steps[j].N, path.Pointer(steps[:j]), MaxPadding)
		}
	}
	return nil
}

func conflict(steps []path.Step, i int, got Kind) error {
	return fmt.Errorf("%w: %q holds %s, cannot apply step %q",
		ErrPathConflict, path.Pointer(steps[:i]), got, steps[i].String())
}

// materialize creates every missing node along steps and returns the
// destination. planWrite must have accepted steps.
func materialize(root *Value, steps []path.Step) *Value {
	cur := root
	for _, s := range steps {
		if cur.kind == KindNull {
			if s.WantsArray() {
				*cur = Value{kind: KindArray}
			} else {
				*cur = NewObject()
			}
		}
		switch cur.kind {
		case KindObject:
			ref := cur.obj.Ref(s.Name)
			if ref == nil {
				cur.obj.Set(s.Name, Null())
				ref = cur.obj.Ref(s.Name)
			}
			cur = ref
		case KindArray:
			idx := len(cur.arr)
			if s.Kind != path.Append {
				idx = s.N
			}
			if idx >= len(cur.arr) {
				cur.arr = append(cur.arr, make(Array, idx+1-len(cur.arr))...)
			}
			cur = &cur.arr[idx]
		}
	}
	return cur
}

// writeAt stores v at steps, creating intermediates.
func writeAt(root *Value, steps []path.Step, v Value) error {
	if err := planWrite(root, steps); err != nil {
		return err
	}
	*materialize(root, steps) = v
	return nil
}

// updateAt stores v at steps without creating intermediates: the parent
// must exist and be a container matching the last step.
func updateAt(root *Value, steps []path.Step, v Value) error {
	if len(steps) == 0 {
		*root = v
		return nil
	}
	last := steps[len(steps)-1]
	parent := lookup(root, steps[:len(steps)-1])
	if parent == nil || parent.kind == KindNull {
		return fmt.Errorf("%w: parent %q", ErrNotFound, path.Pointer(steps[:len(steps)-1]))
	}
	switch parent.kind {
	case KindObject:
		if last.Kind != path.Key && last.Kind != path.Token {
			return conflict(steps, len(steps)-1, parent.kind)
		}
		parent.obj.Set(last.Name, v)
		return nil
	case KindArray:
		idx := len(parent.arr)
		if last.Kind != path.Append {
			n, ok := arrayIndex(last)
			if !ok {
				return conflict(steps, len(steps)-1, parent.kind)
			}
			idx = n
		}
		switch {
		case idx < len(parent.arr):
			parent.arr[idx] = v
		case idx == len(parent.arr):
			parent.arr = append(parent.arr, v)
		default:
			return fmt.Errorf("%w: index %d beyond length %d at %q",
				ErrNotFound, idx, len(parent.arr), path.Pointer(steps[:len(steps)-1]))
		}
		return nil
	default:
		return conflict(steps, len(steps)-1, parent.kind)
	}
}

// removeAt deletes the node at steps. Array elements after it shift down.
func removeAt(root *Value, steps []path.Step) error {
	if len(steps) == 0 {
		*root = Null()
		return nil
	}
	last := steps[len(steps)-1]
	parent := lookup(root, steps[:len(steps)-1])
	if parent == nil || child(parent, last) == nil {
		return fmt.Errorf("%w: %q", ErrNotFound, path.Pointer(steps))
	}
	switch parent.kind {
	case KindObject:
		parent.obj.Delete(last.Name)
	case KindArray:
		idx, _ := arrayIndex(last)
		parent.arr = append(parent.arr[:idx], parent.arr[idx+1:]...)
	}
	return nil
}
