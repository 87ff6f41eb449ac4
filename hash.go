package jsondoc

import (
	"encoding/binary"
	"math"

	"github.com/pierrec/xxHash/xxHash64"
)

const hashSeed uint64 = 0x6a736f6e646f63

// Hash returns a structural 64-bit hash of v: a pure function of the kind
// and content. Equal values hash equally. Array hashes depend on element
// order; object hashes combine members commutatively, so key order does not
// matter, matching Equal.
func (v *Value) Hash() uint64 {
	switch v.Type() {
	case KindBool:
		if v.b {
			return mix(KindBool, 1)
		}
		return mix(KindBool, 0)
	case KindInt:
		return mix(KindInt, uint64(v.i))
	case KindDouble:
		f := v.f
		switch {
		case f == 0:
			f = 0 // -0 == 0
		case math.IsNaN(f):
			f = math.NaN()
		}
		return mix(KindDouble, math.Float64bits(f))
	case KindString:
		return mix(KindString, xxHash64.Checksum([]byte(v.s), hashSeed))
	case KindArray:
		h := xxHash64.New(hashSeed)
		var b [9]byte
		b[0] = byte(KindArray)
		binary.LittleEndian.PutUint64(b[1:], uint64(len(v.arr)))
		h.Write(b[:])
		for i := range v.arr {
			binary.LittleEndian.PutUint64(b[1:], v.arr[i].Hash())
			h.Write(b[1:])
		}
		return h.Sum64()
	case KindObject:
		var sum uint64
		buf := make([]byte, 0, 64)
		for i, k := range v.obj.keys {
			buf = append(buf[:0], k...)
			buf = binary.LittleEndian.AppendUint64(buf, v.obj.vals[i].Hash())
			sum += xxHash64.Checksum(buf, hashSeed)
		}
		return mix(KindObject, sum^uint64(len(v.obj.keys)))
	default:
		return mix(KindNull, 0)
	}
}

func mix(k Kind, x uint64) uint64 {
	var b [9]byte
	b[0] = byte(k)
	binary.LittleEndian.PutUint64(b[1:], x)
	return xxHash64.Checksum(b[:], hashSeed)
}
