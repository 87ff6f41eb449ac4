package jsonschema

import (
	"log/slog"
	"unicode/utf8"

	"github.com/reoring/jsondoc"
)

// Options configures Generate.
type Options struct {
	// InferFormats emits "format" for string positions whose every observed
	// value shares one known format.
	InferFormats bool
	// InferConstraints emits numeric, length and item-count bounds and
	// small string enums.
	InferConstraints bool
	// MaxEnumValues caps the distinct strings an inferred enum may hold.
	// 0 means 8; a negative value disables enums.
	MaxEnumValues int
	// Title is written to "title" when set.
	Title string
	// Logger receives debug records about inference decisions; nil
	// discards them.
	Logger *slog.Logger
}

const defaultMaxEnumValues = 8

func (o Options) maxEnum() int {
	if o.MaxEnumValues == 0 {
		return defaultMaxEnumValues
	}
	return o.MaxEnumValues
}

// Generate infers a schema describing every sample. Samples are walked
// together by path: types observed at a path form a union, an object key is
// required only when present in every object seen at that path, and array
// items are described by the union of all their elements.
func Generate(opts Options, samples ...*jsondoc.Document) (*jsondoc.Document, error) {
	if len(samples) == 0 {
		return nil, ErrNoSamples
	}
	logger := orDiscard(opts.Logger)
	g := &generator{opts: opts, logger: logger}
	root := &shape{}
	for _, d := range samples {
		if d == nil {
			continue
		}
		g.observe(root, d.Root())
	}

	out := jsondoc.NewObject()
	obj, _ := out.AsObject()
	obj.Set(KeySchema, jsondoc.String(DraftURI))
	if opts.Title != "" {
		obj.Set(KeyTitle, jsondoc.String(opts.Title))
	}
	g.emit(root, obj, "")
	logger.Debug("jsonschema: generated", "samples", len(samples), "observations", root.seen)
	return jsondoc.FromValue(out), nil
}

type generator struct {
	opts   Options
	logger *slog.Logger
}

// shape accumulates what was observed at one path.
type shape struct {
	seen  int
	types []string

	// numbers
	hasNum bool
	lo, hi jsondoc.Value

	// strings
	strs         int
	minLen       int
	maxLen       int
	format       string
	formatMixed  bool
	enumCounts   map[string]int
	enumOrder    []string
	enumOverflow bool

	// objects
	objs     int
	keys     []string
	props    map[string]*shape
	keyCount map[string]int

	// arrays
	arrs     int
	minItems int
	maxItems int
	items    *shape
}

func (s *shape) addType(name string) {
	for _, t := range s.types {
		if t == name {
			return
		}
	}
	s.types = append(s.types, name)
}

func (g *generator) observe(s *shape, v *jsondoc.Value) {
	s.seen++
	s.addType(TypeName(v.Type()))
	switch v.Type() {
	case jsondoc.KindInt, jsondoc.KindDouble:
		g.observeNumber(s, v)
	case jsondoc.KindString:
		str, _ := v.AsString()
		g.observeString(s, str)
	case jsondoc.KindObject:
		s.objs++
		if s.props == nil {
			s.props = make(map[string]*shape)
			s.keyCount = make(map[string]int)
		}
		o, _ := v.AsObject()
		for k, member := range o.All() {
			child, ok := s.props[k]
			if !ok {
				child = &shape{}
				s.props[k] = child
				s.keys = append(s.keys, k)
			}
			s.keyCount[k]++
			g.observe(child, &member)
		}
	case jsondoc.KindArray:
		a, _ := v.AsArray()
		n := a.Len()
		if s.arrs == 0 || n < s.minItems {
			s.minItems = n
		}
		if s.arrs == 0 || n > s.maxItems {
			s.maxItems = n
		}
		s.arrs++
		for _, el := range a.All() {
			if s.items == nil {
				s.items = &shape{}
			}
			g.observe(s.items, &el)
		}
	}
}

func (g *generator) observeNumber(s *shape, v *jsondoc.Value) {
	f, _ := v.AsNumber()
	if !s.hasNum {
		s.hasNum = true
		s.lo, s.hi = v.Clone(), v.Clone()
		return
	}
	if lo, _ := s.lo.AsNumber(); f < lo {
		s.lo = v.Clone()
	}
	if hi, _ := s.hi.AsNumber(); f > hi {
		s.hi = v.Clone()
	}
}

func (g *generator) observeString(s *shape, str string) {
	n := utf8.RuneCountInString(str)
	if s.strs == 0 || n < s.minLen {
		s.minLen = n
	}
	if s.strs == 0 || n > s.maxLen {
		s.maxLen = n
	}

	if g.opts.InferFormats && !s.formatMixed {
		f := DetectFormat(str)
		switch {
		case s.strs == 0:
			s.format = f
		case f != s.format:
			s.format, s.formatMixed = "", true
		}
	}
	s.strs++

	if !g.opts.InferConstraints || s.enumOverflow || g.opts.maxEnum() < 0 {
		return
	}
	if s.enumCounts == nil {
		s.enumCounts = make(map[string]int)
	}
	if _, ok := s.enumCounts[str]; !ok {
		if len(s.enumOrder) == g.opts.maxEnum() {
			s.enumOverflow, s.enumCounts, s.enumOrder = true, nil, nil
			return
		}
		s.enumOrder = append(s.enumOrder, str)
	}
	s.enumCounts[str]++
}

// emit writes the keywords for s into out in a fixed order.
func (g *generator) emit(s *shape, out *jsondoc.Object, at string) {
	types := collapseNumeric(s.types)
	switch len(types) {
	case 0:
	case 1:
		out.Set(KeyType, jsondoc.String(types[0]))
	default:
		arr := make(jsondoc.Array, len(types))
		for i, t := range types {
			arr[i] = jsondoc.String(t)
		}
		out.Set(KeyType, jsondoc.ArrayValue(arr))
	}

	if s.strs > 0 && s.format != "" {
		out.Set(KeyFormat, jsondoc.String(s.format))
	}
	if g.opts.InferConstraints {
		g.emitEnum(s, out, at, types)
		if s.hasNum {
			out.Set(KeyMinimum, s.lo.Clone())
			out.Set(KeyMaximum, s.hi.Clone())
		}
		if s.strs > 0 {
			out.Set(KeyMinLength, jsondoc.Int(int64(s.minLen)))
			out.Set(KeyMaxLength, jsondoc.Int(int64(s.maxLen)))
		}
		if s.arrs > 0 {
			out.Set(KeyMinItems, jsondoc.Int(int64(s.minItems)))
			out.Set(KeyMaxItems, jsondoc.Int(int64(s.maxItems)))
		}
	}

	if s.objs > 0 {
		props := jsondoc.NewObject()
		po, _ := props.AsObject()
		var required jsondoc.Array
		for _, k := range s.keys {
			child := jsondoc.NewObject()
			co, _ := child.AsObject()
			g.emit(s.props[k], co, at+"/"+k)
			po.Set(k, child)
			if s.keyCount[k] == s.objs {
				required = append(required, jsondoc.String(k))
			}
		}
		out.Set(KeyProperties, props)
		if len(required) > 0 {
			out.Set(KeyRequired, jsondoc.ArrayValue(required))
		}
	}

	if s.items != nil {
		items := jsondoc.NewObject()
		itemsObj, _ := items.AsObject()
		g.emit(s.items, itemsObj, at+"/items")
		out.Set(KeyItems, items)
	}
}

func (g *generator) emitEnum(s *shape, out *jsondoc.Object, at string, types []string) {
	if len(types) != 1 || types[0] != TypeString || s.enumOverflow || len(s.enumOrder) == 0 {
		return
	}
	if len(s.enumOrder) >= s.strs {
		g.logger.Debug("jsonschema: enum skipped, no repeated values", "path", at, "distinct", len(s.enumOrder))
		return
	}
	vals := make(jsondoc.Array, len(s.enumOrder))
	for i, str := range s.enumOrder {
		vals[i] = jsondoc.String(str)
	}
	out.Set(KeyEnum, jsondoc.ArrayValue(vals))
}

// collapseNumeric merges integer and number into number, keeping the
// position of whichever was seen first.
func collapseNumeric(types []string) []string {
	hasInt, hasNum := false, false
	for _, t := range types {
		hasInt = hasInt || t == TypeInteger
		hasNum = hasNum || t == TypeNumber
	}
	if !hasInt || !hasNum {
		return types
	}
	out := make([]string, 0, len(types)-1)
	placed := false
	for _, t := range types {
		if t == TypeInteger || t == TypeNumber {
			if placed {
				continue
			}
			t, placed = TypeNumber, true
		}
		out = append(out, t)
	}
	return out
}

func orDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.New(slog.DiscardHandler)
	}
	return l
}
