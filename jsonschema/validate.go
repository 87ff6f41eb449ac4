package jsonschema

import (
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/reoring/jsondoc"
	"github.com/reoring/jsondoc/i18n"
)

// Validator checks documents against one schema. It holds its own copy of
// the schema and is read-only after construction, so a single Validator can
// be shared by goroutines and reused for any number of documents.
//
// Numbers compare differently per keyword. enum and const use JSON number
// equality, so 1 matches 1.0. uniqueItems uses jsondoc.Value.Equal, which
// keeps the int64/double distinction, so [1, 1.0] counts as unique.
type Validator struct {
	schema    *jsondoc.Document
	failFast  bool
	maxIssues int
	tr        i18n.Translator
	logger    *slog.Logger
	patterns  map[string]*regexp.Regexp
}

// ValidatorOption configures a Validator.
type ValidatorOption func(*Validator)

// WithFailFast stops at the first issue.
func WithFailFast(on bool) ValidatorOption { return func(v *Validator) { v.failFast = on } }

// WithMaxIssues stops once n issues were collected; n <= 0 means no limit.
func WithMaxIssues(n int) ValidatorOption { return func(v *Validator) { v.maxIssues = n } }

// WithTranslator localizes issue messages. The default uses the i18n
// package's current translator.
func WithTranslator(tr i18n.Translator) ValidatorOption {
	return func(v *Validator) { v.tr = tr }
}

// WithLogger receives debug records about ignored keywords and hash
// collisions.
func WithLogger(l *slog.Logger) ValidatorOption {
	return func(v *Validator) { v.logger = l }
}

// Result is the outcome of one validation. Failures are data, not errors.
type Result struct {
	Valid  bool
	Issues jsondoc.Issues
}

// NewValidator compiles schema. Malformed keyword values are not errors:
// they are ignored at validation time, as are unknown keywords.
func NewValidator(schema *jsondoc.Document, opts ...ValidatorOption) *Validator {
	v := &Validator{patterns: make(map[string]*regexp.Regexp)}
	if schema != nil {
		v.schema = schema.Clone()
	} else {
		v.schema = jsondoc.New()
	}
	for _, opt := range opts {
		opt(v)
	}
	v.logger = orDiscard(v.logger)
	v.compile(v.schema.Root(), jsondoc.RootPath())
	return v
}

// Schema returns a copy of the schema in use.
func (v *Validator) Schema() *jsondoc.Document { return v.schema.Clone() }

var annotationKeywords = map[string]bool{
	KeySchema: true, KeyTitle: true, "$id": true, "$comment": true,
	"description": true, "default": true, "examples": true,
}

var assertionKeywords = map[string]bool{
	KeyType: true, KeyFormat: true, KeyEnum: true, KeyConst: true,
	KeyProperties: true, KeyRequired: true, KeyAdditionalProperties: true,
	KeyMinProperties: true, KeyMaxProperties: true, KeyItems: true,
	KeyMinItems: true, KeyMaxItems: true, KeyUniqueItems: true,
	KeyMinLength: true, KeyMaxLength: true, KeyPattern: true,
	KeyMinimum: true, KeyMaximum: true, KeyExclusiveMinimum: true,
	KeyExclusiveMaximum: true, KeyMultipleOf: true,
}

// compile walks every subschema once, precompiling patterns and logging
// keywords that will be ignored.
func (v *Validator) compile(schema *jsondoc.Value, at jsondoc.PathRef) {
	so, ok := schema.AsObject()
	if !ok {
		return
	}
	for k, kw := range so.All() {
		switch {
		case k == KeyPattern:
			p, isStr := kw.AsString()
			if !isStr {
				break
			}
			if _, done := v.patterns[p]; done {
				break
			}
			re, err := regexp.Compile(p)
			if err != nil {
				v.logger.Debug("jsonschema: ignoring invalid pattern", "schema", at.Pointer(), "pattern", p, "error", err)
			}
			v.patterns[p] = re
		case k == KeyProperties:
			if props, isObj := kw.AsObject(); isObj {
				for name, sub := range props.All() {
					v.compile(&sub, at.Field(KeyProperties).Field(name))
				}
			}
		case k == KeyItems || k == KeyAdditionalProperties:
			v.compile(&kw, at.Field(k))
		case !assertionKeywords[k] && !annotationKeywords[k]:
			v.logger.Debug("jsonschema: ignoring unknown keyword", "schema", at.Pointer(), "keyword", k)
		}
	}
}

// Validate checks doc. A nil doc is validated as null.
func (v *Validator) Validate(doc *jsondoc.Document) Result {
	inst := &jsondoc.Value{}
	if doc != nil {
		inst = doc.Root()
	}
	r := &run{v: v}
	r.check(v.schema.Root(), inst, jsondoc.RootPath())
	return Result{Valid: len(r.issues) == 0, Issues: r.issues}
}

func (v *Validator) message(code string, params map[string]any) string {
	var data map[string]string
	if len(params) > 0 {
		data = make(map[string]string, len(params))
		for k, p := range params {
			data[k] = fmt.Sprint(p)
		}
	}
	if v.tr != nil {
		return v.tr.Message(code, data)
	}
	return i18n.T(code, data)
}

// run is the state of one Validate call.
type run struct {
	v      *Validator
	issues jsondoc.Issues
	stop   bool
}

func (r *run) report(at jsondoc.PathRef, code, keyword, hint string, kv ...any) {
	if r.stop {
		return
	}
	iss := at.Issue(code, "", kv...)
	iss.Keyword = keyword
	iss.Hint = hint
	iss.Message = r.v.message(code, iss.Params)
	r.issues = jsondoc.AppendIssues(r.issues, iss)
	if r.v.failFast || (r.v.maxIssues > 0 && len(r.issues) >= r.v.maxIssues) {
		r.stop = true
	}
}

func (r *run) check(schema, inst *jsondoc.Value, at jsondoc.PathRef) {
	if r.stop {
		return
	}
	if b, ok := schema.AsBool(); ok {
		if !b {
			r.report(at, jsondoc.CodeSchemaFalse, "", "")
		}
		return
	}
	so, ok := schema.AsObject()
	if !ok {
		return
	}
	r.checkType(so, inst, at)
	r.checkEnum(so, inst, at)
	switch inst.Type() {
	case jsondoc.KindObject:
		r.checkObject(so, inst, at)
	case jsondoc.KindArray:
		r.checkArray(so, inst, at)
	case jsondoc.KindString:
		r.checkString(so, inst, at)
	case jsondoc.KindInt, jsondoc.KindDouble:
		r.checkNumber(so, inst, at)
	}
}

func (r *run) checkType(so *jsondoc.Object, inst *jsondoc.Value, at jsondoc.PathRef) {
	kw := so.Ref(KeyType)
	if kw == nil {
		return
	}
	var names []string
	if s, ok := kw.AsString(); ok {
		names = append(names, s)
	} else if arr, ok := kw.AsArray(); ok {
		for _, el := range arr.All() {
			if s, ok := el.AsString(); ok {
				names = append(names, s)
			}
		}
	}
	if len(names) == 0 {
		return
	}
	for _, n := range names {
		if matchesType(inst, n) {
			return
		}
	}
	expected := strings.Join(names, "|")
	r.report(at, jsondoc.CodeInvalidType, KeyType, "", "expected", expected, "got", TypeName(inst.Type()))
}

func (r *run) checkEnum(so *jsondoc.Object, inst *jsondoc.Value, at jsondoc.PathRef) {
	if kw := so.Ref(KeyEnum); kw != nil {
		if arr, ok := kw.AsArray(); ok {
			found := false
			for i := range *arr {
				if jsonEqual(&(*arr)[i], inst) {
					found = true
					break
				}
			}
			if !found {
				r.report(at, jsondoc.CodeInvalidEnum, KeyEnum, "", "allowed", kw.String())
			}
		}
	}
	if kw := so.Ref(KeyConst); kw != nil && !jsonEqual(kw, inst) {
		r.report(at, jsondoc.CodeInvalidConst, KeyConst, "", "expected", kw.String())
	}
}

func (r *run) checkObject(so *jsondoc.Object, inst *jsondoc.Value, at jsondoc.PathRef) {
	obj, _ := inst.AsObject()
	props, _ := so.Ref(KeyProperties).AsObject()
	if props != nil {
		for k, sub := range props.All() {
			if member := obj.Ref(k); member != nil {
				r.check(&sub, member, at.Field(k))
			}
		}
	}
	if req, ok := so.Ref(KeyRequired).AsArray(); ok {
		for _, el := range req.All() {
			k, isStr := el.AsString()
			if isStr && !obj.Has(k) {
				r.report(at.Field(k), jsondoc.CodeRequired, KeyRequired, "required property missing", "key", k)
			}
		}
	}
	if ap := so.Ref(KeyAdditionalProperties); ap != nil {
		for k, member := range obj.All() {
			if props != nil && props.Has(k) {
				continue
			}
			if allowed, isBool := ap.AsBool(); isBool {
				if !allowed {
					r.report(at.Field(k), jsondoc.CodeUnknownKey, KeyAdditionalProperties, "", "key", k)
				}
				continue
			}
			r.check(ap, &member, at.Field(k))
		}
	}
	n := obj.Len()
	if lim, ok := count(so, KeyMinProperties); ok && n < lim {
		r.report(at, jsondoc.CodeTooFew, KeyMinProperties, "", "min", lim, "got", n)
	}
	if lim, ok := count(so, KeyMaxProperties); ok && n > lim {
		r.report(at, jsondoc.CodeTooMany, KeyMaxProperties, "", "max", lim, "got", n)
	}
}

func (r *run) checkArray(so *jsondoc.Object, inst *jsondoc.Value, at jsondoc.PathRef) {
	arr, _ := inst.AsArray()
	if items := so.Ref(KeyItems); items != nil {
		switch items.Type() {
		case jsondoc.KindObject, jsondoc.KindBool:
			for i := range *arr {
				r.check(items, &(*arr)[i], at.Index(i))
			}
		}
	}
	n := arr.Len()
	if lim, ok := count(so, KeyMinItems); ok && n < lim {
		r.report(at, jsondoc.CodeTooShort, KeyMinItems, "array is shorter than min", "min", lim, "got", n)
	}
	if lim, ok := count(so, KeyMaxItems); ok && n > lim {
		r.report(at, jsondoc.CodeTooLong, KeyMaxItems, "array is longer than max", "max", lim, "got", n)
	}
	if unique, _ := so.Ref(KeyUniqueItems).AsBool(); unique && !r.stop {
		dups, collisions := findDuplicates(*arr, structuralEqual)
		if collisions > 0 {
			r.v.logger.Debug("jsonschema: hash collisions in uniqueItems", "path", at.Pointer(), "collisions", collisions)
		}
		for _, d := range dups {
			r.report(at.Index(d.Index), jsondoc.CodeDuplicateItem, KeyUniqueItems,
				"first at "+at.Index(d.First).Pointer(), "index", d.Index, "first", d.First)
		}
	}
}

func (r *run) checkString(so *jsondoc.Object, inst *jsondoc.Value, at jsondoc.PathRef) {
	s, _ := inst.AsString()
	n := utf8.RuneCountInString(s)
	if lim, ok := count(so, KeyMinLength); ok && n < lim {
		r.report(at, jsondoc.CodeTooShort, KeyMinLength, "", "min", lim, "got", n)
	}
	if lim, ok := count(so, KeyMaxLength); ok && n > lim {
		r.report(at, jsondoc.CodeTooLong, KeyMaxLength, "", "max", lim, "got", n)
	}
	if p, ok := so.Ref(KeyPattern).AsString(); ok {
		if re := r.v.patterns[p]; re != nil && !re.MatchString(s) {
			r.report(at, jsondoc.CodePattern, KeyPattern, "", "pattern", p)
		}
	}
	if f, ok := so.Ref(KeyFormat).AsString(); ok && !CheckFormat(f, s) {
		r.report(at, jsondoc.CodeInvalidFormat, KeyFormat, "", "format", f)
	}
}

func (r *run) checkNumber(so *jsondoc.Object, inst *jsondoc.Value, at jsondoc.PathRef) {
	x, _ := inst.AsNumber()
	if m, ok := so.Ref(KeyMinimum).AsNumber(); ok && x < m {
		r.report(at, jsondoc.CodeTooSmall, KeyMinimum, "", "min", m, "got", x)
	}
	if m, ok := so.Ref(KeyMaximum).AsNumber(); ok && x > m {
		r.report(at, jsondoc.CodeTooBig, KeyMaximum, "", "max", m, "got", x)
	}
	if m, ok := so.Ref(KeyExclusiveMinimum).AsNumber(); ok && x <= m {
		r.report(at, jsondoc.CodeTooSmall, KeyExclusiveMinimum, "", "min", m, "got", x)
	}
	if m, ok := so.Ref(KeyExclusiveMaximum).AsNumber(); ok && x >= m {
		r.report(at, jsondoc.CodeTooBig, KeyExclusiveMaximum, "", "max", m, "got", x)
	}
	if kw := so.Ref(KeyMultipleOf); kw != nil && !isMultiple(inst, kw) {
		r.report(at, jsondoc.CodeNotMultiple, KeyMultipleOf, "", "multipleOf", kw.String())
	}
}

// isMultiple reports whether x is a multiple of m. Non-positive or
// non-numeric divisors are ignored.
func isMultiple(x, m *jsondoc.Value) bool {
	if xi, ok := x.AsInt(); ok {
		if mi, ok := m.AsInt(); ok {
			return mi <= 0 || xi%mi == 0
		}
	}
	xf, _ := x.AsNumber()
	mf, ok := m.AsNumber()
	if !ok || mf <= 0 {
		return true
	}
	q := xf / mf
	return math.Abs(q-math.Round(q)) <= 1e-9*math.Max(1, math.Abs(q))
}

// count reads a non-negative integer keyword.
func count(so *jsondoc.Object, key string) (int, bool) {
	n, ok := jsondoc.As[int64](so.Ref(key))
	if !ok || n < 0 {
		return 0, false
	}
	return int(n), true
}

// jsonEqual is structural equality where numbers compare by value, so 1
// matches 1.0 in enum and const.
func jsonEqual(a, b *jsondoc.Value) bool {
	if a.Type().IsNumber() && b.Type().IsNumber() {
		if ai, ok := a.AsInt(); ok {
			if bi, ok := b.AsInt(); ok {
				return ai == bi
			}
		}
		af, _ := a.AsNumber()
		bf, _ := b.AsNumber()
		return af == bf
	}
	if a.Type() != b.Type() {
		return false
	}
	switch a.Type() {
	case jsondoc.KindArray:
		aa, _ := a.AsArray()
		ba, _ := b.AsArray()
		if aa.Len() != ba.Len() {
			return false
		}
		for i := range *aa {
			if !jsonEqual(&(*aa)[i], &(*ba)[i]) {
				return false
			}
		}
		return true
	case jsondoc.KindObject:
		ao, _ := a.AsObject()
		bo, _ := b.AsObject()
		if ao.Len() != bo.Len() {
			return false
		}
		for k, av := range ao.All() {
			bv := bo.Ref(k)
			if bv == nil || !jsonEqual(&av, bv) {
				return false
			}
		}
		return true
	default:
		return a.Equal(b)
	}
}
