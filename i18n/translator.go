package i18n

import (
	"sort"
	"strings"
	"sync"
)

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "expected" or "min").
type Translator interface {
	Message(code string, data map[string]string) string
}

var messages = map[string]map[string]string{
	"en": {
		"invalid_type":   "invalid type",
		"required":       "required property missing",
		"unknown_key":    "unknown key",
		"duplicate_key":  "duplicate key",
		"duplicate_item": "duplicate array item",
		"too_small":      "too small",
		"too_big":        "too big",
		"too_short":      "too short",
		"too_long":       "too long",
		"too_few":        "too few properties",
		"too_many":       "too many properties",
		"pattern":        "does not match pattern",
		"invalid_enum":   "not one of the allowed values",
		"invalid_const":  "does not equal the constant",
		"invalid_format": "invalid format",
		"not_multiple":   "not a multiple of the divisor",
		"schema_false":   "no value is allowed here",
		"parse_error":    "parse error",
		"truncated":      "truncated",
	},
	"ja": {
		"invalid_type":   "型が不正です",
		"required":       "必須プロパティが不足しています",
		"unknown_key":    "未知のキーです",
		"duplicate_key":  "キーが重複しています",
		"duplicate_item": "配列の要素が重複しています",
		"too_small":      "小さすぎます",
		"too_big":        "大きすぎます",
		"too_short":      "短すぎます",
		"too_long":       "長すぎます",
		"too_few":        "プロパティが少なすぎます",
		"too_many":       "プロパティが多すぎます",
		"pattern":        "パターンに一致しません",
		"invalid_enum":   "許可された値ではありません",
		"invalid_const":  "定数と一致しません",
		"invalid_format": "形式が不正です",
		"not_multiple":   "倍数ではありません",
		"schema_false":   "値は許可されていません",
		"parse_error":    "解析エラー",
		"truncated":      "打ち切られました",
	},
}

// dictTranslator is the built-in dictionary-based Translator. Params are
// appended in key order, e.g. "too short (got=1, min=3)".
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	msg, ok := messages[t.lang][code]
	if !ok {
		msg = code
	}
	if len(data) == 0 {
		return msg
	}
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	b.WriteString(msg)
	b.WriteString(" (")
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(data[k])
	}
	b.WriteByte(')')
	return b.String()
}

// Dictionary returns the built-in Translator for lang ("en" or "ja"; other
// values fall back to "en").
func Dictionary(lang string) Translator {
	if _, ok := messages[lang]; !ok {
		lang = "en"
	}
	return dictTranslator{lang: lang}
}

var (
	mu                sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) { SetTranslator(Dictionary(lang)) }

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version). nil restores English.
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}
