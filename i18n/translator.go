package i18n

import (
	"slices"
	"strings"
	"sync/atomic"
)

// Translator retrieves localized reasons for message keys.
// data provides optional values substituted into {placeholders} of the
// message (for example "max", "min", "type").
type Translator interface {
	Message(key string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var _dictionaries = map[string]map[string]string{
	"en": {
		"required":               "Value is null or undefined",
		"not_null":               "Value is not null or undefined",
		"not_empty_object":       "Value is not an empty object",
		"not_string":             "Value is not a string",
		"not_boolean":            "Value is not a boolean",
		"not_function":           "Value is not a function",
		"not_number":             "Value is not a number or it is NaN",
		"empty":                  "Value is empty",
		"too_long":               "Value is larger than max-length {max}",
		"pattern":                "Value does not match the regex",
		"not_integer_string":     "Value is not an integer string",
		"not_integer":            "Expected an integer value without decimals",
		"out_of_range":           "Value is not in range (min: {min}, max: {max})",
		"invalid_date":           "Value is not a valid date",
		"invalid_class":          `Value is not of type "{type}"`,
		"invalid_enum":           "Value is not a valid enum value",
		"expected_array":         "Expected value to be an array",
		"expected_object":        "Expected value to be an object",
		"unknown_key":            "The object had more keys than the schema.",
		"schema_optional_target": "An optional type can only be an array or object.",
		"schema_array_length":    "Expected array to be a single element.",
		"schema_empty_object":    "Expected non-empty object.",
		"schema_not_built":       "The schema field was not an object, did you forget to call Build()?",
		"schema_no_type":         `No "type" field present, the field is misconfigured.`,
		"schema_unknown_type":    `Unknown field type "{type}".`,
		"schema_not_field":       "Not a valid schema field.",
	},
	"ja": {
		"required":               "値が null または未定義です",
		"not_null":               "値が null または未定義ではありません",
		"not_empty_object":       "値が空のオブジェクトではありません",
		"not_string":             "値が文字列ではありません",
		"not_boolean":            "値が真偽値ではありません",
		"not_function":           "値が関数ではありません",
		"not_number":             "値が数値ではないか NaN です",
		"empty":                  "値が空です",
		"too_long":               "値が最大長 {max} を超えています",
		"pattern":                "値が正規表現に一致しません",
		"not_integer_string":     "値が整数文字列ではありません",
		"not_integer":            "小数を含まない整数値が必要です",
		"out_of_range":           "値が範囲外です (min: {min}, max: {max})",
		"invalid_date":           "値が有効な日付ではありません",
		"invalid_class":          `値が "{type}" 型ではありません`,
		"invalid_enum":           "値が有効な列挙値ではありません",
		"expected_array":         "値は配列である必要があります",
		"expected_object":        "値はオブジェクトである必要があります",
		"unknown_key":            "オブジェクトにスキーマより多くのキーがあります。",
		"schema_optional_target": "optional は配列またはオブジェクトのみ指定できます。",
		"schema_array_length":    "配列は要素がひとつである必要があります。",
		"schema_empty_object":    "空でないオブジェクトが必要です。",
		"schema_not_built":       "スキーマフィールドがオブジェクトではありません。Build() の呼び出しを忘れていませんか?",
		"schema_no_type":         `"type" フィールドがありません。フィールドの設定が不正です。`,
		"schema_unknown_type":    `不明なフィールド型 "{type}" です。`,
		"schema_not_field":       "有効なスキーマフィールドではありません。",
	},
}

func (t dictTranslator) Message(key string, data map[string]string) string {
	msg, ok := _dictionaries[t.lang][key]
	if !ok {
		msg, ok = _dictionaries["en"][key]
	}
	if !ok {
		return key
	}
	return expand(msg, data)
}

func expand(msg string, data map[string]string) string {
	if len(data) == 0 || !strings.Contains(msg, "{") {
		return msg
	}
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}

// Languages lists the built-in dictionary languages.
func Languages() []string {
	out := make([]string, 0, len(_dictionaries))
	for lang := range _dictionaries {
		out = append(out, lang)
	}
	slices.Sort(out)
	return out
}

var currentTranslator atomic.Pointer[Translator]

func init() { SetLanguage("en") }

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if _, ok := _dictionaries[lang]; !ok {
		lang = "en"
	}
	var tr Translator = dictTranslator{lang: lang}
	currentTranslator.Store(&tr)
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version). A nil Translator restores English.
func SetTranslator(tr Translator) {
	if tr == nil {
		SetLanguage("en")
		return
	}
	currentTranslator.Store(&tr)
}

// T fetches a message for the given key using the current Translator.
func T(key string, data map[string]string) string {
	return (*currentTranslator.Load()).Message(key, data)
}
