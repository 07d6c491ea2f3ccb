package i18n

// Translator retrieves localized messages for error codes. data provides
// optional metadata to embed in the message (for example, "count" or
// "number").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "invalid":
			return "不正な値です"
		case "required":
			return "必須項目です"
		case "wrong_length":
			return data["count"] + "文字で入力してください"
		case "too_short":
			return data["count"] + "文字以上で入力してください"
		case "too_long":
			return data["count"] + "文字以下で入力してください"
		case "equal_to":
			return data["number"] + "と等しい必要があります"
		case "not_equal_to":
			return data["number"] + "と異なる必要があります"
		case "greater_than":
			return data["number"] + "より大きい必要があります"
		case "greater_than_or_equal_to":
			return data["number"] + "以上である必要があります"
		case "less_than":
			return data["number"] + "より小さい必要があります"
		case "less_than_or_equal_to":
			return data["number"] + "以下である必要があります"
		case "inclusion":
			return "不正な値です"
		case "exclusion":
			return "予約されています"
		case "subset":
			return "不正な要素を含んでいます"
		case "format":
			return "形式が不正です"
		case "unknown_key":
			return "未知のキーです"
		}
	default: // "en"
		switch code {
		case "invalid":
			return "is invalid"
		case "required":
			return "can't be blank"
		case "wrong_length":
			return "should be " + data["count"] + " character(s)"
		case "too_short":
			return "should be at least " + data["count"] + " character(s)"
		case "too_long":
			return "should be at most " + data["count"] + " character(s)"
		case "equal_to":
			return "must be equal to " + data["number"]
		case "not_equal_to":
			return "must be not equal to " + data["number"]
		case "greater_than":
			return "must be greater than " + data["number"]
		case "greater_than_or_equal_to":
			return "must be greater than or equal to " + data["number"]
		case "less_than":
			return "must be less than " + data["number"]
		case "less_than_or_equal_to":
			return "must be less than or equal to " + data["number"]
		case "inclusion":
			return "is invalid"
		case "exclusion":
			return "is reserved"
		case "subset":
			return "has an invalid entry"
		case "format":
			return "has invalid format"
		case "unknown_key":
			return "is unknown"
		}
	}
	return code
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
