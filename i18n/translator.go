package i18n

import "sync/atomic"

// Translator retrieves localized labels for issue codes.
// data provides optional metadata to embed in the message (for example,
// "kind" or "expected").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "protocol_error":
			return "プロトコルエラー"
		case "producer_error":
			return "シリアライズエラー"
		case "bytes_unsupported":
			return "バイト列は出力できません"
		}
	default: // "en"
		switch code {
		case "protocol_error":
			return "protocol error"
		case "producer_error":
			return "serialization error"
		case "bytes_unsupported":
			return "bytes cannot be exported"
		}
	}
	return code
}

type holder struct{ tr Translator }

var current atomic.Pointer[holder]

func init() { current.Store(&holder{tr: dictTranslator{lang: "en"}}) }

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	current.Store(&holder{tr: dictTranslator{lang: lang}})
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version). nil restores the English dictionary.
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	current.Store(&holder{tr: tr})
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return current.Load().tr.Message(code, data) }
