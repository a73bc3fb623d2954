package entity

// Language is an ISO 639-1 code from the fixed supported set.
type Language string

// Supported language codes. English is the base language: it is the only
// language articles are generated in, every other code is a translation target.
const (
	LangEnglish    Language = "en"
	LangSpanish    Language = "es"
	LangFrench     Language = "fr"
	LangGerman     Language = "de"
	LangPortuguese Language = "pt"
	LangItalian    Language = "it"
	LangDutch      Language = "nl"
	LangRussian    Language = "ru"
	LangJapanese   Language = "ja"
	LangChinese    Language = "zh"
	LangKorean     Language = "ko"
	LangArabic     Language = "ar"
)

// BaseLanguage is the original language of generated articles.
const BaseLanguage = LangEnglish

// supportedLanguages is the fixed, ordered set of supported codes.
var supportedLanguages = []Language{
	LangEnglish, LangSpanish, LangFrench, LangGerman,
	LangPortuguese, LangItalian, LangDutch, LangRussian,
	LangJapanese, LangChinese, LangKorean, LangArabic,
}

// languageNames maps codes to English display names, used in translation prompts.
var languageNames = map[Language]string{
	LangEnglish:    "English",
	LangSpanish:    "Spanish",
	LangFrench:     "French",
	LangGerman:     "German",
	LangPortuguese: "Portuguese",
	LangItalian:    "Italian",
	LangDutch:      "Dutch",
	LangRussian:    "Russian",
	LangJapanese:   "Japanese",
	LangChinese:    "Chinese",
	LangKorean:     "Korean",
	LangArabic:     "Arabic",
}

// SupportedLanguages returns the full supported code set in canonical order.
// The returned slice is a copy and safe to modify.
func SupportedLanguages() []Language {
	out := make([]Language, len(supportedLanguages))
	copy(out, supportedLanguages)
	return out
}

// TranslationTargets returns every supported language except the base language.
func TranslationTargets() []Language {
	targets := make([]Language, 0, len(supportedLanguages)-1)
	for _, lang := range supportedLanguages {
		if lang != BaseLanguage {
			targets = append(targets, lang)
		}
	}
	return targets
}

// IsSupportedLanguage reports whether code is in the supported set.
func IsSupportedLanguage(code string) bool {
	for _, lang := range supportedLanguages {
		if string(lang) == code {
			return true
		}
	}
	return false
}

// Name returns the English display name of the language, or the code itself
// if the language is unknown.
func (l Language) Name() string {
	if name, ok := languageNames[l]; ok {
		return name
	}
	return string(l)
}
