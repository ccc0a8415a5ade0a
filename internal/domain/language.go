package domain

// Language is a language a vocabulary can be written in
type Language struct {
	Code string
	Name string
}

// Languages lists the languages known to the trainer
var Languages = []Language{
	{Code: "fr", Name: "French"},
	{Code: "en", Name: "English"},
	{Code: "cn", Name: "Chinese"},
	{Code: "de", Name: "German"},
}

// LanguageFromCode returns the language with the given code
func LanguageFromCode(code string) (Language, bool) {
	for _, l := range Languages {
		if l.Code == code {
			return l, true
		}
	}
	return Language{}, false
}

// LanguageName returns a display name for a code, the code itself when unknown
func LanguageName(code string) string {
	if l, ok := LanguageFromCode(code); ok {
		return l.Name
	}
	return code
}
