package services

import (
	"context"

	"deliverypro-backend-go/internal/session"
)

const (
	LangArabic = "ar"
	LangFrench = "fr"

	DirRTL = "rtl"
	DirLTR = "ltr"
)

// Locale is the effective language and text direction for one request.
type Locale struct {
	Lang string `json:"lang"`
	Dir  string `json:"dir"`
}

// ResolveLocale applies the legacy language rules: a request override is
// written to the session as-is, then the session value is validated against
// the ar/fr allow-list. Anything else, including regional variants like
// fr-CA, resets both the result and the session to Arabic, the primary
// locale.
func ResolveLocale(ctx context.Context, sessions session.Store, sid, override string) Locale {
	if override != "" {
		_ = sessions.Set(ctx, sid, session.FieldLang, override)
	}
	code, _ := sessions.Get(ctx, sid, session.FieldLang)
	if code == "" {
		code = LangArabic
	}
	lang, ok := normalizeLang(code)
	if !ok {
		lang = LangArabic
		_ = sessions.Set(ctx, sid, session.FieldLang, LangArabic)
	}
	dir := DirLTR
	if lang == LangArabic {
		dir = DirRTL
	}
	return Locale{Lang: lang, Dir: dir}
}

// normalizeLang accepts exactly the two supported codes. No tag parsing: the
// allow-list is the contract, so fr-CA or FR are as unsupported as de.
func normalizeLang(code string) (string, bool) {
	switch code {
	case LangArabic, LangFrench:
		return code, true
	}
	return "", false
}
