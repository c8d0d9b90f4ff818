package reldate

import (
	"os"
	"strings"
)

// EnvLanguage overrides every other language source when set
const EnvLanguage = "RELDATE_LANG"

// ResolveLanguage determines the caller's current language.
// Priority: RELDATE_LANG > configured > LC_ALL > LC_MESSAGES > LANG > "en"
func ResolveLanguage(configured string) string {
	if v := normalizeLanguage(os.Getenv(EnvLanguage)); v != "" {
		return v
	}
	if v := normalizeLanguage(configured); v != "" {
		return v
	}
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := posixLanguage(os.Getenv(key)); v != "" {
			return v
		}
	}
	return "en"
}

// posixLanguage converts a POSIX locale such as "pt_BR.UTF-8" to "pt-br".
// The C and POSIX locales carry no language and map to English.
func posixLanguage(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	if value == "C" || value == "POSIX" || strings.HasPrefix(value, "C.") {
		return "en"
	}
	return normalizeLanguage(value)
}
