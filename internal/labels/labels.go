package labels

import (
	"fmt"
	"sort"
	"strings"

	"github.com/matheuskafuri/dexterm/internal/config"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Translator turns slugs and category keys into display text for one
// language. Missing translations fall back to the raw key.
type Translator struct {
	tag    language.Tag
	locale config.Locale
	title  cases.Caser
}

// New picks the closest configured locale for lang. An unmatched language
// yields a translator with English defaults.
func New(lang string, locales map[string]config.Locale) (*Translator, error) {
	desired, err := language.Parse(lang)
	if err != nil {
		return nil, fmt.Errorf("invalid language %q: %w", lang, err)
	}

	t := &Translator{tag: desired}
	if len(locales) > 0 {
		keys := make([]string, 0, len(locales))
		for k := range locales {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		tags := make([]language.Tag, 0, len(keys)+1)
		// index 0 is what the matcher falls back to
		tags = append(tags, language.English)
		for _, k := range keys {
			tag, err := language.Parse(k)
			if err != nil {
				return nil, fmt.Errorf("invalid locale %q: %w", k, err)
			}
			tags = append(tags, tag)
		}

		_, idx, conf := language.NewMatcher(tags).Match(desired)
		if idx > 0 && conf != language.No {
			t.locale = locales[keys[idx-1]]
			t.tag = tags[idx]
		}
	}
	t.title = cases.Title(t.tag, cases.NoLower)
	return t, nil
}

// Tag is the matched language.
func (t *Translator) Tag() language.Tag { return t.tag }

// DisplayName turns "mr-mime" into "Mr Mime".
func (t *Translator) DisplayName(slug string) string {
	words := strings.Split(slug, "-")
	for i, w := range words {
		words[i] = t.title.String(w)
	}
	return strings.Join(words, " ")
}

// TypeLabel translates a category key.
func (t *Translator) TypeLabel(key string) string {
	if v, ok := t.locale.Types[key]; ok && v != "" {
		return v
	}
	return key
}

func (t *Translator) Prev() string { return orDefault(t.locale.Prev, "Prev") }

func (t *Translator) Next() string { return orDefault(t.locale.Next, "Next") }

func (t *Translator) Empty() string { return orDefault(t.locale.Empty, "No results found") }

func (t *Translator) SearchPlaceholder() string {
	return orDefault(t.locale.Search, "Search by name...")
}

// Number formats an entity id the way cards show it, e.g. #0004.
func Number(id int) string {
	return fmt.Sprintf("#%04d", id)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
