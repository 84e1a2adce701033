package domain

import (
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

var (
	collatorMu sync.Mutex
	collator   *collate.Collator
)

// CollateEqual reports whether a and b are equal under {locale: en,
// strength: 2} semantics: case and diacritics are ignored, base letters
// are not. This is the same comparison MongoDB applies to the collated
// uniqueness queries, made available to in-process callers.
func CollateEqual(a, b string) bool {
	collatorMu.Lock()
	defer collatorMu.Unlock()
	if collator == nil {
		collator = collate.New(language.English, collate.Loose)
	}
	return collator.CompareString(a, b) == 0
}
