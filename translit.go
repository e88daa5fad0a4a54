package main

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Georgian (mkhedruli) to Latin phonetic mapping. Unmapped runes pass
// through unchanged.
var georgianToLatin = map[rune]string{
	'ა': "a",
	'ბ': "b",
	'გ': "g",
	'დ': "d",
	'ე': "e",
	'ვ': "v",
	'ზ': "z",
	'თ': "t",
	'ი': "i",
	'კ': "k",
	'ლ': "l",
	'მ': "m",
	'ნ': "n",
	'ო': "o",
	'პ': "p",
	'ჟ': "zh",
	'რ': "r",
	'ს': "s",
	'ტ': "t",
	'უ': "u",
	'ფ': "p",
	'ქ': "k",
	'ღ': "gh",
	'ყ': "q",
	'შ': "sh",
	'ჩ': "ch",
	'ც': "ts",
	'ძ': "dz",
	'წ': "ts",
	'ჭ': "tch",
	'ხ': "kh",
	'ჯ': "j",
	'ჰ': "h",
}

func transliterate(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if latin, ok := georgianToLatin[r]; ok {
			b.WriteString(latin)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// transliterateAndTitle converts a Georgian-script name to a Latin one and
// title-cases each word.
func transliterateAndTitle(s string) string {
	return cases.Title(language.Und).String(strings.ToLower(transliterate(s)))
}
