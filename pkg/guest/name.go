package guest

import "strings"

// DisplayName applies the truncation policy to the profile's preferred name.
//
// Length is counted in characters, not bytes, so accented names are not cut
// early. Names within [MaxNameLength] are returned unchanged. Longer group
// names (Family, Friends) keep the first word plus the initial of the second;
// everything else is cut to MaxNameLength characters followed by "...".
func DisplayName(p Profile) string {
	return Truncate(p.PreferredName, p.GuestType)
}

// Truncate is DisplayName for a bare name and guest type.
func Truncate(name string, t Type) string {
	runes := []rune(name)
	if len(runes) <= MaxNameLength {
		return name
	}

	if t.IsGroup() {
		// Single-space split: "A  B" yields an empty second word.
		words := strings.Split(name, " ")
		if len(words) == 1 {
			return words[0]
		}
		return words[0] + " " + initial(words[1]) + "."
	}

	return string(runes[:MaxNameLength]) + "..."
}

func initial(word string) string {
	for _, r := range word {
		return string(r)
	}
	return ""
}
