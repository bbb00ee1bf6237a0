package names

import (
	"github.com/agnivade/levenshtein"
)

// Ratio scores the similarity of two strings on a 0–100 scale, where 100 is
// an exact match. The score is the Levenshtein distance normalized by the
// longer string's rune length.
func Ratio(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 && len(rb) == 0 {
		return 100
	}
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}
	longest := len(ra)
	if len(rb) > longest {
		longest = len(rb)
	}
	dist := levenshtein.ComputeDistance(a, b)
	return (100*(longest-dist) + longest/2) / longest
}

// PartialRatio scores the best alignment of the shorter string against every
// equal-length window of the longer one. A string that appears verbatim as a
// substring of the other scores 100, which makes the score tolerant of
// prefix/suffix differences such as a roster key carrying an extra family
// name token.
func PartialRatio(a, b string) int {
	short, long := []rune(a), []rune(b)
	if len(short) > len(long) {
		short, long = long, short
	}
	if len(short) == 0 {
		if len(long) == 0 {
			return 100
		}
		return 0
	}
	if len(short) == len(long) {
		return Ratio(string(short), string(long))
	}

	best := 0
	for i := 0; i+len(short) <= len(long); i++ {
		score := Ratio(string(short), string(long[i:i+len(short)]))
		if score > best {
			best = score
			if best == 100 {
				break
			}
		}
	}
	return best
}
