// Package constraint extracts a maximum-duration limit from natural
// language query text.
package constraint

import (
	"regexp"
	"strconv"
	"strings"
)

// rule pairs a unit pattern with its minute multiplier. Rules are
// evaluated in declaration order and the first rule with any match
// wins, so a minute phrase beats an hour phrase even when the hour
// phrase appears earlier in the text: "1 hour 20 minutes" means a
// 20 minute limit.
type rule struct {
	re         *regexp.Regexp
	multiplier int
}

var rules = []rule{
	{regexp.MustCompile(`(\d+)\s*(?:minutes|minute|mins|min)`), 1},
	{regexp.MustCompile(`(\d+|\ban)\s*(?:hours|hour|hrs|hr)`), 60},
}

// MaxDuration is an optional upper bound on assessment length, in minutes.
type MaxDuration struct {
	minutes int
	ok      bool
}

// None reports no constraint.
func None() MaxDuration { return MaxDuration{} }

// Limit creates an explicit constraint.
func Limit(minutes int) MaxDuration { return MaxDuration{minutes: minutes, ok: true} }

// Minutes returns the limit. Only meaningful when Exists.
func (d MaxDuration) Minutes() int { return d.minutes }

// Exists reports whether a constraint was found.
func (d MaxDuration) Exists() bool { return d.ok }

// Allows reports whether an item of the given length passes the
// constraint. With no constraint (or a zero limit) everything passes;
// a zero item duration always passes.
func (d MaxDuration) Allows(itemMinutes int) bool {
	if !d.ok || d.minutes == 0 {
		return true
	}
	return itemMinutes <= d.minutes
}

// Extract scans text for the first number followed by a time unit.
// The text is lowercased before matching. Only whole numbers are
// recognized, no fractional durations, and "an hour" counts as one
// hour.
func Extract(text string) MaxDuration {
	lowered := strings.ToLower(text)
	for _, r := range rules {
		m := r.re.FindStringSubmatch(lowered)
		if m == nil {
			continue
		}
		// "an hour" reads as one hour.
		if m[1] == "an" {
			return Limit(r.multiplier)
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		return Limit(n * r.multiplier)
	}
	return None()
}
