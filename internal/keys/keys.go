package keys

import (
	"strconv"
	"strings"
)

// BattleTopic produces the canonical pub/sub topic name for a battle,
// derived from its join code. Behavior: trims, upper-cases and prefixes
// with "battle:" so topic names are stable regardless of caller casing.
func BattleTopic(joinCode string) string {
	return "battle:" + strings.ToUpper(strings.TrimSpace(joinCode))
}

// ResolveKey produces the singleflight key used to collapse concurrent
// resolution attempts for one battle.
func ResolveKey(battleID uint) string {
	return "resolve:" + strconv.FormatUint(uint64(battleID), 10)
}
