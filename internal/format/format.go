// Package format renders byte counts and durations the way the dashboard
// client displays them.
package format

import (
	"math"
	"strconv"
	"strings"
)

var units = []string{"B", "KB", "MB", "GB", "TB", "PB"}

// Bytes formats n with 1024-based units and at most two decimals,
// e.g. 1536 -> "1.5 KB".
func Bytes(n uint64) string {
	if n == 0 {
		return "0 B"
	}
	v := float64(n)
	exp := 0
	for v >= 1024 && exp < len(units)-1 {
		v /= 1024
		exp++
	}
	v = math.Round(v*100) / 100
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + units[exp]
}

// Duration formats whole seconds as days, hours, minutes and seconds,
// omitting leading zero parts, e.g. 90061 -> "1d 1h 1m 1s".
func Duration(seconds float64) string {
	total := int64(seconds)
	if total <= 0 {
		return "0s"
	}

	parts := []struct {
		size   int64
		suffix string
	}{
		{86400, "d"},
		{3600, "h"},
		{60, "m"},
		{1, "s"},
	}

	var out []string
	for _, p := range parts {
		n := total / p.size
		total %= p.size
		if n > 0 || len(out) > 0 {
			out = append(out, strconv.FormatInt(n, 10)+p.suffix)
		}
	}
	return strings.Join(out, " ")
}
