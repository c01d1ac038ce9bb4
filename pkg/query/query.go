// Package query holds helpers for turning query-string input into SQL arguments.
package query

import (
	"strconv"
	"strings"
)

// likeEscaper escapes the LIKE metacharacters using backslash, PostgreSQL's default escape.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// IntSlice parses a slice of string values from URL query parameters
// into a slice of integers. Invalid entries are ignored safely.
func IntSlice(vals []string) []int64 {
	var res []int64
	for _, v := range vals {
		for _, part := range StringSlice(v) {
			if i, err := strconv.ParseInt(part, 10, 64); err == nil {
				res = append(res, i)
			}
		}
	}
	return res
}

// StringSlice parses a single comma-separated query string
// into a trimmed slice of strings.
func StringSlice(val string) []string {
	if val == "" {
		return nil
	}
	var res []string
	for _, v := range strings.Split(val, ",") {
		clean := strings.TrimSpace(v)
		if clean != "" {
			res = append(res, clean)
		}
	}
	return res
}

// EscapeLike escapes user input so it matches literally inside a LIKE pattern.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// LikePrefix builds a "starts with" LIKE pattern from user input.
func LikePrefix(s string) string {
	return EscapeLike(s) + "%"
}

// LikeContains builds a "contains" LIKE pattern from user input.
func LikeContains(s string) string {
	return "%" + EscapeLike(s) + "%"
}

// Placeholder returns the PostgreSQL positional parameter for index n (1-based).
func Placeholder(n int) string {
	return "$" + strconv.Itoa(n)
}
