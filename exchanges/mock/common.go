package mock

import (
	"net/url"
	"strings"
)

// deltaValues change on every request and are only checked for presence
var deltaValues = map[string]bool{
	"nonce":     true,
	"signature": true,
	"key":       true,
}

// MatchURLVals matches url.Value query strings
func MatchURLVals(v1, v2 url.Values) bool {
	if len(v1) != len(v2) {
		return false
	}

	for key, val := range v1 {
		if deltaValues[key] {
			if _, ok := v2[key]; !ok {
				return false
			}
			continue
		}

		if val2, ok := v2[key]; ok {
			if strings.Join(val2, "") == strings.Join(val, "") {
				continue
			}
		}
		return false
	}
	return true
}
