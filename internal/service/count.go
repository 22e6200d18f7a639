package service

import (
	"encoding/json"

	"github.com/tidwall/gjson"
)

const authorLoginPath = "user.login"

// CountByAuthor counts records whose user.login equals login exactly.
// Records without a string login never match.
func CountByAuthor(records []json.RawMessage, login string) int {
	count := 0
	for _, record := range records {
		author := gjson.GetBytes(record, authorLoginPath)
		if author.Type == gjson.String && author.Str == login {
			count++
		}
	}
	return count
}
