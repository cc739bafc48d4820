package util

import (
	"fmt"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

func GenerateNChar(n int) (string, error) {
	id, err := gonanoid.New(n)
	if err != nil {
		return "", err
	}
	return id, nil
}

// NewPrefixedID builds collision-resistant IDs for entries that live inside
// JSON documents (catalogue entries, annotations, attachments) rather than in
// their own table. Example output for prefix "reg": "reg-1709290454301-Ab3dE9kQz".
func NewPrefixedID(prefix string) string {
	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().UnixMilli(), gonanoid.Must(9))
}
