package asynctest

import (
	"fmt"
	"strings"
)

// describe renders a stable identity for the computation so that messages
// about the same object are recognizably about the same object.
func describe(c Awaitable) string {
	return fmt.Sprintf("%T(%p)", c, c)
}

// kindList enumerates expected error kinds, joined with "or" when there is
// more than one, so the reader sees every kind that would have been accepted.
func kindList(kinds []error) string {
	parts := make([]string, len(kinds))
	for i, k := range kinds {
		parts[i] = fmt.Sprintf("%q", k.Error())
	}
	return strings.Join(parts, " or ")
}
