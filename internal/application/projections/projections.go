// Package projections holds read-side queries that join store data into
// response shapes. Projections never write.
package projections

import "strings"

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
