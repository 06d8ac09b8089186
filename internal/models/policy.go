package models

import "fmt"

// DeletePolicy controls what happens to dependent rows when an artist or
// genre is deleted.
type DeletePolicy string

const (
	// DeleteOrphan removes only the requested row and leaves dependents dangling.
	DeleteOrphan DeletePolicy = "orphan"
	// DeleteCascade removes dependent songs and association rows as well.
	DeleteCascade DeletePolicy = "cascade"
	// DeleteRestrict refuses to delete a row that still has dependents.
	DeleteRestrict DeletePolicy = "restrict"
)

// ParseDeletePolicy validates a configured policy name. An empty name yields DeleteOrphan.
func ParseDeletePolicy(raw string) (DeletePolicy, error) {
	switch p := DeletePolicy(raw); p {
	case "":
		return DeleteOrphan, nil
	case DeleteOrphan, DeleteCascade, DeleteRestrict:
		return p, nil
	default:
		return "", fmt.Errorf("unknown delete policy %q", raw)
	}
}
