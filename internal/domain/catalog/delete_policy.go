package catalog

import (
	"fmt"
	"strings"
)

// DeletePolicy decides what happens to the children of a deleted category
type DeletePolicy string

const (
	// DeletePolicyRefuse rejects deleting a category that still has children
	DeletePolicyRefuse DeletePolicy = "refuse"
	// DeletePolicyReparent moves the children up to the deleted category's parent
	DeletePolicyReparent DeletePolicy = "reparent"
	// DeletePolicyCascade removes the whole subtree
	DeletePolicyCascade DeletePolicy = "cascade"
)

// ParseDeletePolicy parses a configured policy name; empty means refuse
func ParseDeletePolicy(s string) (DeletePolicy, error) {
	switch DeletePolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", DeletePolicyRefuse:
		return DeletePolicyRefuse, nil
	case DeletePolicyReparent:
		return DeletePolicyReparent, nil
	case DeletePolicyCascade:
		return DeletePolicyCascade, nil
	default:
		return "", fmt.Errorf("unknown category delete policy %q", s)
	}
}
