package domain

import "strings"

// ResolveOrgID derives the organization id from a composite user id: the
// segment immediately after the first underscore, or the whole id when no
// delimiter is present. "HYLA35_ORG12" resolves to "ORG12"; "GUEST7"
// resolves to "GUEST7". Visibility, quota, and link creation all depend on
// this exact rule, so it lives here and nowhere else.
func ResolveOrgID(userID string) string {
	parts := strings.Split(userID, "_")
	if len(parts) > 1 {
		return parts[1]
	}
	return parts[0]
}
