package rules

import (
	"fmt"
	"sort"
	"strings"

	"github.com/temirov/accessaudit/internal/index"
	"github.com/temirov/accessaudit/internal/records"
)

const (
	userRecordIntegrityRuleName   = "user-record-integrity"
	missingBadgeMessageTemplate   = "%s is ACTIVE but has no badge_id on file"
	duplicateBadgeMessageTemplate = "badge_id=%s assigned to multiple users: %s"
	claimantSeparatorConstant     = ", "
)

// UserRecordIntegrityRule flags ACTIVE users without a badge and badges claimed by several users.
type UserRecordIntegrityRule struct{}

// Name identifies the rule.
func (UserRecordIntegrityRule) Name() string {
	return userRecordIntegrityRuleName
}

// Evaluate emits missing-badge findings ordered by user id, then duplicate-badge findings ordered by badge id.
func (UserRecordIntegrityRule) Evaluate(store records.Store, indices index.Indices) []Finding {
	var findings []Finding

	users := append([]records.User(nil), store.Users...)
	sort.SliceStable(users, func(left int, right int) bool {
		return users[left].UserID < users[right].UserID
	})
	for _, user := range users {
		if !user.IsActive() || user.HasBadge() {
			continue
		}
		findings = append(findings, Finding{
			Category: CategoryActiveUserMissingBadge,
			Subject:  user.UserID,
			Message:  fmt.Sprintf(missingBadgeMessageTemplate, describeUser(user)),
		})
	}

	for _, badgeID := range indices.ClaimedBadges() {
		claimants := indices.UsersByBadge[badgeID]
		if len(claimants) < 2 {
			continue
		}
		descriptions := make([]string, 0, len(claimants))
		for _, claimant := range claimants {
			descriptions = append(descriptions, describeUser(claimant))
		}
		findings = append(findings, Finding{
			Category: CategoryDuplicateBadge,
			Subject:  badgeID,
			Message:  fmt.Sprintf(duplicateBadgeMessageTemplate, badgeID, strings.Join(descriptions, claimantSeparatorConstant)),
		})
	}

	return findings
}
