package rules

import (
	"fmt"
	"sort"
	"strings"

	"github.com/temirov/accessaudit/internal/records"
)

const (
	unknownOwnerConstant    = "UNKNOWN OWNER"
	unknownDeviceConstant   = "UNKNOWN"
	unknownLastDayConstant  = "unknown"
	listOpeningConstant     = "["
	listClosingConstant     = "]"
	listSeparatorConstant   = ", "
	ownerWithStatusTemplate = "%s (%s, status=%s)"
	ownerTemplate           = "%s (%s)"
)

func formatList(values []string) string {
	return listOpeningConstant + strings.Join(values, listSeparatorConstant) + listClosingConstant
}

func sortedCopy(values []string) []string {
	sorted := append([]string(nil), values...)
	sort.Strings(sorted)
	return sorted
}

func describeUser(user records.User) string {
	return fmt.Sprintf(ownerTemplate, user.FullName, user.UserID)
}

func describeOwnerWithStatus(user records.User, found bool) string {
	if !found {
		return unknownOwnerConstant
	}
	return fmt.Sprintf(ownerWithStatusTemplate, user.FullName, user.UserID, user.Status)
}

func describeOwner(user records.User, found bool) string {
	if !found {
		return unknownOwnerConstant
	}
	return describeUser(user)
}

func deviceLabel(deviceID string) string {
	if len(deviceID) == 0 {
		return unknownDeviceConstant
	}
	return deviceID
}
