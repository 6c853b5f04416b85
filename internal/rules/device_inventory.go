package rules

import (
	"fmt"
	"sort"
	"strings"

	"github.com/temirov/accessaudit/internal/index"
	"github.com/temirov/accessaudit/internal/records"
)

const (
	deviceInventoryRuleName              = "device-inventory"
	deviceMissingFieldMessageTemplate    = "device_id=%s missing field=%s"
	activeDeviceMissingIPMessageTemplate = "%s is ACTIVE but ip_address is blank"
	duplicateIPMessageTemplate           = "ip_address=%s used by devices=%s (possible record error/conflict)"
	namingConventionMessageTemplate      = "%s naming_convention_ok=false (review naming/labeling standard)"
)

// DeviceInventoryRule checks required fields, ACTIVE devices without an IP,
// IP addresses shared by several devices, and naming convention flags.
type DeviceInventoryRule struct{}

// Name identifies the rule.
func (DeviceInventoryRule) Name() string {
	return deviceInventoryRuleName
}

// Evaluate visits devices in ascending device id order; blank ids sort as UNKNOWN.
func (DeviceInventoryRule) Evaluate(store records.Store, indices index.Indices) []Finding {
	var findings []Finding
	requiredFields := RequiredDeviceFields()

	devices := append([]records.Device(nil), store.Devices...)
	sort.SliceStable(devices, func(left int, right int) bool {
		return deviceLabel(devices[left].DeviceID) < deviceLabel(devices[right].DeviceID)
	})

	for _, device := range devices {
		label := deviceLabel(device.DeviceID)

		for _, fieldName := range requiredFields {
			if len(device.Field(fieldName)) > 0 {
				continue
			}
			findings = append(findings, Finding{
				Category: CategoryDeviceMissingField,
				Subject:  label,
				Message:  fmt.Sprintf(deviceMissingFieldMessageTemplate, label, fieldName),
			})
		}

		if device.IsActive() && len(device.IPAddress) == 0 {
			findings = append(findings, Finding{
				Category: CategoryActiveDeviceMissingIP,
				Subject:  label,
				Message:  fmt.Sprintf(activeDeviceMissingIPMessageTemplate, label),
			})
		}

		if violatesNamingConvention(device) {
			findings = append(findings, Finding{
				Category: CategoryNamingConvention,
				Subject:  label,
				Message:  fmt.Sprintf(namingConventionMessageTemplate, label),
			})
		}
	}

	for _, ipAddress := range indices.AddressedIPs() {
		deviceIDs := indices.DevicesByIP[ipAddress]
		if len(deviceIDs) < 2 {
			continue
		}
		labels := make([]string, 0, len(deviceIDs))
		for _, deviceID := range deviceIDs {
			labels = append(labels, deviceLabel(deviceID))
		}
		findings = append(findings, Finding{
			Category: CategoryDuplicateIP,
			Subject:  ipAddress,
			Message:  fmt.Sprintf(duplicateIPMessageTemplate, ipAddress, formatList(labels)),
		})
	}

	return findings
}

func violatesNamingConvention(device records.Device) bool {
	_, violated := namingViolationValues[strings.ToLower(strings.TrimSpace(device.NamingConventionOK))]
	return violated
}
