package records

import (
	"reflect"
	"strings"

	mapstructure "github.com/go-viper/mapstructure/v2"
)

// LoadUsers decodes user rows. Rows without a user_id are dropped; a repeated
// user_id replaces the earlier record while keeping its position.
func LoadUsers(rows []map[string]string) []User {
	users := make([]User, 0, len(rows))
	positionByUserID := make(map[string]int, len(rows))

	for _, row := range rows {
		var user User
		if decodeError := decodeRow(row, &user); decodeError != nil {
			continue
		}
		user.Status = normalizeStatus(user.Status)
		if len(user.UserID) == 0 {
			continue
		}

		if position, seen := positionByUserID[user.UserID]; seen {
			users[position] = user
			continue
		}
		positionByUserID[user.UserID] = len(users)
		users = append(users, user)
	}

	return users
}

// LoadAssignments decodes access group rows. Incomplete rows are kept; indexing skips them.
func LoadAssignments(rows []map[string]string) []AccessAssignment {
	assignments := make([]AccessAssignment, 0, len(rows))
	for _, row := range rows {
		var assignment AccessAssignment
		if decodeError := decodeRow(row, &assignment); decodeError != nil {
			continue
		}
		assignments = append(assignments, assignment)
	}
	return assignments
}

// LoadDevices decodes device inventory rows without enforcing uniqueness.
func LoadDevices(rows []map[string]string) []Device {
	devices := make([]Device, 0, len(rows))
	for _, row := range rows {
		var device Device
		if decodeError := decodeRow(row, &device); decodeError != nil {
			continue
		}
		device.Status = normalizeStatus(device.Status)
		devices = append(devices, device)
	}
	return devices
}

func normalizeStatus(status string) string {
	return strings.ToUpper(strings.TrimSpace(status))
}

var trimStringHook mapstructure.DecodeHookFuncKind = func(from reflect.Kind, to reflect.Kind, data any) (any, error) {
	if from != reflect.String || to != reflect.String {
		return data, nil
	}
	value, isString := data.(string)
	if !isString {
		return data, nil
	}
	return strings.TrimSpace(value), nil
}

func decodeRow(row map[string]string, target any) error {
	decoder, decoderError := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: trimStringHook,
		Result:     target,
	})
	if decoderError != nil {
		return decoderError
	}
	return decoder.Decode(row)
}
