package records

// Status values the rules compare against after normalization.
const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

// User is a directory identity record keyed by UserID.
type User struct {
	UserID     string `mapstructure:"user_id"`
	FullName   string `mapstructure:"full_name"`
	Department string `mapstructure:"department"`
	Location   string `mapstructure:"location"`
	BadgeID    string `mapstructure:"badge_id"`
	Status     string `mapstructure:"status"`
	LastDay    string `mapstructure:"last_day"`
}

// IsActive reports whether the user status is ACTIVE.
func (user User) IsActive() bool {
	return user.Status == StatusActive
}

// HasBadge reports whether a badge is on file for the user.
func (user User) HasBadge() bool {
	return len(user.BadgeID) > 0
}

// AccessAssignment links a badge to an access group.
type AccessAssignment struct {
	BadgeID     string `mapstructure:"badge_id"`
	AccessGroup string `mapstructure:"access_group"`
	AssignedBy  string `mapstructure:"assigned_by"`
	AssignedOn  string `mapstructure:"assigned_on"`
}

// Indexable reports whether the assignment names both a badge and a group.
func (assignment AccessAssignment) Indexable() bool {
	return len(assignment.BadgeID) > 0 && len(assignment.AccessGroup) > 0
}

// Device is an inventory record. NamingConventionOK keeps the raw tri-state text.
type Device struct {
	DeviceID           string `mapstructure:"device_id"`
	DeviceType         string `mapstructure:"device_type"`
	Site               string `mapstructure:"site"`
	Location           string `mapstructure:"location"`
	Status             string `mapstructure:"status"`
	IPAddress          string `mapstructure:"ip_address"`
	NamingConventionOK string `mapstructure:"naming_convention_ok"`
}

// IsActive reports whether the device status is ACTIVE.
func (device Device) IsActive() bool {
	return device.Status == StatusActive
}

// Field returns the value of the named inventory column.
func (device Device) Field(fieldName string) string {
	switch fieldName {
	case "device_id":
		return device.DeviceID
	case "device_type":
		return device.DeviceType
	case "site":
		return device.Site
	case "location":
		return device.Location
	case "status":
		return device.Status
	case "ip_address":
		return device.IPAddress
	case "naming_convention_ok":
		return device.NamingConventionOK
	default:
		return ""
	}
}

// Store holds the typed collections of one snapshot.
type Store struct {
	Users       []User
	Assignments []AccessAssignment
	Devices     []Device
}

// NewStore assembles a Store from loaded collections.
func NewStore(users []User, assignments []AccessAssignment, devices []Device) Store {
	return Store{
		Users:       users,
		Assignments: assignments,
		Devices:     devices,
	}
}
