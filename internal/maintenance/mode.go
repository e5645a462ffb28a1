package maintenance

// Mode is fixed for the lifetime of a Gate.
type Mode string

const (
	ModeOff      Mode = "off"
	ModeManualOn Mode = "manual-on"
	ModeAuto     Mode = "auto"
)

// ParseMode maps the MAINTENANCE_MODE flag to a Mode. "yes" forces
// maintenance on, "auto" enables probing, anything else is off. Matching
// is exact: "YES" or " auto" are off.
func ParseMode(flag string) Mode {
	switch flag {
	case "yes":
		return ModeManualOn
	case "auto":
		return ModeAuto
	default:
		return ModeOff
	}
}
