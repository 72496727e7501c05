package models

// ActivityType is the closed set of activity categories the pipeline
// distinguishes. Devices report many free-text sport labels; MapActivityLabel
// normalizes them into one of these.
type ActivityType string

const (
	TypeRun     ActivityType = "Running"
	TypeWalk    ActivityType = "Walking"
	TypeCycle   ActivityType = "Cycling"
	TypeUnknown ActivityType = "Unknown"
)

// activityLabels maps free-text device sport labels to activity types.
var activityLabels = map[ActivityType][]string{
	TypeRun:   {"Running", "Trailrun", "Run", "Trackrun", "Track"},
	TypeWalk:  {"Walking", "Hike", "Trekking", "Other", "Nordic Walking"},
	TypeCycle: {"Cycling", "Bike", "MTB", "Bicycle", "Biking", "E-Bike", "Gravelbike", "Mountainbike"},
}

// MapActivityLabel normalizes a free-text device label into an ActivityType.
// Unrecognized labels map to TypeUnknown.
func MapActivityLabel(label string) ActivityType {
	for t, names := range activityLabels {
		for _, name := range names {
			if label == name {
				return t
			}
		}
	}
	return TypeUnknown
}

// ParseActivityType validates a normalized category name, e.g. from a query
// parameter. Unlike MapActivityLabel it accepts only the canonical names.
func ParseActivityType(s string) (ActivityType, bool) {
	switch ActivityType(s) {
	case TypeRun, TypeWalk, TypeCycle, TypeUnknown:
		return ActivityType(s), true
	}
	return TypeUnknown, false
}

// AllowedLabels returns the device labels that normalize to the given type.
func AllowedLabels(t ActivityType) []string {
	return activityLabels[t]
}
