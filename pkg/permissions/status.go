package permissions

// Status is a permission state reported by the platform.
type Status string

// Statuses reported by the native permission subsystem. Anything else is
// treated as unrecognized.
const (
	// Unavailable means the feature does not exist on this device.
	Unavailable Status = "unavailable"
	// Denied means the user has not granted the permission but it can
	// still be requested.
	Denied Status = "denied"
	// Limited means partial access, e.g. a subset of the photo library.
	Limited Status = "limited"
	// Granted means full access.
	Granted Status = "granted"
	// Blocked means the permission can no longer be requested; the user
	// has to change it in Settings.
	Blocked Status = "blocked"
)

// Known reports whether s is one of the five reported statuses.
func (s Status) Known() bool {
	switch s {
	case Unavailable, Denied, Limited, Granted, Blocked:
		return true
	default:
		return false
	}
}

// Outcome is the result of classifying a Status for a check.
type Outcome int

const (
	// OutcomeNone means the status was unrecognized; no callback fires.
	OutcomeNone Outcome = iota
	OutcomeGranted
	OutcomeDenied
	// OutcomePreviouslyDenied means the permission was denied before but can
	// be requested again.
	OutcomePreviouslyDenied
)

func (o Outcome) String() string {
	switch o {
	case OutcomeGranted:
		return "granted"
	case OutcomeDenied:
		return "denied"
	case OutcomePreviouslyDenied:
		return "previously_denied"
	default:
		return "none"
	}
}

// Classify maps a status to the outcome a check delivers.
func Classify(s Status) Outcome {
	switch s {
	case Unavailable, Blocked:
		return OutcomeDenied
	case Denied:
		return OutcomePreviouslyDenied
	case Limited, Granted:
		return OutcomeGranted
	default:
		return OutcomeNone
	}
}

// DetermineStatus reports whether s grants access. Limited counts as
// granted; unrecognized values are false.
func DetermineStatus(s Status) bool {
	switch s {
	case Limited, Granted:
		return true
	default:
		return false
	}
}
