package credential

// EmergencyFields is the exact set a first responder sees: identity plus
// what keeps a patient alive, nothing else. No conditions, no history, no
// contact info.
func EmergencyFields() []string {
	return []string{"id", "name", "age", "avatar", "allergies", "medications", "qrCode", "lastVisit"}
}

// AllowedFields is the access policy: total over the three levels, no
// failure modes. all=true means no field is withheld; time-limited
// restricts time, not fields, so it shares the full view.
func AllowedFields(level AccessLevel) (fields []string, all bool) {
	if level == AccessEmergency {
		return EmergencyFields(), false
	}
	return nil, true
}
