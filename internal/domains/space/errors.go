package space

// Stable error codes returned to clients.
const (
	ErrCodeNotFound     = "SPC001" // space lookup failed
	ErrCodeForbidden    = "SPC002" // caller is not the author
	ErrCodeSlugConflict = "SPC003" // slug uniqueness lost at commit time
	ErrCodeValidation   = "SPC004" // request payload failed validation
	ErrCodeRelationGone = "SPC005" // referenced record vanished mid-write
	ErrCodeConflict     = "SPC006" // non-slug uniqueness conflict on write
)
