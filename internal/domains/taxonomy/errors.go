package taxonomy

// Stable error codes returned to clients.
const (
	ErrCodeNotFound      = "TAX001" // single row lookup failed
	ErrCodeDuplicateName = "TAX002" // name already taken within the kind
	ErrCodeInUse         = "TAX003" // delete blocked, still referenced by spaces
	ErrCodeMissingRefs   = "TAX004" // one or more referenced ids do not exist
	ErrCodeValidation    = "TAX005" // request payload failed validation
)
