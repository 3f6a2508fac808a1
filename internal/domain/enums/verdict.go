package enums

// Verdict is the outcome of running one message through the moderation
// pipeline.
type Verdict string

const (
	VerdictNoMatch           Verdict = "NO_MATCH"
	VerdictAdminExempt       Verdict = "ADMIN_EXEMPT"
	VerdictEnforced          Verdict = "ENFORCED"
	VerdictEnforcementFailed Verdict = "ENFORCEMENT_FAILED"
)
