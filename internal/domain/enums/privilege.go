package enums

// Privilege is the tier the moderation engine resolves a sender into
// before deciding on enforcement.
type Privilege string

const (
	PrivilegeBotAdmin      Privilege = "BOT_ADMIN"
	PrivilegePlatformAdmin Privilege = "PLATFORM_ADMIN"
	PrivilegeRegular       Privilege = "REGULAR"
)

// Exempt reports whether the tier is exempt from mute enforcement.
func (p Privilege) Exempt() bool {
	return p == PrivilegeBotAdmin || p == PrivilegePlatformAdmin
}
