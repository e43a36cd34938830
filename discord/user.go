package discord

// User represents a Discord user account.
type User struct {
	ID            Snowflake `json:"id"`
	Username      string    `json:"username"`
	Discriminator string    `json:"discriminator"`
	GlobalName    string    `json:"global_name,omitempty"`
	Avatar        string    `json:"avatar,omitempty"`
	Bot           bool      `json:"bot,omitempty"`
	System        bool      `json:"system,omitempty"`
	Locale        string    `json:"locale,omitempty"`
	Flags         int       `json:"flags,omitempty"`
	PublicFlags   int       `json:"public_flags,omitempty"`
}

// DisplayName returns the name shown for the user in clients.
func (u User) DisplayName() string {
	if u.GlobalName != "" {
		return u.GlobalName
	}
	return u.Username
}

// Tag returns the classic username#discriminator form,
// or the plain username for users migrated off discriminators.
func (u User) Tag() string {
	if u.Discriminator == "" || u.Discriminator == "0" {
		return u.Username
	}
	return u.Username + "#" + u.Discriminator
}
