package discord

// Guild represents a Discord guild (server).
type Guild struct {
	ID              Snowflake `json:"id"`
	Name            string    `json:"name"`
	Icon            string    `json:"icon,omitempty"`
	Splash          string    `json:"splash,omitempty"`
	OwnerID         Snowflake `json:"owner_id"`
	AFKTimeout      int       `json:"afk_timeout,omitempty"`
	VerificationLvl int       `json:"verification_level"`
	Roles           []Role    `json:"roles,omitempty"`
	Features        []string  `json:"features,omitempty"`
	MemberCount     int       `json:"approximate_member_count,omitempty"`
	Description     string    `json:"description,omitempty"`
	PreferredLocale string    `json:"preferred_locale,omitempty"`
}

// Role represents a guild role.
type Role struct {
	ID          Snowflake `json:"id"`
	Name        string    `json:"name"`
	Color       int       `json:"color"`
	Hoist       bool      `json:"hoist"`
	Position    int       `json:"position"`
	Permissions string    `json:"permissions"`
	Managed     bool      `json:"managed"`
	Mentionable bool      `json:"mentionable"`
}

// RoleCreate holds the fields for creating or editing a role.
type RoleCreate struct {
	Name        string `json:"name,omitempty"`
	Permissions string `json:"permissions,omitempty"`
	Color       int    `json:"color,omitempty"`
	Hoist       bool   `json:"hoist,omitempty"`
	Mentionable bool   `json:"mentionable,omitempty"`
}

// Webhook represents a Discord webhook.
type Webhook struct {
	ID        Snowflake `json:"id"`
	Type      int       `json:"type"`
	GuildID   Snowflake `json:"guild_id,omitempty"`
	ChannelID Snowflake `json:"channel_id,omitempty"`
	User      *User     `json:"user,omitempty"`
	Name      string    `json:"name,omitempty"`
	Avatar    string    `json:"avatar,omitempty"`
	Token     string    `json:"token,omitempty"`
}
