package discord

// ChannelType identifies the kind of a channel.
type ChannelType int

const (
	ChannelTypeGuildText     ChannelType = 0
	ChannelTypeDM            ChannelType = 1
	ChannelTypeGuildVoice    ChannelType = 2
	ChannelTypeGroupDM       ChannelType = 3
	ChannelTypeGuildCategory ChannelType = 4
	ChannelTypeGuildNews     ChannelType = 5
	ChannelTypeNewsThread    ChannelType = 10
	ChannelTypePublicThread  ChannelType = 11
	ChannelTypePrivateThread ChannelType = 12
	ChannelTypeGuildForum    ChannelType = 15
)

// Channel represents a guild or DM channel.
type Channel struct {
	ID               Snowflake   `json:"id"`
	Type             ChannelType `json:"type"`
	GuildID          Snowflake   `json:"guild_id,omitempty"`
	Position         int         `json:"position,omitempty"`
	Name             string      `json:"name,omitempty"`
	Topic            string      `json:"topic,omitempty"`
	NSFW             bool        `json:"nsfw,omitempty"`
	LastMessageID    Snowflake   `json:"last_message_id,omitempty"`
	RateLimitPerUser int         `json:"rate_limit_per_user,omitempty"`
	ParentID         Snowflake   `json:"parent_id,omitempty"`
	Recipients       []User      `json:"recipients,omitempty"`
}

// IsThread reports whether the channel is a thread.
func (c Channel) IsThread() bool {
	switch c.Type {
	case ChannelTypeNewsThread, ChannelTypePublicThread, ChannelTypePrivateThread:
		return true
	}
	return false
}

// ChannelEdit holds the fields that can be changed on a channel.
// Nil fields are left untouched.
type ChannelEdit struct {
	Name             *string    `json:"name,omitempty"`
	Topic            *string    `json:"topic,omitempty"`
	NSFW             *bool      `json:"nsfw,omitempty"`
	Position         *int       `json:"position,omitempty"`
	RateLimitPerUser *int       `json:"rate_limit_per_user,omitempty"`
	ParentID         *Snowflake `json:"parent_id,omitempty"`
}
