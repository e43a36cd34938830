package discord

// MessageFlags is the bitfield of flags on a message.
type MessageFlags int

const (
	FlagCrossposted          MessageFlags = 1 << 0
	FlagIsCrosspost          MessageFlags = 1 << 1
	FlagSuppressEmbeds       MessageFlags = 1 << 2
	FlagSourceMessageDeleted MessageFlags = 1 << 3
	FlagUrgent               MessageFlags = 1 << 4
	FlagHasThread            MessageFlags = 1 << 5
	FlagEphemeral            MessageFlags = 1 << 6
	FlagLoading              MessageFlags = 1 << 7
	FlagSuppressNotification MessageFlags = 1 << 12
)

// Has reports whether all given flags are set.
func (f MessageFlags) Has(flags MessageFlags) bool {
	return f&flags == flags
}

// Message represents a message posted in a Discord channel.
type Message struct {
	ID              Snowflake    `json:"id"`
	ChannelID       Snowflake    `json:"channel_id"`
	GuildID         Snowflake    `json:"guild_id,omitempty"`
	Author          *User        `json:"author,omitempty"`
	Content         string       `json:"content"`
	Timestamp       string       `json:"timestamp,omitempty"`
	EditedTimestamp string       `json:"edited_timestamp,omitempty"`
	TTS             bool         `json:"tts"`
	MentionEveryone bool         `json:"mention_everyone"`
	Mentions        []User       `json:"mentions,omitempty"`
	Attachments     []Attachment `json:"attachments,omitempty"`
	Embeds          []Embed      `json:"embeds,omitempty"`
	Components      []ActionRow  `json:"components,omitempty"`
	Pinned          bool         `json:"pinned"`
	WebhookID       Snowflake    `json:"webhook_id,omitempty"`
	Type            int          `json:"type"`
	Flags           MessageFlags `json:"flags,omitempty"`
	Reference       *MessageReference `json:"message_reference,omitempty"`
}

// Attachment represents a file attached to a message.
type Attachment struct {
	ID          Snowflake `json:"id"`
	Filename    string    `json:"filename"`
	Description string    `json:"description,omitempty"`
	ContentType string    `json:"content_type,omitempty"`
	Size        int       `json:"size"`
	URL         string    `json:"url"`
	ProxyURL    string    `json:"proxy_url"`
	Height      int       `json:"height,omitempty"`
	Width       int       `json:"width,omitempty"`
}

// MessageReference points at the message being replied to or crossposted.
type MessageReference struct {
	MessageID       Snowflake `json:"message_id,omitempty"`
	ChannelID       Snowflake `json:"channel_id,omitempty"`
	GuildID         Snowflake `json:"guild_id,omitempty"`
	FailIfNotExists *bool     `json:"fail_if_not_exists,omitempty"`
}

// AllowedMentions controls which mentions in a message content will ping.
type AllowedMentions struct {
	Parse       []string    `json:"parse"`
	Roles       []Snowflake `json:"roles,omitempty"`
	Users       []Snowflake `json:"users,omitempty"`
	RepliedUser bool        `json:"replied_user,omitempty"`
}
