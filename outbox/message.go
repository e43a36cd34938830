package outbox

import (
	"encoding/json"
	"time"

	"github.com/arenborg/discordrest/discord"
	"github.com/arenborg/discordrest/rest"
)

// Message is a queued Discord message. Only fields that serialize cleanly
// are carried; file attachments can not be queued.
type Message struct {
	ChannelID       discord.Snowflake         `json:"channel_id"`
	Content         string                    `json:"content,omitempty"`
	Embeds          []discord.Embed           `json:"embeds,omitempty"`
	TTS             bool                      `json:"tts,omitempty"`
	AllowedMentions *discord.AllowedMentions  `json:"allowed_mentions,omitempty"`
	Reference       *discord.MessageReference `json:"message_reference,omitempty"`
	QueuedAt        time.Time                 `json:"queued_at"`
	Attempts        int                       `json:"attempts,omitempty"`
}

// Params converts the queued message into send parameters.
func (m Message) Params() rest.MessageParams {
	return rest.MessageParams{
		Content:         m.Content,
		Embeds:          m.Embeds,
		TTS:             m.TTS,
		AllowedMentions: m.AllowedMentions,
		Reference:       m.Reference,
	}
}

// MarshalBytes serializes the message for storage in a queue.
func (m Message) MarshalBytes() ([]byte, error) {
	return json.Marshal(m)
}

// UnmarshalMessage deserializes a message read from a queue.
func UnmarshalMessage(v []byte) (Message, error) {
	var m Message
	err := json.Unmarshal(v, &m)
	return m, err
}
