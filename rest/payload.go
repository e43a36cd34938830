package rest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"

	"github.com/arenborg/discordrest/discord"
)

// File is an attachment to be uploaded with a message.
//
// The file content is buffered in memory when the file is created, so that
// retried requests can re-send the bytes without the caller supplying them
// again.
type File struct {
	Name        string
	ContentType string
	data        []byte
}

// NewFile reads r fully and returns a file with the given name.
func NewFile(name string, r io.Reader) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", name, err)
	}
	return &File{Name: name, data: data}, nil
}

// NewFileBytes returns a file wrapping the given bytes.
func NewFileBytes(name string, data []byte) *File {
	return &File{Name: name, data: data}
}

// Size returns the size of the buffered content in bytes.
func (f *File) Size() int {
	return len(f.data)
}

// MessageParams holds everything a message send or edit can carry.
// The zero value is an empty message.
type MessageParams struct {
	Content         string
	TTS             bool
	Nonce           string
	Flags           discord.MessageFlags
	Embeds          []discord.Embed
	Components      []discord.ActionRow
	Files           []*File
	AllowedMentions *discord.AllowedMentions
	Reference       *discord.MessageReference
	StickerIDs      []discord.Snowflake

	// Webhook execution only.
	Username  string
	AvatarURL string
	// Forum channel webhooks only.
	ThreadName string
}

// messageBody is the JSON shape of a message payload on the wire.
type messageBody struct {
	Content         string                    `json:"content,omitempty"`
	TTS             bool                      `json:"tts"`
	Nonce           string                    `json:"nonce,omitempty"`
	Flags           discord.MessageFlags      `json:"flags,omitempty"`
	Embeds          []discord.Embed           `json:"embeds,omitempty"`
	Components      []discord.ActionRow       `json:"components,omitempty"`
	AllowedMentions *discord.AllowedMentions  `json:"allowed_mentions,omitempty"`
	Reference       *discord.MessageReference `json:"message_reference,omitempty"`
	StickerIDs      []discord.Snowflake       `json:"sticker_ids,omitempty"`
	Attachments     []attachmentRef           `json:"attachments,omitempty"`
	Username        string                    `json:"username,omitempty"`
	AvatarURL       string                    `json:"avatar_url,omitempty"`
	ThreadName      string                    `json:"thread_name,omitempty"`
}

// attachmentRef binds an attachment entry in the JSON payload to its
// files[N] multipart part by index.
type attachmentRef struct {
	ID          int    `json:"id"`
	Filename    string `json:"filename"`
	Description string `json:"description,omitempty"`
}

// Payload is an encoded request body, either pure JSON or a multipart form
// with a payload_json part followed by one part per file.
type Payload struct {
	json  []byte
	files []*File
}

// Build validates the parameters and encodes them into a request payload.
// Limit violations are reported before any network call is made.
func (p MessageParams) Build() (*Payload, error) {
	body, err := p.body()
	if err != nil {
		return nil, err
	}
	dat, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	return &Payload{json: dat, files: p.Files}, nil
}

// BuildInteractionResponse encodes the parameters as an interaction callback
// of the given type, wrapping the message payload in {type, data}.
func (p MessageParams) BuildInteractionResponse(callbackType int) (*Payload, error) {
	body, err := p.body()
	if err != nil {
		return nil, err
	}
	wrapper := struct {
		Type int         `json:"type"`
		Data messageBody `json:"data"`
	}{Type: callbackType, Data: body}
	dat, err := json.Marshal(wrapper)
	if err != nil {
		return nil, err
	}
	return &Payload{json: dat, files: p.Files}, nil
}

func (p MessageParams) body() (messageBody, error) {
	var body messageBody
	if err := discord.ValidateEmbeds(p.Embeds); err != nil {
		return body, err
	}
	if err := discord.ValidateComponents(p.Components); err != nil {
		return body, err
	}
	body = messageBody{
		Content:         p.Content,
		TTS:             p.TTS,
		Nonce:           p.Nonce,
		Flags:           p.Flags,
		Embeds:          p.Embeds,
		Components:      p.Components,
		AllowedMentions: p.AllowedMentions,
		Reference:       p.Reference,
		StickerIDs:      p.StickerIDs,
		Username:        p.Username,
		AvatarURL:       p.AvatarURL,
		ThreadName:      p.ThreadName,
	}
	for i, f := range p.Files {
		body.Attachments = append(body.Attachments, attachmentRef{ID: i, Filename: f.Name})
	}
	return body, nil
}

// encode produces the final body bytes and content type. Multipart bodies
// are rebuilt on every call so a retried request starts from fresh bytes.
func (p *Payload) encode() ([]byte, string, error) {
	if len(p.files) == 0 {
		return p.json, "application/json", nil
	}
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	jw, err := w.CreateFormField("payload_json")
	if err != nil {
		return nil, "", err
	}
	if _, err := jw.Write(p.json); err != nil {
		return nil, "", err
	}
	for i, f := range p.files {
		contentType := f.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="files[%d]"; filename="%s"`, i, escapeQuotes(f.Name)))
		h.Set("Content-Type", contentType)
		fw, err := w.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := fw.Write(f.data); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

func escapeQuotes(s string) string {
	return strings.NewReplacer("\\", "\\\\", `"`, "\\\"").Replace(s)
}
