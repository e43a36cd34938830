package rest

import (
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arenborg/discordrest/discord"
)

func TestPayloadEncode(t *testing.T) {
	t.Run("should encode a pure JSON payload without files", func(t *testing.T) {
		p, err := MessageParams{Content: "hello"}.Build()
		require.NoError(t, err)
		body, contentType, err := p.encode()
		require.NoError(t, err)
		assert.Equal(t, "application/json", contentType)
		assert.JSONEq(t, `{"content": "hello", "tts": false}`, string(body))
	})
	t.Run("should encode a multipart form with payload_json and file parts", func(t *testing.T) {
		p, err := MessageParams{
			Content: "here you go",
			Files: []*File{
				NewFileBytes("a.txt", []byte("first")),
				NewFileBytes("b.png", []byte("second")),
			},
		}.Build()
		require.NoError(t, err)
		body, contentType, err := p.encode()
		require.NoError(t, err)
		mediaType, params, err := mime.ParseMediaType(contentType)
		require.NoError(t, err)
		assert.Equal(t, "multipart/form-data", mediaType)
		mr := multipart.NewReader(strings.NewReader(string(body)), params["boundary"])
		part, err := mr.NextPart()
		require.NoError(t, err)
		assert.Equal(t, "payload_json", part.FormName())
		dat, err := io.ReadAll(part)
		require.NoError(t, err)
		var decoded struct {
			Content     string `json:"content"`
			Attachments []struct {
				ID       int    `json:"id"`
				Filename string `json:"filename"`
			} `json:"attachments"`
		}
		require.NoError(t, json.Unmarshal(dat, &decoded))
		assert.Equal(t, "here you go", decoded.Content)
		require.Len(t, decoded.Attachments, 2)
		assert.Equal(t, 0, decoded.Attachments[0].ID)
		assert.Equal(t, "a.txt", decoded.Attachments[0].Filename)
		part, err = mr.NextPart()
		require.NoError(t, err)
		assert.Equal(t, "files[0]", part.FormName())
		assert.Equal(t, "a.txt", part.FileName())
		dat, _ = io.ReadAll(part)
		assert.Equal(t, "first", string(dat))
		part, err = mr.NextPart()
		require.NoError(t, err)
		assert.Equal(t, "files[1]", part.FormName())
		_, err = mr.NextPart()
		assert.ErrorIs(t, err, io.EOF)
	})
	t.Run("encoding is repeatable for retries", func(t *testing.T) {
		p, err := MessageParams{
			Content: "again",
			Files:   []*File{NewFileBytes("a.txt", []byte("data"))},
		}.Build()
		require.NoError(t, err)
		b1, _, err := p.encode()
		require.NoError(t, err)
		b2, _, err := p.encode()
		require.NoError(t, err)
		assert.Contains(t, string(b1), "data")
		assert.Contains(t, string(b2), "data")
	})
}

func TestPayloadValidation(t *testing.T) {
	t.Run("should reject more than 10 embeds", func(t *testing.T) {
		embeds := make([]discord.Embed, 11)
		for i := range embeds {
			embeds[i] = discord.Embed{Title: "e"}
		}
		_, err := MessageParams{Embeds: embeds}.Build()
		assert.ErrorIs(t, err, discord.ErrInvalidEmbed)
	})
	t.Run("should reject more than 5 action rows", func(t *testing.T) {
		rows := make([]discord.ActionRow, 6)
		for i := range rows {
			rows[i] = discord.NewActionRow(discord.NewButton(discord.ButtonStylePrimary, "ok", "b"))
		}
		_, err := MessageParams{Components: rows}.Build()
		assert.ErrorIs(t, err, discord.ErrInvalidComponent)
	})
	t.Run("should accept a full valid message", func(t *testing.T) {
		p, err := MessageParams{
			Content: "hi",
			Embeds:  []discord.Embed{{Title: "t"}},
			Components: []discord.ActionRow{
				discord.NewActionRow(discord.NewButton(discord.ButtonStylePrimary, "ok", "b")),
			},
		}.Build()
		require.NoError(t, err)
		assert.NotNil(t, p)
	})
}

func TestBuildInteractionResponse(t *testing.T) {
	p, err := MessageParams{Content: "pong"}.BuildInteractionResponse(4)
	require.NoError(t, err)
	body, contentType, err := p.encode()
	require.NoError(t, err)
	assert.Equal(t, "application/json", contentType)
	var decoded struct {
		Type int `json:"type"`
		Data struct {
			Content string `json:"content"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, 4, decoded.Type)
	assert.Equal(t, "pong", decoded.Data.Content)
}
