package discord_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arenborg/discordrest/discord"
)

func TestButtonValidate(t *testing.T) {
	t.Run("valid button", func(t *testing.T) {
		b := discord.NewButton(discord.ButtonStylePrimary, "Click", "my-button")
		assert.NoError(t, b.Validate())
	})
	t.Run("link button requires an url", func(t *testing.T) {
		b := discord.Button{Type: discord.ComponentTypeButton, Style: discord.ButtonStyleLink, Label: "Open"}
		assert.ErrorIs(t, b.Validate(), discord.ErrInvalidComponent)
	})
	t.Run("url and custom_id are mutually exclusive", func(t *testing.T) {
		b := discord.NewLinkButton("Open", "https://example.com")
		b.CustomID = "also-this"
		assert.ErrorIs(t, b.Validate(), discord.ErrInvalidComponent)
	})
	t.Run("non-link button requires a custom_id", func(t *testing.T) {
		b := discord.Button{Type: discord.ComponentTypeButton, Style: discord.ButtonStyleDanger, Label: "Boom"}
		assert.ErrorIs(t, b.Validate(), discord.ErrInvalidComponent)
	})
}

func TestSelectMenuValidate(t *testing.T) {
	option := discord.SelectOption{Label: "A", Value: "a"}
	t.Run("valid select", func(t *testing.T) {
		s := discord.NewSelectMenu("pick", option)
		assert.NoError(t, s.Validate())
	})
	t.Run("should reject more than 25 options", func(t *testing.T) {
		options := make([]discord.SelectOption, 26)
		for i := range options {
			options[i] = option
		}
		s := discord.NewSelectMenu("pick", options...)
		assert.ErrorIs(t, s.Validate(), discord.ErrInvalidComponent)
	})
	t.Run("should require a custom_id", func(t *testing.T) {
		s := discord.NewSelectMenu("", option)
		assert.ErrorIs(t, s.Validate(), discord.ErrInvalidComponent)
	})
}

func TestActionRowValidate(t *testing.T) {
	button := discord.NewButton(discord.ButtonStylePrimary, "ok", "b")
	t.Run("should reject more than 5 children", func(t *testing.T) {
		row := discord.NewActionRow(button, button, button, button, button, button)
		assert.ErrorIs(t, row.Validate(), discord.ErrInvalidComponent)
	})
	t.Run("should reject an empty row", func(t *testing.T) {
		row := discord.NewActionRow()
		assert.ErrorIs(t, row.Validate(), discord.ErrInvalidComponent)
	})
	t.Run("a select menu must be alone in its row", func(t *testing.T) {
		row := discord.NewActionRow(discord.NewSelectMenu("pick", discord.SelectOption{Label: "A", Value: "a"}), button)
		assert.ErrorIs(t, row.Validate(), discord.ErrInvalidComponent)
	})
}

func TestValidateComponents(t *testing.T) {
	button := discord.NewButton(discord.ButtonStylePrimary, "ok", "b")
	t.Run("should accept 25 components in 5 rows and reject a 6th row", func(t *testing.T) {
		full := discord.NewActionRow(button, button, button, button, button)
		rows := []discord.ActionRow{full, full, full, full, full}
		assert.NoError(t, discord.ValidateComponents(rows))
		rows = append(rows, discord.NewActionRow(button))
		assert.ErrorIs(t, discord.ValidateComponents(rows), discord.ErrInvalidComponent)
	})
}

func TestComponentMarshal(t *testing.T) {
	t.Run("link button row", func(t *testing.T) {
		row := discord.NewActionRow(discord.NewLinkButton("Docs", "https://example.com"))
		dat, err := json.Marshal(row)
		require.NoError(t, err)
		assert.JSONEq(t, `{"type": 1, "components": [{"type": 2, "style": 5, "label": "Docs", "url": "https://example.com"}]}`, string(dat))
	})
	t.Run("select menu literal gets its type normalized", func(t *testing.T) {
		s := discord.SelectMenu{CustomID: "pick", Options: []discord.SelectOption{{Label: "A", Value: "a"}}}
		dat, err := json.Marshal(s)
		require.NoError(t, err)
		assert.JSONEq(t, `{"type": 3, "custom_id": "pick", "options": [{"label": "A", "value": "a"}]}`, string(dat))
	})
}

func TestComponentUnmarshal(t *testing.T) {
	t.Run("can decode a message that echoes components back", func(t *testing.T) {
		dat := []byte(`{
			"id": "42",
			"components": [{
				"type": 1,
				"components": [
					{"type": 2, "style": 1, "label": "ok", "custom_id": "b1"}
				]
			}]
		}`)
		var m discord.Message
		require.NoError(t, json.Unmarshal(dat, &m))
		require.Len(t, m.Components, 1)
		require.Len(t, m.Components[0].Components, 1)
		b, ok := m.Components[0].Components[0].(discord.Button)
		require.True(t, ok)
		assert.Equal(t, discord.ButtonStylePrimary, b.Style)
		assert.Equal(t, "ok", b.Label)
		assert.Equal(t, "b1", b.CustomID)
	})
	t.Run("can decode a select menu row", func(t *testing.T) {
		dat := []byte(`{
			"type": 1,
			"components": [
				{"type": 3, "custom_id": "pick", "options": [{"label": "A", "value": "a"}]}
			]
		}`)
		var row discord.ActionRow
		require.NoError(t, json.Unmarshal(dat, &row))
		require.Len(t, row.Components, 1)
		s, ok := row.Components[0].(discord.SelectMenu)
		require.True(t, ok)
		assert.Equal(t, "pick", s.CustomID)
		require.Len(t, s.Options, 1)
		assert.Equal(t, "a", s.Options[0].Value)
	})
	t.Run("marshal and unmarshal round-trip", func(t *testing.T) {
		row := discord.NewActionRow(
			discord.NewButton(discord.ButtonStylePrimary, "ok", "b1"),
			discord.NewLinkButton("Docs", "https://example.com"),
		)
		dat, err := json.Marshal(row)
		require.NoError(t, err)
		var got discord.ActionRow
		require.NoError(t, json.Unmarshal(dat, &got))
		assert.Equal(t, row, got)
	})
	t.Run("should report an unknown component type", func(t *testing.T) {
		dat := []byte(`{"type": 1, "components": [{"type": 99}]}`)
		var row discord.ActionRow
		err := json.Unmarshal(dat, &row)
		assert.ErrorIs(t, err, discord.ErrInvalidComponent)
	})
}
