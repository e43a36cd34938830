package rest

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/arenborg/discordrest/discord"
)

// The typed endpoint helpers below are thin callers of [Client.Request].
// They build a route, attach the payload and decode the response entity.

func decode[T any](data []byte, err error) (*T, error) {
	if err != nil {
		return nil, err
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func decodeSlice[T any](data []byte, err error) ([]T, error) {
	if err != nil {
		return nil, err
	}
	var v []T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// CurrentUser fetches the user belonging to the token.
func (c *Client) CurrentUser(ctx context.Context) (*discord.User, error) {
	r := NewRoute(http.MethodGet, "/users/@me", nil)
	return decode[discord.User](c.Request(ctx, r))
}

// GetUser fetches a user by ID.
func (c *Client) GetUser(ctx context.Context, userID discord.Snowflake) (*discord.User, error) {
	r := NewRoute(http.MethodGet, "/users/{user_id}", map[string]any{"user_id": userID})
	return decode[discord.User](c.Request(ctx, r))
}

// SendMessage posts a message to a channel.
func (c *Client) SendMessage(ctx context.Context, channelID discord.Snowflake, params MessageParams) (*discord.Message, error) {
	p, err := params.Build()
	if err != nil {
		return nil, err
	}
	r := NewRoute(http.MethodPost, "/channels/{channel_id}/messages", map[string]any{"channel_id": channelID})
	return decode[discord.Message](c.Request(ctx, r, WithPayload(p)))
}

// EditMessage edits a previously sent message.
func (c *Client) EditMessage(ctx context.Context, channelID, messageID discord.Snowflake, params MessageParams) (*discord.Message, error) {
	p, err := params.Build()
	if err != nil {
		return nil, err
	}
	r := NewRoute(http.MethodPatch, "/channels/{channel_id}/messages/{message_id}", map[string]any{
		"channel_id": channelID,
		"message_id": messageID,
	})
	return decode[discord.Message](c.Request(ctx, r, WithPayload(p)))
}

// DeleteMessage deletes a message.
func (c *Client) DeleteMessage(ctx context.Context, channelID, messageID discord.Snowflake, opts ...RequestOption) error {
	r := NewRoute(http.MethodDelete, "/channels/{channel_id}/messages/{message_id}", map[string]any{
		"channel_id": channelID,
		"message_id": messageID,
	})
	_, err := c.Request(ctx, r, opts...)
	return err
}

// BulkDeleteMessages deletes up to 100 messages in one call.
func (c *Client) BulkDeleteMessages(ctx context.Context, channelID discord.Snowflake, messageIDs []discord.Snowflake, opts ...RequestOption) error {
	r := NewRoute(http.MethodPost, "/channels/{channel_id}/messages/bulk-delete", map[string]any{"channel_id": channelID})
	body := struct {
		Messages []discord.Snowflake `json:"messages"`
	}{Messages: messageIDs}
	_, err := c.Request(ctx, r, append(opts, WithJSON(body))...)
	return err
}

// GetMessage fetches a single message.
func (c *Client) GetMessage(ctx context.Context, channelID, messageID discord.Snowflake) (*discord.Message, error) {
	r := NewRoute(http.MethodGet, "/channels/{channel_id}/messages/{message_id}", map[string]any{
		"channel_id": channelID,
		"message_id": messageID,
	})
	return decode[discord.Message](c.Request(ctx, r))
}

// GetChannelMessages fetches up to limit recent messages of a channel.
func (c *Client) GetChannelMessages(ctx context.Context, channelID discord.Snowflake, limit int) ([]discord.Message, error) {
	r := NewRoute(http.MethodGet, "/channels/{channel_id}/messages", map[string]any{"channel_id": channelID})
	r.url += "?limit=" + paramString(limit)
	return decodeSlice[discord.Message](c.Request(ctx, r))
}

// TriggerTyping starts the typing indicator in a channel.
func (c *Client) TriggerTyping(ctx context.Context, channelID discord.Snowflake) error {
	r := NewRoute(http.MethodPost, "/channels/{channel_id}/typing", map[string]any{"channel_id": channelID})
	_, err := c.Request(ctx, r)
	return err
}

// CreateReaction adds the given emoji as own reaction to a message.
// Custom emoji use the name:id form.
func (c *Client) CreateReaction(ctx context.Context, channelID, messageID discord.Snowflake, emoji string) error {
	r := NewRoute(http.MethodPut, "/channels/{channel_id}/messages/{message_id}/reactions/{emoji}/@me", map[string]any{
		"channel_id": channelID,
		"message_id": messageID,
		"emoji":      emoji,
	})
	_, err := c.Request(ctx, r)
	return err
}

// DeleteOwnReaction removes an own reaction from a message.
func (c *Client) DeleteOwnReaction(ctx context.Context, channelID, messageID discord.Snowflake, emoji string) error {
	r := NewRoute(http.MethodDelete, "/channels/{channel_id}/messages/{message_id}/reactions/{emoji}/@me", map[string]any{
		"channel_id": channelID,
		"message_id": messageID,
		"emoji":      emoji,
	})
	_, err := c.Request(ctx, r)
	return err
}

// PinMessage pins a message in a channel.
func (c *Client) PinMessage(ctx context.Context, channelID, messageID discord.Snowflake, opts ...RequestOption) error {
	r := NewRoute(http.MethodPut, "/channels/{channel_id}/pins/{message_id}", map[string]any{
		"channel_id": channelID,
		"message_id": messageID,
	})
	_, err := c.Request(ctx, r, opts...)
	return err
}

// UnpinMessage unpins a message in a channel.
func (c *Client) UnpinMessage(ctx context.Context, channelID, messageID discord.Snowflake, opts ...RequestOption) error {
	r := NewRoute(http.MethodDelete, "/channels/{channel_id}/pins/{message_id}", map[string]any{
		"channel_id": channelID,
		"message_id": messageID,
	})
	_, err := c.Request(ctx, r, opts...)
	return err
}

// GetChannel fetches a channel by ID.
func (c *Client) GetChannel(ctx context.Context, channelID discord.Snowflake) (*discord.Channel, error) {
	r := NewRoute(http.MethodGet, "/channels/{channel_id}", map[string]any{"channel_id": channelID})
	return decode[discord.Channel](c.Request(ctx, r))
}

// EditChannel updates the given fields of a channel.
func (c *Client) EditChannel(ctx context.Context, channelID discord.Snowflake, edit discord.ChannelEdit, opts ...RequestOption) (*discord.Channel, error) {
	r := NewRoute(http.MethodPatch, "/channels/{channel_id}", map[string]any{"channel_id": channelID})
	return decode[discord.Channel](c.Request(ctx, r, append(opts, WithJSON(edit))...))
}

// DeleteChannel deletes a channel, or closes it for DM channels.
func (c *Client) DeleteChannel(ctx context.Context, channelID discord.Snowflake, opts ...RequestOption) error {
	r := NewRoute(http.MethodDelete, "/channels/{channel_id}", map[string]any{"channel_id": channelID})
	_, err := c.Request(ctx, r, opts...)
	return err
}

// GetGuild fetches a guild by ID.
func (c *Client) GetGuild(ctx context.Context, guildID discord.Snowflake) (*discord.Guild, error) {
	r := NewRoute(http.MethodGet, "/guilds/{guild_id}", map[string]any{"guild_id": guildID})
	return decode[discord.Guild](c.Request(ctx, r))
}

// GetGuildRoles fetches all roles of a guild.
func (c *Client) GetGuildRoles(ctx context.Context, guildID discord.Snowflake) ([]discord.Role, error) {
	r := NewRoute(http.MethodGet, "/guilds/{guild_id}/roles", map[string]any{"guild_id": guildID})
	return decodeSlice[discord.Role](c.Request(ctx, r))
}

// CreateRole creates a role in a guild.
func (c *Client) CreateRole(ctx context.Context, guildID discord.Snowflake, role discord.RoleCreate, opts ...RequestOption) (*discord.Role, error) {
	r := NewRoute(http.MethodPost, "/guilds/{guild_id}/roles", map[string]any{"guild_id": guildID})
	return decode[discord.Role](c.Request(ctx, r, append(opts, WithJSON(role))...))
}

// DeleteRole deletes a role from a guild.
func (c *Client) DeleteRole(ctx context.Context, guildID, roleID discord.Snowflake, opts ...RequestOption) error {
	r := NewRoute(http.MethodDelete, "/guilds/{guild_id}/roles/{role_id}", map[string]any{
		"guild_id": guildID,
		"role_id":  roleID,
	})
	_, err := c.Request(ctx, r, opts...)
	return err
}

// ExecuteWebhook posts a message through a webhook. With wait set the
// created message is returned, otherwise the result is nil.
func (c *Client) ExecuteWebhook(ctx context.Context, webhookID discord.Snowflake, token string, params MessageParams, wait bool) (*discord.Message, error) {
	p, err := params.Build()
	if err != nil {
		return nil, err
	}
	r := NewRoute(http.MethodPost, "/webhooks/{webhook_id}/{webhook_token}", map[string]any{
		"webhook_id":    webhookID,
		"webhook_token": token,
	})
	if wait {
		r.url += "?wait=true"
		return decode[discord.Message](c.Request(ctx, r, WithPayload(p)))
	}
	_, err = c.Request(ctx, r, WithPayload(p))
	return nil, err
}

// CreateInteractionResponse answers an interaction with a callback of the
// given type.
func (c *Client) CreateInteractionResponse(ctx context.Context, interactionID discord.Snowflake, token string, callbackType int, params MessageParams) error {
	p, err := params.BuildInteractionResponse(callbackType)
	if err != nil {
		return err
	}
	r := NewRoute(http.MethodPost, "/interactions/{interaction_id}/{interaction_token}/callback", map[string]any{
		"interaction_id":    interactionID,
		"interaction_token": token,
	})
	_, err = c.Request(ctx, r, WithPayload(p))
	return err
}
