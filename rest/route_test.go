package rest_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arenborg/discordrest/discord"
	"github.com/arenborg/discordrest/rest"
)

func TestRoute(t *testing.T) {
	t.Run("should substitute parameters into the path", func(t *testing.T) {
		r := rest.NewRoute(http.MethodGet, "/channels/{channel_id}/messages/{message_id}", map[string]any{
			"channel_id": discord.Snowflake(123),
			"message_id": discord.Snowflake(456),
		})
		assert.Equal(t, "/channels/123/messages/456", r.URL())
	})
	t.Run("should percent-encode string parameters", func(t *testing.T) {
		r := rest.NewRoute(http.MethodPut, "/channels/{channel_id}/messages/{message_id}/reactions/{emoji}/@me", map[string]any{
			"channel_id": discord.Snowflake(123),
			"message_id": discord.Snowflake(456),
			"emoji":      "👍",
		})
		assert.Equal(t, "/channels/123/messages/456/reactions/%F0%9F%91%8D/@me", r.URL())
	})
	t.Run("should panic on a missing parameter", func(t *testing.T) {
		assert.Panics(t, func() {
			rest.NewRoute(http.MethodGet, "/channels/{channel_id}", nil)
		})
	})
}

func TestRouteBucket(t *testing.T) {
	t.Run("same channel and different message share a bucket", func(t *testing.T) {
		r1 := rest.NewRoute(http.MethodGet, "/channels/{channel_id}/messages/{message_id}", map[string]any{
			"channel_id": discord.Snowflake(123),
			"message_id": discord.Snowflake(1),
		})
		r2 := rest.NewRoute(http.MethodGet, "/channels/{channel_id}/messages/{message_id}", map[string]any{
			"channel_id": discord.Snowflake(123),
			"message_id": discord.Snowflake(2),
		})
		assert.Equal(t, r1.Bucket(), r2.Bucket())
	})
	t.Run("different channels use different buckets", func(t *testing.T) {
		r1 := rest.NewRoute(http.MethodGet, "/channels/{channel_id}/messages/{message_id}", map[string]any{
			"channel_id": discord.Snowflake(123),
			"message_id": discord.Snowflake(1),
		})
		r2 := rest.NewRoute(http.MethodGet, "/channels/{channel_id}/messages/{message_id}", map[string]any{
			"channel_id": discord.Snowflake(999),
			"message_id": discord.Snowflake(1),
		})
		assert.NotEqual(t, r1.Bucket(), r2.Bucket())
	})
	t.Run("bucket is derived from the template, not the final URL", func(t *testing.T) {
		r := rest.NewRoute(http.MethodGet, "/channels/{channel_id}/messages/{message_id}", map[string]any{
			"channel_id": discord.Snowflake(123),
			"message_id": discord.Snowflake(456),
		})
		assert.Equal(t, "123::/channels/{channel_id}/messages/{message_id}", r.Bucket())
	})
}
