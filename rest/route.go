// Package rest provides a rate-limit aware client for the Discord REST API.
//
// Every call flows through [Client.Request], which serializes requests per
// rate-limit bucket, honors Discord's global rate limit and retries
// transient failures.
package rest

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/arenborg/discordrest/discord"
)

// Route describes a single call to a REST endpoint.
//
// The path is a template with {placeholder} tokens. The rate-limit bucket is
// derived from the unsubstituted template plus the major parameters
// (channel_id and guild_id), so e.g. all message endpoints of one channel
// share a bucket regardless of the message targeted.
type Route struct {
	Method string
	Path   string // template with {placeholder} tokens

	url       string // substituted, relative to the API base URL
	channelID string
	guildID   string
}

// NewRoute returns a route for the given method and path template.
//
// Parameter values substitute the equally named {placeholder} tokens.
// String values are percent-encoded, [discord.Snowflake] and integer values
// are inserted in decimal. A template token without a matching parameter is
// a programming error and panics.
func NewRoute(method, path string, params map[string]any) Route {
	r := Route{Method: method, Path: path}
	r.url = substitutePath(path, params)
	if v, ok := params["channel_id"]; ok {
		r.channelID = paramString(v)
	}
	if v, ok := params["guild_id"]; ok {
		r.guildID = paramString(v)
	}
	return r
}

// Bucket returns the rate-limit bucket key for the route.
func (r Route) Bucket() string {
	return r.channelID + ":" + r.guildID + ":" + r.Path
}

// URL returns the substituted path relative to the API base URL.
func (r Route) URL() string {
	return r.url
}

func substitutePath(path string, params map[string]any) string {
	var b strings.Builder
	for {
		i := strings.IndexByte(path, '{')
		if i < 0 {
			b.WriteString(path)
			return b.String()
		}
		j := strings.IndexByte(path[i:], '}')
		if j < 0 {
			b.WriteString(path)
			return b.String()
		}
		b.WriteString(path[:i])
		name := path[i+1 : i+j]
		v, ok := params[name]
		if !ok {
			panic(fmt.Sprintf("rest: missing route parameter %q for path %s", name, path))
		}
		b.WriteString(paramEscaped(v))
		path = path[i+j+1:]
	}
}

func paramString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case discord.Snowflake:
		return x.String()
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	default:
		return fmt.Sprint(v)
	}
}

func paramEscaped(v any) string {
	if s, ok := v.(string); ok {
		return url.PathEscape(s)
	}
	return paramString(v)
}
