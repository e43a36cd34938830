// Package discord contains the entity models exchanged with the Discord API.
package discord

import (
	"bytes"
	"strconv"
	"time"
)

// Discord epoch in milliseconds (first second of 2015).
const epochDiscord = 1420070400000

// Snowflake represents a Discord snowflake ID.
//
// Snowflakes are transmitted as strings on the wire to avoid precision loss
// in JSON implementations, but are plain uint64 values internally.
type Snowflake uint64

func (s Snowflake) String() string {
	return strconv.FormatUint(uint64(s), 10)
}

// IsZero reports whether the snowflake is unset.
func (s Snowflake) IsZero() bool {
	return s == 0
}

// Time returns the creation time encoded in the snowflake.
func (s Snowflake) Time() time.Time {
	ms := int64(s>>22) + epochDiscord
	return time.UnixMilli(ms).UTC()
}

func (s Snowflake) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

func (s *Snowflake) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*s = 0
		return nil
	}
	data = bytes.Trim(data, `"`)
	v, err := strconv.ParseUint(string(data), 10, 64)
	if err != nil {
		return err
	}
	*s = Snowflake(v)
	return nil
}

// ParseSnowflake parses a snowflake from its decimal string form.
func ParseSnowflake(s string) (Snowflake, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return Snowflake(v), nil
}
