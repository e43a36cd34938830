package discord

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidEmbed = errors.New("invalid embed")

// Discord embed limits
const (
	authorNameLength    = 256
	descriptionLength   = 4096
	embedCombinedLength = 6000
	EmbedsQuantity      = 10
	fieldNameLength     = 256
	fieldsQuantity      = 25
	fieldValueLength    = 1024
	footerTextLength    = 2048
	titleLength         = 256
)

// Embed represents a Discord embed.
type Embed struct {
	Author      *EmbedAuthor    `json:"author,omitempty"`
	Color       int             `json:"color,omitempty"`
	Description string          `json:"description,omitempty"`
	Fields      []EmbedField    `json:"fields,omitempty"`
	Footer      *EmbedFooter    `json:"footer,omitempty"`
	Image       *EmbedImage     `json:"image,omitempty"`
	Timestamp   string          `json:"timestamp,omitempty"`
	Title       string          `json:"title,omitempty"`
	Thumbnail   *EmbedThumbnail `json:"thumbnail,omitempty"`
	URL         string          `json:"url,omitempty"`
}

// Size returns the number of characters counting against the combined embed limit.
func (em Embed) Size() int {
	x := len(em.Title) + len(em.Description)
	if em.Author != nil {
		x += len(em.Author.Name)
	}
	if em.Footer != nil {
		x += len(em.Footer.Text)
	}
	for _, f := range em.Fields {
		x += f.size()
	}
	return x
}

// Validate checks the embed against known Discord limits
// and returns an [ErrInvalidEmbed] error in case a limit is violated.
func (em Embed) Validate() error {
	if em.Author != nil {
		if err := em.Author.validate(); err != nil {
			return err
		}
	}
	if len(em.Description) > descriptionLength {
		return fmt.Errorf("embed description too long: %w", ErrInvalidEmbed)
	}
	if em.Footer != nil {
		if err := em.Footer.validate(); err != nil {
			return err
		}
	}
	if len(em.Fields) > fieldsQuantity {
		return fmt.Errorf("embed has too many fields: %w", ErrInvalidEmbed)
	}
	for _, f := range em.Fields {
		if err := f.validate(); err != nil {
			return err
		}
	}
	if len(em.Title) > titleLength {
		return fmt.Errorf("embed title too long: %w", ErrInvalidEmbed)
	}
	if em.Timestamp != "" {
		_, err := time.Parse(time.RFC3339, em.Timestamp)
		if err != nil {
			return fmt.Errorf("embed timestamp does not conform to RFC3339: %w", ErrInvalidEmbed)
		}
	}
	return nil
}

// ValidateEmbeds checks a set of embeds, including the combined size limit.
func ValidateEmbeds(embeds []Embed) error {
	if len(embeds) > EmbedsQuantity {
		return fmt.Errorf("too many embeds (%d): %w", len(embeds), ErrInvalidEmbed)
	}
	var totalSize int
	for _, em := range embeds {
		if err := em.Validate(); err != nil {
			return err
		}
		totalSize += em.Size()
	}
	if totalSize > embedCombinedLength {
		return fmt.Errorf("too many characters in combined embeds: %w", ErrInvalidEmbed)
	}
	return nil
}

type EmbedAuthor struct {
	Name    string `json:"name,omitempty"`
	IconURL string `json:"icon_url,omitempty"`
	URL     string `json:"url,omitempty"`
}

func (ea EmbedAuthor) validate() error {
	if len(ea.Name) > authorNameLength {
		return fmt.Errorf("embed author name too long: %w", ErrInvalidEmbed)
	}
	return nil
}

type EmbedField struct {
	Name   string `json:"name,omitempty"`
	Value  string `json:"value,omitempty"`
	Inline bool   `json:"inline,omitempty"`
}

func (ef EmbedField) size() int {
	return len(ef.Name) + len(ef.Value)
}

func (ef EmbedField) validate() error {
	if len(ef.Name) > fieldNameLength {
		return fmt.Errorf("embed field name too long: %w", ErrInvalidEmbed)
	}
	if len(ef.Value) > fieldValueLength {
		return fmt.Errorf("embed field value too long: %w", ErrInvalidEmbed)
	}
	return nil
}

type EmbedFooter struct {
	Text    string `json:"text,omitempty"`
	IconURL string `json:"icon_url,omitempty"`
}

func (ef EmbedFooter) validate() error {
	if len(ef.Text) > footerTextLength {
		return fmt.Errorf("embed footer text too long: %w", ErrInvalidEmbed)
	}
	return nil
}

type EmbedImage struct {
	URL string `json:"url,omitempty"`
}

type EmbedThumbnail struct {
	URL string `json:"url,omitempty"`
}
