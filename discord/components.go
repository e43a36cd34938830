package discord

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrInvalidComponent = errors.New("invalid component")

// Discord component limits
const (
	ActionRowsQuantity    = 5
	actionRowChildren     = 5
	ComponentsQuantity    = 25
	selectOptionsQuantity = 25
	customIDLength        = 100
	buttonLabelLength     = 80
)

// ComponentType identifies the kind of a message component.
type ComponentType int

const (
	ComponentTypeActionRow    ComponentType = 1
	ComponentTypeButton       ComponentType = 2
	ComponentTypeStringSelect ComponentType = 3
	ComponentTypeUserSelect   ComponentType = 5
	ComponentTypeRoleSelect   ComponentType = 6
)

// ButtonStyle determines the color and behavior of a button.
type ButtonStyle int

const (
	ButtonStylePrimary   ButtonStyle = 1
	ButtonStyleSecondary ButtonStyle = 2
	ButtonStyleSuccess   ButtonStyle = 3
	ButtonStyleDanger    ButtonStyle = 4
	ButtonStyleLink      ButtonStyle = 5
)

// Component is an interactive element that can be placed inside an action row.
type Component interface {
	ComponentType() ComponentType
	Validate() error
}

// ActionRow is a non-interactive container for up to 5 components.
type ActionRow struct {
	Type       ComponentType `json:"type"`
	Components []Component   `json:"components"`
}

// NewActionRow returns an action row holding the given components.
func NewActionRow(components ...Component) ActionRow {
	return ActionRow{Type: ComponentTypeActionRow, Components: components}
}

// UnmarshalJSON decodes the row, dispatching each child on its type field.
// The API echoes components back on every message that carries them.
func (r *ActionRow) UnmarshalJSON(data []byte) error {
	var row struct {
		Type       ComponentType     `json:"type"`
		Components []json.RawMessage `json:"components"`
	}
	if err := json.Unmarshal(data, &row); err != nil {
		return err
	}
	r.Type = row.Type
	r.Components = make([]Component, 0, len(row.Components))
	for _, raw := range row.Components {
		var head struct {
			Type ComponentType `json:"type"`
		}
		if err := json.Unmarshal(raw, &head); err != nil {
			return err
		}
		switch head.Type {
		case ComponentTypeButton:
			var b Button
			if err := json.Unmarshal(raw, &b); err != nil {
				return err
			}
			r.Components = append(r.Components, b)
		case ComponentTypeStringSelect, ComponentTypeUserSelect, ComponentTypeRoleSelect:
			var s SelectMenu
			if err := json.Unmarshal(raw, &s); err != nil {
				return err
			}
			r.Components = append(r.Components, s)
		default:
			return fmt.Errorf("unknown component type %d: %w", head.Type, ErrInvalidComponent)
		}
	}
	return nil
}

// Validate checks the row and all of its children.
func (r ActionRow) Validate() error {
	if len(r.Components) == 0 {
		return fmt.Errorf("action row must contain at least one component: %w", ErrInvalidComponent)
	}
	if len(r.Components) > actionRowChildren {
		return fmt.Errorf("action row can hold up to %d components; got %d: %w", actionRowChildren, len(r.Components), ErrInvalidComponent)
	}
	hasSelect := false
	for _, c := range r.Components {
		if c.ComponentType() == ComponentTypeActionRow {
			return fmt.Errorf("action rows can not be nested: %w", ErrInvalidComponent)
		}
		if c.ComponentType() != ComponentTypeButton {
			hasSelect = true
		}
		if err := c.Validate(); err != nil {
			return err
		}
	}
	if hasSelect && len(r.Components) > 1 {
		return fmt.Errorf("a select menu must be the only component in its row: %w", ErrInvalidComponent)
	}
	return nil
}

// ValidateComponents checks a full set of message rows, including the total
// interactive component limit.
func ValidateComponents(rows []ActionRow) error {
	if len(rows) > ActionRowsQuantity {
		return fmt.Errorf("can only send up to %d action rows; got %d: %w", ActionRowsQuantity, len(rows), ErrInvalidComponent)
	}
	var total int
	for _, r := range rows {
		if err := r.Validate(); err != nil {
			return err
		}
		total += len(r.Components)
	}
	if total > ComponentsQuantity {
		return fmt.Errorf("can only send up to %d components; got %d: %w", ComponentsQuantity, total, ErrInvalidComponent)
	}
	return nil
}

// Button represents a clickable button component.
type Button struct {
	Type     ComponentType `json:"type"`
	Style    ButtonStyle   `json:"style"`
	Label    string        `json:"label,omitempty"`
	Emoji    *PartialEmoji `json:"emoji,omitempty"`
	CustomID string        `json:"custom_id,omitempty"`
	URL      string        `json:"url,omitempty"`
	Disabled bool          `json:"disabled,omitempty"`
}

// NewButton returns a button with the given style, label and custom ID.
func NewButton(style ButtonStyle, label, customID string) Button {
	return Button{Type: ComponentTypeButton, Style: style, Label: label, CustomID: customID}
}

// NewLinkButton returns a link-style button that opens the given URL.
func NewLinkButton(label, url string) Button {
	return Button{Type: ComponentTypeButton, Style: ButtonStyleLink, Label: label, URL: url}
}

func (b Button) ComponentType() ComponentType {
	return ComponentTypeButton
}

func (b Button) Validate() error {
	if b.URL != "" && b.CustomID != "" {
		return fmt.Errorf("button can not have both url and custom_id: %w", ErrInvalidComponent)
	}
	if b.Style == ButtonStyleLink {
		if b.URL == "" {
			return fmt.Errorf("link button requires an url: %w", ErrInvalidComponent)
		}
	} else if b.CustomID == "" {
		return fmt.Errorf("button requires a custom_id: %w", ErrInvalidComponent)
	}
	if len(b.CustomID) > customIDLength {
		return fmt.Errorf("button custom_id too long: %w", ErrInvalidComponent)
	}
	if len(b.Label) > buttonLabelLength {
		return fmt.Errorf("button label too long: %w", ErrInvalidComponent)
	}
	if b.Label == "" && b.Emoji == nil {
		return fmt.Errorf("button requires a label or an emoji: %w", ErrInvalidComponent)
	}
	return nil
}

// SelectMenu represents a dropdown menu component.
type SelectMenu struct {
	Type        ComponentType  `json:"type"`
	CustomID    string         `json:"custom_id"`
	Options     []SelectOption `json:"options,omitempty"`
	Placeholder string         `json:"placeholder,omitempty"`
	MinValues   *int           `json:"min_values,omitempty"`
	MaxValues   int            `json:"max_values,omitempty"`
	Disabled    bool           `json:"disabled,omitempty"`
}

// NewSelectMenu returns a string select menu with the given options.
func NewSelectMenu(customID string, options ...SelectOption) SelectMenu {
	return SelectMenu{Type: ComponentTypeStringSelect, CustomID: customID, Options: options}
}

func (s SelectMenu) ComponentType() ComponentType {
	if s.Type == 0 {
		return ComponentTypeStringSelect
	}
	return s.Type
}

// MarshalJSON writes the menu with its type field normalized,
// so struct literals without an explicit type stay valid on the wire.
func (s SelectMenu) MarshalJSON() ([]byte, error) {
	type menu SelectMenu
	s.Type = s.ComponentType()
	return json.Marshal(menu(s))
}

func (s SelectMenu) Validate() error {
	if s.CustomID == "" {
		return fmt.Errorf("select menu requires a custom_id: %w", ErrInvalidComponent)
	}
	if len(s.CustomID) > customIDLength {
		return fmt.Errorf("select menu custom_id too long: %w", ErrInvalidComponent)
	}
	if s.ComponentType() == ComponentTypeStringSelect {
		if len(s.Options) == 0 {
			return fmt.Errorf("string select requires options: %w", ErrInvalidComponent)
		}
		if len(s.Options) > selectOptionsQuantity {
			return fmt.Errorf("select menu can hold up to %d options; got %d: %w", selectOptionsQuantity, len(s.Options), ErrInvalidComponent)
		}
	}
	return nil
}

// SelectOption is a single choice in a string select menu.
type SelectOption struct {
	Label       string        `json:"label"`
	Value       string        `json:"value"`
	Description string        `json:"description,omitempty"`
	Emoji       *PartialEmoji `json:"emoji,omitempty"`
	Default     bool          `json:"default,omitempty"`
}

// PartialEmoji identifies an emoji on a component.
type PartialEmoji struct {
	ID       Snowflake `json:"id,omitempty"`
	Name     string    `json:"name,omitempty"`
	Animated bool      `json:"animated,omitempty"`
}
