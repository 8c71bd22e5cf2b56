package result

import (
	"strings"
	"unicode/utf8"
)

// Component is the resolved content of one slot together with the
// source words it came from and the rules that shaped it.
type Component struct {
	Position     Position `json:"position_number"`
	PositionName string   `json:"position"`
	Value        string   `json:"value"`
	Original     string   `json:"original"`
	Mandatory    bool     `json:"mandatory"`
	RulesApplied Rules    `json:"rules_applied"`
}

// NewComponent returns an empty component for slot p.
func NewComponent(p Position) Component {
	return Component{
		Position:     p,
		PositionName: p.Name(),
		Mandatory:    p.Mandatory(),
		RulesApplied: Rules{},
	}
}

// EmptyComponents returns one empty component per slot, in slot order.
func EmptyComponents() []Component {
	comps := make([]Component, NumPositions)
	for i, p := range Positions {
		comps[i] = NewComponent(p)
	}
	return comps
}

// ProcessingResult is the outcome of converting one description.
type ProcessingResult struct {
	Original       string      `json:"original"`
	ShortName      string      `json:"short_name"`
	CharacterCount int         `json:"character_count"`
	Success        bool        `json:"success"`
	Components     []Component `json:"components"`
	Messages       Messages    `json:"messages"`
}

// Component returns the component for slot p.
func (r ProcessingResult) Component(p Position) Component {
	if !p.Valid() || p.Index() >= len(r.Components) {
		return NewComponent(p)
	}
	return r.Components[p.Index()]
}

// Clone returns a deep copy so callers can never alias cached state.
func (r ProcessingResult) Clone() ProcessingResult {
	out := r
	out.Components = make([]Component, len(r.Components))
	for i, c := range r.Components {
		c.RulesApplied = append(Rules{}, c.RulesApplied...)
		out.Components[i] = c
	}
	out.Messages = append(Messages{}, r.Messages...)
	return out
}

// Join concatenates the non-empty component values with single spaces.
func Join(components []Component) string {
	parts := make([]string, 0, len(components))
	for _, c := range components {
		if c.Value != "" {
			parts = append(parts, c.Value)
		}
	}
	return strings.Join(parts, " ")
}

// Length returns the character count of s.
func Length(s string) int {
	return utf8.RuneCountInString(s)
}

// Assemble builds the final result. Success requires a filled product
// type and a short name within limit characters.
func Assemble(original string, components []Component, messages Messages, limit int) ProcessingResult {
	comps := EmptyComponents()
	for _, c := range components {
		if c.Position.Valid() {
			comps[c.Position.Index()] = c
		}
	}

	shortName := Join(comps)
	count := Length(shortName)

	return ProcessingResult{
		Original:       strings.TrimSpace(original),
		ShortName:      shortName,
		CharacterCount: count,
		Success:        comps[ProductType.Index()].Value != "" && count <= limit,
		Components:     comps,
		Messages:       append(Messages{}, messages...),
	}
}
