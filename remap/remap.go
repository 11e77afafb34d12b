// Package remap applies user-defined field renames to flattened records
// before they are written out, and reverses them when notes are read back.
//
// Rules are scoped per media type and persisted as json in the config
// directory. The type discriminator key itself is never remappable; every
// other transformation must survive a round trip.
package remap

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/mediadex-cli/mediadex/filesystem"
	"github.com/mediadex-cli/mediadex/media"
	"github.com/mediadex-cli/mediadex/where"
	"github.com/spf13/afero"
)

// TypeKey is the flattened discriminator field. It routes a note back to its
// record variant, so no rule may touch it.
const TypeKey = "type"

// Action is what a rule does to its field.
type Action string

const (
	// ActionRename writes the field under a different key.
	ActionRename Action = "rename"
	// ActionRemove drops the field entirely. Not reversible.
	ActionRemove Action = "remove"
	// ActionWikilink wraps the value in [[...]] so markdown tooling treats it
	// as an internal link.
	ActionWikilink Action = "wikilink"
)

// fieldKeyPattern constrains rule keys to plain identifier-style names.
var fieldKeyPattern = regexp.MustCompile(`^[a-zA-Z_]+$`)

// Rule transforms one field of a flattened record.
type Rule struct {
	Field  string `json:"field"`
	Action Action `json:"action"`
	// To names the target key for renames; ignored otherwise.
	To string `json:"to,omitempty"`
}

// Validate rejects rules that could corrupt a record or be impossible to reverse.
func (r Rule) Validate() error {
	if !fieldKeyPattern.MatchString(r.Field) {
		return fmt.Errorf("invalid field key %q", r.Field)
	}
	if r.Field == TypeKey {
		return fmt.Errorf("the %q field cannot be remapped", TypeKey)
	}

	switch r.Action {
	case ActionRename:
		if !fieldKeyPattern.MatchString(r.To) {
			return fmt.Errorf("invalid rename target %q", r.To)
		}
		if r.To == TypeKey {
			return fmt.Errorf("cannot rename %q onto the %q field", r.Field, TypeKey)
		}
	case ActionRemove, ActionWikilink:
		if r.To != "" {
			return fmt.Errorf("action %q takes no rename target", r.Action)
		}
	default:
		return fmt.Errorf("unknown action %q", r.Action)
	}

	return nil
}

// Rules holds the per-media-type rule lists, keyed by type tag.
type Rules map[media.Type][]Rule

// Validate checks every rule and rejects rename collisions within a type.
// Collisions are detected against the set of keys a record of that type can
// carry at each point in the rule list, so a rename onto a still-live field
// fails while chained renames that vacate the target first pass.
func (rules Rules) Validate() error {
	for mediaType, list := range rules {
		if _, ok := media.ParseType(string(mediaType)); !ok {
			return fmt.Errorf("unknown media type %q", mediaType)
		}

		keys, err := media.FieldKeys(mediaType)
		if err != nil {
			return err
		}

		live := make(map[string]struct{}, len(keys))
		for _, key := range keys {
			live[key] = struct{}{}
		}

		for _, rule := range list {
			if err := rule.Validate(); err != nil {
				return fmt.Errorf("%s: %w", mediaType, err)
			}

			switch rule.Action {
			case ActionRename:
				if _, taken := live[rule.To]; taken {
					return fmt.Errorf("%s: renaming %q to %q would overwrite the %q field", mediaType, rule.Field, rule.To, rule.To)
				}
				delete(live, rule.Field)
				live[rule.To] = struct{}{}
			case ActionRemove:
				delete(live, rule.Field)
			}
		}
	}
	return nil
}

// Load reads the persisted rules. A missing file means no rules yet.
func Load() (Rules, error) {
	contents, err := afero.ReadFile(filesystem.API(), where.Remap())
	if err != nil {
		if os.IsNotExist(err) {
			return Rules{}, nil
		}
		return nil, err
	}

	var rules Rules
	if err := json.Unmarshal(contents, &rules); err != nil {
		return nil, fmt.Errorf("malformed remap rules: %w", err)
	}
	if err := rules.Validate(); err != nil {
		return nil, err
	}

	return rules, nil
}

// Save validates and persists the rules.
func Save(rules Rules) error {
	if err := rules.Validate(); err != nil {
		return err
	}

	contents, err := json.MarshalIndent(rules, "", "  ")
	if err != nil {
		return err
	}

	return afero.WriteFile(filesystem.API(), where.Remap(), contents, os.ModePerm)
}

// Convert applies the rules for the record's type to a flattened record.
// The input map is not modified.
func (rules Rules) Convert(mediaType media.Type, flat map[string]any) map[string]any {
	converted := make(map[string]any, len(flat))
	for k, v := range flat {
		converted[k] = v
	}

	for _, rule := range rules[mediaType] {
		value, present := converted[rule.Field]
		if !present {
			continue
		}

		switch rule.Action {
		case ActionRemove:
			delete(converted, rule.Field)
		case ActionRename:
			delete(converted, rule.Field)
			converted[rule.To] = value
		case ActionWikilink:
			converted[rule.Field] = wikilink(value)
		}
	}

	return converted
}

// ConvertBack reverses renames and wikilinks so a read-back note matches the
// record shape. Removed fields are gone and stay gone.
func (rules Rules) ConvertBack(mediaType media.Type, mapped map[string]any) map[string]any {
	restored := make(map[string]any, len(mapped))
	for k, v := range mapped {
		restored[k] = v
	}

	// Reverse in reverse rule order so chained renames unwind correctly.
	list := rules[mediaType]
	for i := len(list) - 1; i >= 0; i-- {
		rule := list[i]

		switch rule.Action {
		case ActionRename:
			value, present := restored[rule.To]
			if !present {
				continue
			}
			delete(restored, rule.To)
			restored[rule.Field] = value
		case ActionWikilink:
			value, present := restored[rule.Field]
			if !present {
				continue
			}
			restored[rule.Field] = unwikilink(value)
		}
	}

	return restored
}

// wikilink wraps scalar string values, or every element of a string slice.
func wikilink(value any) any {
	switch v := value.(type) {
	case string:
		if v == "" {
			return v
		}
		return "[[" + v + "]]"
	case []any:
		wrapped := make([]any, len(v))
		for i, element := range v {
			wrapped[i] = wikilink(element)
		}
		return wrapped
	case []string:
		wrapped := make([]any, len(v))
		for i, element := range v {
			wrapped[i] = wikilink(element)
		}
		return wrapped
	default:
		return value
	}
}

func unwikilink(value any) any {
	switch v := value.(type) {
	case string:
		if strings.HasPrefix(v, "[[") && strings.HasSuffix(v, "]]") {
			return strings.TrimSuffix(strings.TrimPrefix(v, "[["), "]]")
		}
		return v
	case []any:
		unwrapped := make([]any, len(v))
		for i, element := range v {
			unwrapped[i] = unwikilink(element)
		}
		return unwrapped
	default:
		return value
	}
}
