package measurement

import (
	"regexp"
	"strings"

	"github.com/felddy/weewx-home-assistant/internal/units"
)

// numericSuffix splits a key like "extraTemp3" into ("extraTemp", "3").
var numericSuffix = regexp.MustCompile(`^(.*?)([0-9]+)$`)

// heuristicClass associates a keyword found in a derived label with the
// exemplar key whose icon, device class, integration, and enablement
// the guess borrows.
type heuristicClass struct {
	keyword  string
	exemplar string
}

// heuristicClasses is the ordered keyword set for last-resort key
// classification. First match wins. The list is deliberately small and
// extensible; it is not a rules engine.
var heuristicClasses = []heuristicClass{
	{"alarm", "extraAlarm"},
	{"battery status", "batteryStatus"},
	{"humidity", "outHumidity"},
	{"pressure", "pressure"},
	{"temperature", "outTemp"},
	{"wind", "windSpeed"},
}

// prefixExpansions spells out the abbreviated first tokens of derived
// labels. At most one entry applies to a label.
var prefixExpansions = []struct {
	prefix   string
	expanded string
}{
	{"In ", "Indoor "},
	{"Out ", "Outdoor "},
	{"Tx ", "Transmit "},
	{"Rx ", "Receive "},
}

// ResolveKey resolves a measurement key to its configuration.
//
// Resolution order, first match wins:
//
//  1. Exact match against the key table.
//  2. Numeric-suffix stripping: "extraTemp3" resolves through the
//     "extraTemp" entry with " 3" appended to its name.
//  3. Heuristic fallback: a human-readable label derived from the key,
//     classified by keyword against exemplar entries.
//
// ResolveKey is pure and never fails; unknown keys yield a minimal
// configuration with only a derived name. Results are not cached here;
// caching is the Registry's job.
func ResolveKey(key string) KeyConfig {
	if cfg, ok := keyConfigs[key]; ok {
		return copyKeyConfig(cfg)
	}

	if m := numericSuffix.FindStringSubmatch(key); m != nil {
		if cfg, ok := keyConfigs[m[1]]; ok {
			cfg = copyKeyConfig(cfg)
			cfg.Metadata.Name = cfg.Metadata.Name + " " + m[2]
			return cfg
		}
	}

	return guessKeyConfig(key)
}

// guessKeyConfig builds a best-effort configuration for a key with no
// table entry, classifying the derived label by keyword.
func guessKeyConfig(key string) KeyConfig {
	label := deriveLabel(key)
	lower := strings.ToLower(label)

	for _, class := range heuristicClasses {
		if strings.Contains(lower, class.keyword) {
			exemplar := keyConfigs[class.exemplar]
			return KeyConfig{
				Metadata: KeyMetadata{
					Name:             label,
					Icon:             exemplar.Metadata.Icon,
					DeviceClass:      exemplar.Metadata.DeviceClass,
					EnabledByDefault: copyBool(exemplar.Metadata.EnabledByDefault),
				},
				Integration: exemplar.Integration,
			}
		}
	}

	return KeyConfig{Metadata: KeyMetadata{Name: label}}
}

// deriveLabel turns a camel-case measurement key into a display label:
// digit runs are spaced, camel-case word boundaries split, words
// title-cased, and the In/Out/Tx/Rx first-token prefixes expanded.
//
// "someHumiditySensor" becomes "Some Humidity Sensor",
// "txBatteryStatus" becomes "Transmit Battery Status".
func deriveLabel(key string) string {
	var b strings.Builder
	var prev rune
	for i, r := range key {
		if i > 0 && prev != ' ' {
			digitRunStart := r >= '0' && r <= '9' && !(prev >= '0' && prev <= '9')
			upperBoundary := r >= 'A' && r <= 'Z'
			if digitRunStart || upperBoundary {
				b.WriteByte(' ')
			}
		}
		b.WriteRune(r)
		prev = r
	}

	words := strings.Fields(b.String())
	for i, word := range words {
		words[i] = titleWord(word)
	}
	label := strings.Join(words, " ")

	for _, e := range prefixExpansions {
		if strings.HasPrefix(label, e.prefix) {
			label = e.expanded + label[len(e.prefix):]
			break
		}
	}
	return label
}

// titleWord upper-cases the first letter of a word and lower-cases the
// rest.
func titleWord(word string) string {
	if word == "" {
		return word
	}
	return strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
}

// Resolver resolves unit display metadata for measurement keys.
// The zero value is not usable; construct with NewResolver.
type Resolver struct {
	source UnitSource
	logger Logger
}

// NewResolver creates a Resolver backed by the given unit source.
// A nil logger disables diagnostics.
func NewResolver(source UnitSource, logger Logger) *Resolver {
	if logger == nil {
		logger = noopLogger{}
	}
	return &Resolver{source: source, logger: logger}
}

// ResolveUnit resolves the display unit metadata for a key under a
// unit system.
//
// Keys with no standard unit degrade through the derived families
// before giving up: "*ET" keys resolve through the base "ET" unit, and
// the astronomical timestamps resolve through "dateTime". The usUnits
// key is intentionally unit-less and produces no diagnostic.
//
// ResolveUnit never fails; at worst the result carries no display unit.
func (r *Resolver) ResolveUnit(key string, system units.System) UnitMetadata {
	unit, _ := r.source(system, key)

	if unit == "" {
		switch {
		case key == "usUnits":
			// Reports the active unit system itself; no unit to resolve.
			return UnitMetadata{}
		case key != "ET" && strings.HasSuffix(key, "ET"):
			return r.ResolveUnit("ET", system)
		case key == "sunrise" || key == "sunset" || key == "stormStart":
			return r.ResolveUnit("dateTime", system)
		default:
			r.logger.Warn("no unit found for measurement",
				"key", key,
				"unit_system", system.String(),
			)
			return UnitMetadata{}
		}
	}

	if meta, ok := unitMetadata[unit]; ok {
		return copyUnitMetadata(meta)
	}
	// Unknown to the display table: show the canonical unit verbatim.
	return UnitMetadata{DisplayUnit: &unit}
}

// copyKeyConfig returns a deep copy so callers can never mutate the
// static tables.
func copyKeyConfig(cfg KeyConfig) KeyConfig {
	cfg.Metadata.EnabledByDefault = copyBool(cfg.Metadata.EnabledByDefault)
	if cfg.Metadata.Attributes != nil {
		attrs := make(map[string]string, len(cfg.Metadata.Attributes))
		for k, v := range cfg.Metadata.Attributes {
			attrs[k] = v
		}
		cfg.Metadata.Attributes = attrs
	}
	return cfg
}

// copyUnitMetadata returns a deep copy of a unit table entry.
func copyUnitMetadata(meta UnitMetadata) UnitMetadata {
	if meta.DisplayUnit != nil {
		u := *meta.DisplayUnit
		meta.DisplayUnit = &u
	}
	if meta.Precision != nil {
		p := *meta.Precision
		meta.Precision = &p
	}
	return meta
}

func copyBool(b *bool) *bool {
	if b == nil {
		return nil
	}
	v := *b
	return &v
}
