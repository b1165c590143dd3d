package catalog

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/spf13/cast"

	"storefront/models"
)

var categoryMap = map[string]string{
	"swords":      "Weapons",
	"armor":       "Armor",
	"accessories": "Accessories",
	"techniques":  "Accessories",
}

var breathingStyleMap = map[string]string{
	"flame":   "Flame Breathing",
	"water":   "Water Breathing",
	"thunder": "Thunder Breathing",
	"stone":   "Stone Breathing",
	"wind":    "Wind Breathing",
	"mist":    "Mist Breathing",
	"serpent": "Serpent Breathing",
	"sound":   "Sound Breathing",
	"flower":  "Flower Breathing",
	"insect":  "Insect Breathing",
	"love":    "Love Breathing",
	"beast":   "Beast Breathing",
	"sun":     "Sun Breathing",
}

var weaponTypeMap = map[string]string{
	"katana":    "Katana",
	"tanto":     "Katana",
	"wakizashi": "Katana",
	"naginata":  "Katana",
	"bow":       "Throwing",
	"other":     "Support Gear",
}

var rarityMap = map[string]string{
	"common":    "Common",
	"uncommon":  "Uncommon",
	"rare":      "Rare",
	"epic":      "Epic",
	"legendary": "Legendary",
}

var (
	nonSlug   = regexp.MustCompile(`[^a-z0-9]+`)
	nonNumber = regexp.MustCompile(`[^0-9.]`)
)

// Slugify lowercases name and joins its alphanumeric runs with dashes.
func Slugify(name string) string {
	return strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(name), "-"), "-")
}

// ParseWeight accepts numbers or strings such as "1.2 kg".
func ParseWeight(v interface{}) (float64, bool) {
	switch w := v.(type) {
	case nil:
		return 0, false
	case string:
		f, err := cast.ToFloat64E(nonNumber.ReplaceAllString(w, ""))
		return f, err == nil && f != 0
	default:
		f, err := cast.ToFloat64E(w)
		return f, err == nil
	}
}

// Change describes one field rewritten by Normalize.
type Change struct {
	Field string
	From  string
	To    string
}

func (c Change) String() string {
	return fmt.Sprintf("%s %q -> %q", c.Field, c.From, c.To)
}

// Normalize rewrites legacy lowercase enum values to their current names and
// fills a missing slug. It returns the fields it changed.
func Normalize(p *models.Product) []Change {
	var changes []Change
	remap := func(field string, v *string, table map[string]string) {
		if to, ok := table[*v]; ok && to != *v {
			changes = append(changes, Change{Field: field, From: *v, To: to})
			*v = to
		}
	}
	remap("category", &p.Category, categoryMap)
	remap("breathingStyle", &p.BreathingStyle, breathingStyleMap)
	remap("weaponType", &p.WeaponType, weaponTypeMap)
	remap("rarity", &p.Rarity, rarityMap)

	if p.Slug == "" && p.Name != "" {
		p.Slug = Slugify(p.Name)
		changes = append(changes, Change{Field: "slug", To: p.Slug})
	}
	return changes
}
