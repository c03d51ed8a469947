package valueobject

import (
	"fmt"
	"strings"
)

// Governorate is an Iraqi administrative province. It is both a customer
// address field and the dimension delivery fees are priced on.
type Governorate string

// The 18 Iraqi governorates, keyed by their common English names.
const (
	GovernorateBaghdad      Governorate = "baghdad"
	GovernorateBasra        Governorate = "basra"
	GovernorateNineveh      Governorate = "nineveh"
	GovernorateErbil        Governorate = "erbil"
	GovernorateSulaymaniyah Governorate = "sulaymaniyah"
	GovernorateDuhok        Governorate = "duhok"
	GovernorateKirkuk       Governorate = "kirkuk"
	GovernorateAnbar        Governorate = "anbar"
	GovernorateBabil        Governorate = "babil"
	GovernorateKarbala      Governorate = "karbala"
	GovernorateNajaf        Governorate = "najaf"
	GovernorateQadisiyah    Governorate = "qadisiyah"
	GovernorateMuthanna     Governorate = "muthanna"
	GovernorateDhiQar       Governorate = "dhi_qar"
	GovernorateMaysan       Governorate = "maysan"
	GovernorateWasit        Governorate = "wasit"
	GovernorateSaladin      Governorate = "saladin"
	GovernorateDiyala       Governorate = "diyala"
)

// AllGovernorates returns the canonical list of governorates
func AllGovernorates() []Governorate {
	return []Governorate{
		GovernorateBaghdad, GovernorateBasra, GovernorateNineveh,
		GovernorateErbil, GovernorateSulaymaniyah, GovernorateDuhok,
		GovernorateKirkuk, GovernorateAnbar, GovernorateBabil,
		GovernorateKarbala, GovernorateNajaf, GovernorateQadisiyah,
		GovernorateMuthanna, GovernorateDhiQar, GovernorateMaysan,
		GovernorateWasit, GovernorateSaladin, GovernorateDiyala,
	}
}

// ParseGovernorate parses a governorate from its string form (case-insensitive)
func ParseGovernorate(s string) (Governorate, error) {
	g := Governorate(strings.ToLower(strings.TrimSpace(s)))
	if !g.IsValid() {
		return "", fmt.Errorf("unknown governorate: %q", s)
	}
	return g, nil
}

// IsValid checks if the governorate is in the canonical set
func (g Governorate) IsValid() bool {
	for _, known := range AllGovernorates() {
		if g == known {
			return true
		}
	}
	return false
}

// String returns the string representation of the governorate
func (g Governorate) String() string {
	return string(g)
}

// arabicNames maps governorates to their Arabic display names.
// Display only; the English key is what gets persisted.
var arabicNames = map[Governorate]string{
	GovernorateBaghdad:      "بغداد",
	GovernorateBasra:        "البصرة",
	GovernorateNineveh:      "نينوى",
	GovernorateErbil:        "أربيل",
	GovernorateSulaymaniyah: "السليمانية",
	GovernorateDuhok:        "دهوك",
	GovernorateKirkuk:       "كركوك",
	GovernorateAnbar:        "الأنبار",
	GovernorateBabil:        "بابل",
	GovernorateKarbala:      "كربلاء",
	GovernorateNajaf:        "النجف",
	GovernorateQadisiyah:    "القادسية",
	GovernorateMuthanna:     "المثنى",
	GovernorateDhiQar:       "ذي قار",
	GovernorateMaysan:       "ميسان",
	GovernorateWasit:        "واسط",
	GovernorateSaladin:      "صلاح الدين",
	GovernorateDiyala:       "ديالى",
}

// ArabicName returns the Arabic display name for the governorate
func (g Governorate) ArabicName() string {
	if name, ok := arabicNames[g]; ok {
		return name
	}
	return string(g)
}
