package booking

import "fmt"

// Variant identifies which reservation form a submission comes from. Each
// variant keeps its own opening rules, email template and event metadata.
type Variant string

const (
	VariantBoutique Variant = "boutique" // shop coaching, the only one with pay-now
	VariantCoaching Variant = "coaching"
	VariantAtelier  Variant = "atelier"
)

type Config struct {
	TemplateID   string
	TitlePrefix  string
	Location     string
	TracksSlots  bool
	AllowsPayNow bool
}

var variantConfigs = map[Variant]Config{
	VariantBoutique: {
		TemplateID:   "template_cl6bc7u",
		TitlePrefix:  "Réservation Tricot",
		Location:     "Boutique Madame Tricote",
		TracksSlots:  true,
		AllowsPayNow: true,
	},
	VariantCoaching: {
		TemplateID:   "template_cl6bc7u",
		TitlePrefix:  "Réservation Tricot",
		Location:     "Boutique Madame Tricote",
		TracksSlots:  true,
		AllowsPayNow: false,
	},
	VariantAtelier: {
		TemplateID:   "template_j948yiu",
		TitlePrefix:  "Réservation Atelier",
		Location:     "Atelier Madame Tricote",
		TracksSlots:  false,
		AllowsPayNow: false,
	},
}

func (v Variant) Config() Config {
	return variantConfigs[v]
}

func ParseVariant(s string) (Variant, error) {
	v := Variant(s)
	if _, ok := variantConfigs[v]; !ok {
		return "", fmt.Errorf("unknown reservation variant %q", s)
	}
	return v, nil
}

// Coaching forfait prices in euro cents. An unknown label prices at 0 and is
// rejected before any checkout session is created.
var forfaitPrices = map[string]int{
	"1 mois": 2000,
	"6 mois": 8000,
	"1 an":   12000,
}

func AmountForForfait(forfait string) int {
	return forfaitPrices[forfait]
}

func ForfaitPrices() map[string]int {
	prices := make(map[string]int, len(forfaitPrices))
	for forfait, amount := range forfaitPrices {
		prices[forfait] = amount
	}
	return prices
}
