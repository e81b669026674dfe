// Package carlookup holds the static vehicle reference table used to
// pre-select a wash size for a known brand and model.
package carlookup

import (
	"slices"
	"strings"
)

// Model is one vehicle entry. SizeCode matches Product.SizeCode in the
// catalog (S, M, XL, XXL, XXX).
type Model struct {
	Name     string `json:"name"`
	SizeCode string `json:"size_code"`
}

var database = map[string][]Model{
	"Toyota": {
		{Name: "Yaris", SizeCode: "S"},
		{Name: "Yaris Ativ", SizeCode: "M"},
		{Name: "Vios", SizeCode: "S"},
		{Name: "Sienta", SizeCode: "S"},
		{Name: "Altis", SizeCode: "M"},
		{Name: "Camry", SizeCode: "M"},
		{Name: "Corolla Cross", SizeCode: "M"},
		{Name: "C-HR", SizeCode: "M"},
		{Name: "Innova", SizeCode: "M"},
		{Name: "Veloz", SizeCode: "M"},
		{Name: "Avanza", SizeCode: "M"},
		{Name: "Hilux Revo", SizeCode: "XL"},
		{Name: "Hilux Vigo", SizeCode: "XL"},
		{Name: "Fortuner", SizeCode: "XL"},
		{Name: "Hilux Champ", SizeCode: "XL"},
		{Name: "Alphard", SizeCode: "XXL"},
		{Name: "Vellfire", SizeCode: "XXL"},
		{Name: "Majesty", SizeCode: "XXL"},
		{Name: "Hiace", SizeCode: "XXL"},
		{Name: "Commuter", SizeCode: "XXX"},
	},
	"Honda": {
		{Name: "Brio", SizeCode: "S"},
		{Name: "Jazz", SizeCode: "S"},
		{Name: "City", SizeCode: "S"},
		{Name: "WR-V", SizeCode: "S"},
		{Name: "Civic", SizeCode: "M"},
		{Name: "Accord", SizeCode: "M"},
		{Name: "HR-V", SizeCode: "M"},
		{Name: "CR-V", SizeCode: "M"},
		{Name: "BR-V", SizeCode: "M"},
		{Name: "Mobilio", SizeCode: "M"},
		{Name: "Freed", SizeCode: "M"},
		{Name: "Step Wagon", SizeCode: "XL"},
	},
	"Isuzu": {
		{Name: "D-Max", SizeCode: "XL"},
		{Name: "V-Cross", SizeCode: "XL"},
		{Name: "Mu-X", SizeCode: "XL"},
		{Name: "Mu-7", SizeCode: "XL"},
	},
	"Mitsubishi": {
		{Name: "Mirage", SizeCode: "S"},
		{Name: "Attrage", SizeCode: "S"},
		{Name: "Xpander", SizeCode: "M"},
		{Name: "Lancer", SizeCode: "M"},
		{Name: "Space Wagon", SizeCode: "M"},
		{Name: "Triton", SizeCode: "XL"},
		{Name: "Pajero Sport", SizeCode: "XL"},
	},
	"Suzuki": {
		{Name: "Swift", SizeCode: "S"},
		{Name: "Celerio", SizeCode: "S"},
		{Name: "Ciaz", SizeCode: "M"},
		{Name: "Ertiga", SizeCode: "M"},
		{Name: "XL7", SizeCode: "M"},
		{Name: "Jimny", SizeCode: "M"},
	},
	"Mazda": {
		{Name: "Mazda 2", SizeCode: "S"},
		{Name: "MX-5", SizeCode: "S"},
		{Name: "CX-3", SizeCode: "S"},
		{Name: "Mazda 3", SizeCode: "M"},
		{Name: "CX-30", SizeCode: "M"},
		{Name: "CX-5", SizeCode: "M"},
		{Name: "CX-8", SizeCode: "M"},
		{Name: "BT-50", SizeCode: "XL"},
	},
	"Nissan": {
		{Name: "March", SizeCode: "S"},
		{Name: "Note", SizeCode: "S"},
		{Name: "Almera", SizeCode: "M"},
		{Name: "Kicks", SizeCode: "M"},
		{Name: "Leaf", SizeCode: "M"},
		{Name: "Sylphy", SizeCode: "M"},
		{Name: "Teana", SizeCode: "M"},
		{Name: "Terra", SizeCode: "XL"},
		{Name: "Navara", SizeCode: "XL"},
		{Name: "Urvan", SizeCode: "XXX"},
	},
	"Ford": {
		{Name: "Focus", SizeCode: "S"},
		{Name: "Fiesta", SizeCode: "M"},
		{Name: "EcoSport", SizeCode: "M"},
		{Name: "Mustang", SizeCode: "M"},
		{Name: "Ranger", SizeCode: "XL"},
		{Name: "Raptor", SizeCode: "XL"},
		{Name: "Everest", SizeCode: "XL"},
	},
	"MG": {
		{Name: "MG3", SizeCode: "S"},
		{Name: "MG4", SizeCode: "S"},
		{Name: "MG5", SizeCode: "M"},
		{Name: "MG ZS", SizeCode: "M"},
		{Name: "MG HS", SizeCode: "M"},
		{Name: "MG EP", SizeCode: "M"},
		{Name: "Cyberster", SizeCode: "M"},
		{Name: "Extender", SizeCode: "XL"},
		{Name: "Maxus 9", SizeCode: "XXL"},
		{Name: "V80", SizeCode: "XXL"},
	},
	"BYD": {
		{Name: "Dolphin", SizeCode: "S"},
		{Name: "Atto 3", SizeCode: "M"},
		{Name: "Seal", SizeCode: "M"},
		{Name: "M6", SizeCode: "M"},
	},
	"Tesla": {
		{Name: "Model 3", SizeCode: "M"},
		{Name: "Model Y", SizeCode: "M"},
		{Name: "Model S", SizeCode: "M"},
		{Name: "Model X", SizeCode: "M"},
	},
	"GWM": {
		{Name: "Ora Good Cat", SizeCode: "S"},
		{Name: "Ora 07", SizeCode: "M"},
		{Name: "Haval Jolion", SizeCode: "M"},
		{Name: "Haval H6", SizeCode: "M"},
		{Name: "Tank 300", SizeCode: "XL"},
		{Name: "Tank 500", SizeCode: "XL"},
	},
	"Hyundai": {
		{Name: "Creta", SizeCode: "M"},
		{Name: "Stargazer", SizeCode: "M"},
		{Name: "Ioniq 5", SizeCode: "M"},
		{Name: "H1", SizeCode: "XXL"},
		{Name: "Staria", SizeCode: "XXL"},
	},
	"Mercedes-Benz": {
		{Name: "A-Class", SizeCode: "M"},
		{Name: "C-Class", SizeCode: "M"},
		{Name: "E-Class", SizeCode: "M"},
		{Name: "S-Class", SizeCode: "M"},
		{Name: "GLA", SizeCode: "M"},
		{Name: "GLC", SizeCode: "M"},
		{Name: "GLE", SizeCode: "M"},
		{Name: "G-Wagon", SizeCode: "XL"},
		{Name: "Vito", SizeCode: "XL"},
	},
	"BMW": {
		{Name: "Series 3", SizeCode: "M"},
		{Name: "Series 5", SizeCode: "M"},
		{Name: "Series 7", SizeCode: "M"},
		{Name: "X1", SizeCode: "M"},
		{Name: "X3", SizeCode: "M"},
		{Name: "X5", SizeCode: "M"},
		{Name: "X7", SizeCode: "M"},
	},
}

// Brands lists the known brands in alphabetical order.
func Brands() []string {
	brands := make([]string, 0, len(database))
	for brand := range database {
		brands = append(brands, brand)
	}
	slices.Sort(brands)
	return brands
}

// ModelsFor returns the models of a brand. Brand matching ignores case.
func ModelsFor(brand string) ([]Model, bool) {
	canonical, ok := canonicalBrand(brand)
	if !ok {
		return nil, false
	}
	models := make([]Model, len(database[canonical]))
	copy(models, database[canonical])
	return models, true
}

// Find locates one model within a brand. Both lookups ignore case; a
// miss returns ok=false and is not an error.
func Find(brand string, model string) (Model, bool) {
	canonical, ok := canonicalBrand(brand)
	if !ok {
		return Model{}, false
	}
	for _, entry := range database[canonical] {
		if strings.EqualFold(entry.Name, strings.TrimSpace(model)) {
			return entry, true
		}
	}
	return Model{}, false
}

func canonicalBrand(brand string) (string, bool) {
	trimmed := strings.TrimSpace(brand)
	for name := range database {
		if strings.EqualFold(name, trimmed) {
			return name, true
		}
	}
	return "", false
}
