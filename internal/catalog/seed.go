package catalog

// seedEntries is the built-in catalog used when no catalog file is
// configured. It mirrors the products the kiosk shipped with.
var seedEntries = []Entry{
	{
		ID:       "neem-oil-spray",
		Name:     "Neem Oil Spray",
		Company:  "GreenLeaf Organics",
		Crops:    []string{"Tomato", "Chili", "Okra"},
		Pests:    []string{"Aphids", "Whiteflies", "Spider mites"},
		Usage:    "Dilute 5 ml per litre of water and spray on both leaf surfaces in the evening. Repeat every 7 days.",
		Warnings: "Do not spray during flowering hours when bees are active. Avoid application in direct midday sun.",
	},
	{
		ID:       "copper-fungicide",
		Name:     "Copper Fungicide",
		Company:  "AgroShield",
		Crops:    []string{"Grape", "Tomato", "Potato"},
		Pests:    []string{"Downy mildew", "Early blight", "Leaf spot"},
		Usage:    "Mix 2 g per litre of water. Apply as a preventive spray at 10 day intervals.",
		Warnings: "Harmful to aquatic life. Do not apply before rain. Wear gloves while mixing.",
	},
	{
		ID:       "imida-gold",
		Name:     "Imida Gold 17.8 SL",
		Company:  "KisanCare",
		Crops:    []string{"Cotton", "Rice", "Sugarcane"},
		Pests:    []string{"Jassids", "Brown planthopper", "Termites"},
		Usage:    "Use 0.5 ml per litre of water as a foliar spray. One application per crop stage.",
		Warnings: "Highly toxic to bees. Observe a 21 day pre-harvest interval.",
	},
	{
		ID:       "bio-npk-granules",
		Name:     "Bio NPK Granules",
		Company:  "TerraVita",
		Crops:    []string{"Wheat", "Maize", "Vegetables"},
		Usage:    "Broadcast 25 kg per acre at sowing and irrigate lightly.",
		Warnings: "Store in a dry place away from children and livestock.",
	},
	{
		ID:       "sulfex-wp",
		Name:     "Sulfex 80 WP",
		Company:  "AgroShield",
		Crops:    []string{"Grape", "Mango", "Cumin"},
		Pests:    []string{"Powdery mildew", "Mites"},
		Usage:    "Mix 3 g per litre of water and spray at first sign of infection.",
		Warnings: "Do not combine with oil-based sprays within 14 days.",
	},
	{
		ID:       "tricho-shakti",
		Name:     "Tricho Shakti",
		Company:  "GreenLeaf Organics",
		Crops:    []string{"Chickpea", "Groundnut", "Vegetables"},
		Pests:    []string{"Root rot", "Wilt"},
		Usage:    "Apply 2 kg per acre mixed with compost near the root zone before sowing.",
		Warnings: "Keep away from chemical fungicides for at least one week.",
	},
}
