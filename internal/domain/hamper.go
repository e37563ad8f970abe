package domain

// HamperOption is a static catalog entry for a purchasable hamper.
// Entries are immutable for the duration of a session.
type HamperOption struct {
	ID        string   `bson:"id" json:"id"`
	Title     string   `bson:"title" json:"title"`
	Includes  []string `bson:"includes" json:"includes"`
	Price     float64  `bson:"price" json:"price"`
	ShowPrice bool     `bson:"show_price" json:"showPrice"`
}

// HamperOptions is the canonical hamper lineup.
var HamperOptions = []HamperOption{
	{
		ID:    "normal",
		Title: "Normal Hamper",
		Includes: []string{
			"Basic Rakhi",
			"Message Card",
			"Haldi Kum Kum",
			"No Photo Customization",
		},
		Price:     251,
		ShowPrice: true,
	},
	{
		ID:    "silver",
		Title: "Silver Hamper",
		Includes: []string{
			"1gm Silver Coin",
			"Classic Rakhi",
			"Dry Fruits + Chocolates",
			"Haldi Kum Kum",
			"2 Photo Customization",
		},
		Price:     551,
		ShowPrice: true,
	},
	{
		ID:    "gold",
		Title: "Gold Hamper",
		Includes: []string{
			"Ferrero Rocher Chocolates",
			"Premium Rakhi",
			"1 Silver Coin 2.5gm",
			"3 Photo Customization",
		},
		Price:     1001,
		ShowPrice: true,
	},
	{
		ID:    "custom",
		Title: "Custom Hamper",
		Includes: []string{
			"Choose Your Own Rakhis",
			"Select Your Add-ons",
			"Personalize Everything",
			"Complete Customization",
		},
		Price:     255,
		ShowPrice: false, // price varies with selected add-ons
	},
}

// HamperByID returns the catalog entry for id, or nil if unknown.
func HamperByID(id string) *HamperOption {
	for i := range HamperOptions {
		if HamperOptions[i].ID == id {
			return &HamperOptions[i]
		}
	}
	return nil
}

// MaxPhotos returns the photo customization allowance for a hamper.
// Unknown hamper ids get a single photo slot.
func MaxPhotos(hamperID string) int {
	switch hamperID {
	case "normal":
		return 0
	case "silver":
		return 2
	case "gold":
		return 3
	case "custom":
		return 1
	default:
		return 1
	}
}
