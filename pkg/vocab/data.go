package vocab

// Встроенные словари значений. Списки соответствуют каталогу
// Apparels: категории, посадки, ткани и т.д.

var builtinValues = map[Field][]string{
	FieldCategory: {"top", "dress", "skirt", "pants"},

	FieldAvailableSizes: {"XS", "S", "M", "L", "XL"},

	FieldFit: {
		"Relaxed", "Stretch to fit", "Body hugging", "Tailored", "Flowy",
		"Bodycon", "Oversized", "Sleek and straight", "Slim",
	},

	FieldFabric: {
		"Linen", "Silk", "Cotton", "Rayon", "Satin", "Modal jersey", "Crepe",
		"Tencel", "Chambray", "Velvet", "Silk chiffon", "Bamboo jersey",
		"Linen blend", "Ribbed knit", "Tweed", "Organza overlay",
		"Sequined velvet", "Cotton-blend", "Crushed velvet", "Tulle", "Denim",
		"Wool-blend", "Scuba knit", "Linen-blend", "Polyester georgette",
		"Cotton twill", "Ribbed jersey", "Poly-crepe", "Viscose voile",
		"Vegan leather", "Lamé", "Polyester twill", "Stretch denim",
		"Tencel-blend", "Chiffon", "Cotton poplin", "Cotton gauze",
		"Lace overlay", "Tencel twill", "Sequined mesh", "Viscose",
	},

	FieldSleeveLength: {
		"Short Flutter Sleeves", "Cropped", "Long sleeves with button cuffs",
		"Sleeveless", "Full sleeves", "Short sleeves", "Quarter sleeves",
		"Straps", "Long sleeves", "Spaghetti straps", "Short flutter sleeves",
		"Tube", "Balloon sleeves", "Halter", "Bishop sleeves", "One-shoulder",
		"Cap sleeves", "Cropped long sleeves", "Bell sleeves",
		"Short puff sleeves",
	},

	FieldColorOrPrint: {
		"Pastel yellow", "Deep blue", "Floral print", "Red", "Off-white",
		"Pastel pink", "Aqua blue", "Green floral", "Charcoal", "Pastel coral",
		"Dusty rose", "Seafoam green", "Multicolor mosaic print",
		"Pastel floral", "Storm grey", "Cobalt blue", "Blush pink",
		"Sunflower yellow", "Aqua wave print", "Black iridescent",
		"Orchid purple", "Amber gold", "Watercolor petals",
		"Stone/black stripe", "Sage green", "Ruby red", "Soft teal",
		"Charcoal marled", "Lavender", "Ombre sunset", "Coral stripe",
		"Jet black", "Olive green", "Mustard yellow", "Silver metallic",
		"Teal abstract print", "Lavender haze", "Warm taupe",
		"Black polka dot", "Midnight navy sequin", "Sunshine yellow",
		"Charcoal pinstripe", "Plum purple", "Mid-wash indigo",
		"Emerald green", "Mustard windowpane check", "Sand beige",
		"Ruby red micro–dot", "Terracotta", "Heather quartz",
		"Goldenrod yellow", "Deep-wash indigo", "Sapphire blue",
		"Peony watercolor print", "Slate grey", "Emerald green grid check",
		"Bronze metallic", "Classic indigo", "Stone beige", "Sand taupe",
		"Graphite grey", "Platinum grey",
	},

	// "Vocation" — опечатка в исходном каталоге, встречается в данных
	FieldOccasion: {"Party", "Vacation", "Everyday", "Evening", "Work", "Vocation"},

	FieldNeckline: {
		"Sweetheart", "Square neck", "V neck", "Boat neck", "Tubetop",
		"Halter", "Cowl neck", "One-shoulder", "Collar", "Illusion bateau",
		"Round neck", "Polo collar",
	},

	FieldLength: {"Mini", "Short", "Midi", "Maxi"},

	FieldPantType: {
		"Wide-legged", "Ankle length", "Flared", "Wide hem", "Straight ankle",
		"Mid-rise", "Low-rise",
	},
}

// Встроенная таблица синонимов: разговорная лексика извлечённых
// атрибутов → канонические значения словаря.
var builtinSynonyms = map[Field]map[string]string{
	FieldCategory: {
		"tops":     "top",
		"dresses":  "dress",
		"skirts":   "skirt",
		"pant":     "pants",
		"trousers": "pants",
		"jeans":    "pants",
	},
	FieldFit: {
		"fitted":    "Body hugging",
		"tight":     "Body hugging",
		"loose":     "Relaxed",
		"baggy":     "Oversized",
		"oversize":  "Oversized",
		"slim fit":  "Slim",
		"skinny":    "Slim",
		"flowing":   "Flowy",
		"stretchy":  "Stretch to fit",
		"straight":  "Sleek and straight",
		"tailored fit": "Tailored",
	},
	FieldFabric: {
		"silky":        "Silk",
		"velvety":      "Velvet",
		"jean":         "Denim",
		"cotton blend": "Cotton-blend",
		"linen mix":    "Linen blend",
		"lame":         "Lamé",
	},
	FieldSleeveLength: {
		"long sleeve":  "Long sleeves",
		"short sleeve": "Short sleeves",
		"full sleeve":  "Full sleeves",
		"no sleeves":   "Sleeveless",
		"tank":         "Sleeveless",
		"strappy":      "Straps",
		"cap sleeve":   "Cap sleeves",
	},
	FieldColorOrPrint: {
		"black":     "Jet black",
		"white":     "Off-white",
		"floral":    "Floral print",
		"polka dot": "Black polka dot",
		"indigo":    "Classic indigo",
	},
	FieldOccasion: {
		"casual":    "Everyday",
		"daily":     "Everyday",
		"office":    "Work",
		"business":  "Work",
		"beach":     "Vacation",
		"holiday":   "Vacation",
		"night out": "Evening",
	},
	FieldNeckline: {
		"v-neck":    "V neck",
		"vneck":     "V neck",
		"crew neck": "Round neck",
		"crewneck":  "Round neck",
		"strapless": "Tubetop",
	},
	FieldLength: {
		"knee length":  "Short",
		"floor length": "Maxi",
		"ankle length": "Maxi",
	},
	FieldPantType: {
		"wide leg":  "Wide-legged",
		"flare":     "Flared",
		"high rise": "Mid-rise",
	},
}
