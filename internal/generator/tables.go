package generator

import "github.com/MrSnakeDoc/healthvibe/internal/domain"

// keyword tables are scanned in order; the first substring hit wins.
type keywordEntry struct {
	keyword string
	value   string
}

type approach struct {
	name          string
	difficulty    domain.Difficulty
	effectiveness int
	sentence      string
}

var approaches = [...]approach{
	{
		name: "Traditional Herbal", difficulty: domain.DifficultyEasy, effectiveness: 4,
		sentence: "This traditional approach uses time-tested herbal wisdom passed down through generations. Gentle, safe, and effective for daily use.",
	},
	{
		name: "Modern Natural", difficulty: domain.DifficultyMedium, effectiveness: 5,
		sentence: "This modern approach combines traditional herbs with contemporary understanding of natural healing. Balanced, potent, and scientifically informed.",
	},
	{
		name: "Advanced Blend", difficulty: domain.DifficultyAdvanced, effectiveness: 5,
		sentence: "This advanced approach uses complex herbal combinations and precise preparation methods. Powerful, comprehensive, and designed for maximum effectiveness.",
	},
}

var baseNames = []keywordEntry{
	{"headache", "Headache Relief"},
	{"cold", "Cold Remedy"},
	{"cough", "Cough Syrup"},
	{"fever", "Fever-Reducing"},
	{"stomach", "Digestive Comfort"},
	{"sleep", "Sleep Aid"},
	{"stress", "Stress Relief"},
	{"anxiety", "Anxiety Calming"},
	{"pain", "Pain Relief"},
	{"inflammation", "Anti-Inflammatory"},
	{"skin", "Skin Healing"},
	{"acne", "Acne Clearing"},
	{"digestion", "Digestive Health"},
	{"energy", "Energy Booster"},
	{"immune", "Immune Support"},
}

const defaultCategory = "stress"

var categories = []keywordEntry{
	{"headache", "headaches"},
	{"cold", "cold-flu"},
	{"cough", "respiratory"},
	{"fever", "cold-flu"},
	{"stomach", "digestive"},
	{"sleep", "sleep"},
	{"stress", "stress"},
	{"anxiety", "stress"},
	{"pain", "headaches"},
	{"inflammation", "headaches"},
	{"skin", "skin"},
	{"acne", "skin"},
	{"digestion", "digestive"},
	{"energy", "stress"},
	{"immune", "cold-flu"},
}

var prepTimes = map[domain.Difficulty][]string{
	domain.DifficultyEasy:     {"5 minutes", "10 minutes", "15 minutes"},
	domain.DifficultyMedium:   {"15 minutes", "20 minutes", "25 minutes"},
	domain.DifficultyAdvanced: {"30 minutes", "45 minutes", "1 hour"},
}

var reliefTimes = []string{"15-30 minutes", "30-60 minutes", "1-2 hours", "2-4 hours", "Gradual improvement"}

type ingredientTier struct {
	pool []string
	pick int
}

var ingredients = map[domain.Difficulty]ingredientTier{
	domain.DifficultyEasy: {pick: 4, pool: []string{
		"Fresh ginger root (1 inch)",
		"Raw honey (2 tbsp)",
		"Lemon juice (1 tbsp)",
		"Hot water (1 cup)",
		"Fresh mint leaves (5-6)",
		"Chamomile flowers (1 tbsp)",
	}},
	domain.DifficultyMedium: {pick: 6, pool: []string{
		"Fresh ginger root (1 inch)",
		"Raw honey (2 tbsp)",
		"Lemon juice (1 tbsp)",
		"Hot water (1 cup)",
		"Turmeric powder (1 tsp)",
		"Cinnamon stick (1)",
		"Fresh mint leaves (5-6)",
		"Chamomile flowers (1 tbsp)",
		"Eucalyptus oil (2 drops)",
		"Coconut oil (1 tsp)",
	}},
	domain.DifficultyAdvanced: {pick: 8, pool: []string{
		"Fresh ginger root (2 inches)",
		"Raw honey (3 tbsp)",
		"Lemon juice (2 tbsp)",
		"Hot water (2 cups)",
		"Turmeric powder (2 tsp)",
		"Cinnamon stick (2)",
		"Fresh mint leaves (10-12)",
		"Chamomile flowers (2 tbsp)",
		"Eucalyptus oil (4 drops)",
		"Coconut oil (2 tsp)",
		"Cardamom pods (3)",
		"Star anise (1)",
		"Cloves (4)",
		"Black pepper (1/2 tsp)",
	}},
}

var instructions = map[domain.Difficulty][]string{
	domain.DifficultyEasy: {
		"Gather all ingredients",
		"Prepare fresh ingredients",
		"Combine ingredients as directed",
		"Allow to steep for 5-10 minutes",
		"Strain and serve",
		"Use immediately for best results",
	},
	domain.DifficultyMedium: {
		"Gather all ingredients and prepare workspace",
		"Clean and prepare fresh ingredients",
		"Follow specific preparation method",
		"Allow proper steeping time (10-15 minutes)",
		"Strain carefully and prepare for consumption",
		"Store remaining remedy in refrigerator",
		"Use as directed for optimal results",
	},
	domain.DifficultyAdvanced: {
		"Gather all ingredients and prepare sterile workspace",
		"Clean and prepare fresh ingredients with precision",
		"Follow advanced preparation techniques",
		"Allow extended steeping time (20-30 minutes)",
		"Strain through fine mesh and prepare for consumption",
		"Store remaining remedy in proper containers",
		"Use as directed with careful monitoring",
		"Document results for future reference",
	},
}

var precautions = []string{
	"Consult with a healthcare provider before use",
	"Discontinue if any adverse reactions occur",
	"Not recommended for children under 2 years",
	"Use in moderation during pregnancy",
	"Check for ingredient allergies before use",
}

var benefits = []string{
	"Natural and chemical-free approach",
	"Supports overall wellness",
	"Easy to prepare at home",
	"Cost-effective solution",
	"Traditional healing wisdom",
	"Minimal side effects when used properly",
}

const (
	photoLavender  = "1544947950-fa07a98d237f"
	photoGinger    = "1578662996442-48f60103fc96"
	photoMint      = "1559181567-c3190ca9959b"
	photoChamomile = "1518709268805-4e9042af2176"
	photoSage      = "1552053831-71594a27632d"
	photoRosemary  = "1506905925346-21bda4d32df4"
	photoAloe      = "1571019613454-1cb2f99b2d8b"
	photoGreenTea  = "1556909114-f6e7ad7d3136"
	photoTurmeric  = "1586201375761-83865001e31c"
)

func imageURL(photo string) string {
	return "https://images.unsplash.com/photo-" + photo + "?w=400&h=600&fit=crop&crop=center&auto=format&q=80"
}

var images = []keywordEntry{
	{"headache", photoLavender},
	{"cold", photoGinger},
	{"cough", photoGinger},
	{"fever", photoGinger},
	{"stomach", photoMint},
	{"digestive", photoMint},
	{"digestion", photoMint},
	{"sleep", photoChamomile},
	{"insomnia", photoChamomile},
	{"stress", photoSage},
	{"anxiety", photoSage},
	{"pain", photoRosemary},
	{"inflammation", photoRosemary},
	{"skin", photoAloe},
	{"acne", photoAloe},
	{"energy", photoGreenTea},
	{"immune", photoGinger},
	{"turmeric", photoTurmeric},
	{"ginger", photoGinger},
	{"lavender", photoLavender},
	{"mint", photoMint},
	{"chamomile", photoChamomile},
	{"rosemary", photoRosemary},
	{"sage", photoSage},
	{"thyme", photoGreenTea},
	{"basil", photoAloe},
	{"oregano", photoRosemary},
	{"eucalyptus", photoSage},
	{"aloe", photoAloe},
	{"green tea", photoGreenTea},
	{"herbal", photoChamomile},
	{"natural", photoSage},
}

var defaultImages = []string{
	photoChamomile,
	photoSage,
	photoGinger,
	photoMint,
	photoRosemary,
	photoLavender,
	photoTurmeric,
	photoAloe,
}
