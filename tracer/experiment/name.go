package experiment

import (
	"math/rand"
	"time"
)

var (
	adjectives = []string{
		"amber", "ashen", "azure", "bright", "burnished", "cobalt", "copper",
		"dappled", "dim", "dusky", "ember", "faint", "gilded", "glassy", "glossy",
		"golden", "hazy", "hollow", "indigo", "ivory", "lucent", "lunar", "matte",
		"mirrored", "misty", "molten", "opal", "pale", "pearl", "polished",
		"prismatic", "radiant", "rosy", "russet", "scarlet", "sheer", "silver",
		"smoky", "soft", "solar", "sparkling", "stark", "sunlit", "tinted",
		"twilight", "umber", "velvet", "vivid", "warm", "waxen", "winter",
	}

	nouns = []string{
		"aurora", "beam", "candle", "caustic", "comet", "corona", "crystal",
		"dawn", "dusk", "eclipse", "ember", "facet", "flare", "flicker", "glare",
		"gleam", "glimmer", "glint", "glow", "halo", "horizon", "lantern", "lens",
		"lustre", "mirror", "moon", "nebula", "noon", "orb", "penumbra", "prism",
		"quasar", "ray", "reflection", "shadow", "sheen", "shimmer", "sky",
		"spark", "spectrum", "sphere", "star", "sun", "sunset", "twinkle",
		"umbra", "vista", "zenith",
	}
)

// GenerateName creates a memorable identifier in the format "adjective-noun"
func GenerateName(rng *rand.Rand) string {
	return adjectives[rng.Intn(len(adjectives))] + "-" + nouns[rng.Intn(len(nouns))]
}

// GenerateID appends a UTC timestamp to a memorable name, so IDs sort by
// creation time within a name and never collide across seconds
func GenerateID(rng *rand.Rand, now time.Time) string {
	return GenerateName(rng) + "-" + now.UTC().Format("20060102-150405")
}
