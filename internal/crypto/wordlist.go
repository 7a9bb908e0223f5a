package crypto

// words is the passphrase dictionary. Indices are drawn uniformly from it.
var words = [64]string{
	"apple", "ocean", "tiger", "green", "swift", "cloud", "piano", "river",
	"maple", "stone", "flame", "dream", "frost", "spark", "honey", "coral",
	"bloom", "lunar", "solar", "vivid", "crystal", "ember", "aurora", "zephyr",
	"galaxy", "nebula", "phoenix", "thunder", "velvet", "breeze", "meadow", "shadow",
	"silver", "golden", "cosmic", "mystic", "legend", "summit", "harbor", "forest",
	"castle", "knight", "dragon", "wizard", "raven", "falcon", "orbit", "quartz",
	"sunset", "winter", "spring", "autumn", "summer", "garden", "island", "desert",
	"arctic", "jungle", "safari", "voyage", "anchor", "bridge", "canvas", "horizon",
}

// Words returns a copy of the passphrase dictionary in draw order.
func Words() []string {
	return append([]string(nil), words[:]...)
}

// IsWord reports whether w is in the dictionary.
func IsWord(w string) bool {
	for _, word := range words {
		if word == w {
			return true
		}
	}
	return false
}
