package terrain

// Biome is the categorical terrain class driving surface color and scatter
// rules.
type Biome int

const (
	Plains Biome = iota
	Forest
	Desert
	Snow
	Ocean
	Mountain
	SakuraGrove
)

var biomeNames = [...]string{
	Plains:      "Plains",
	Forest:      "Forest",
	Desert:      "Desert",
	Snow:        "Snow",
	Ocean:       "Ocean",
	Mountain:    "Mountain",
	SakuraGrove: "Sakura Grove",
}

func (b Biome) String() string {
	if int(b) < 0 || int(b) >= len(biomeNames) {
		return "Unknown"
	}
	return biomeNames[b]
}
