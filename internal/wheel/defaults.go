package wheel

var defaultLabels = []string{
	"Arizona Diamondbacks", "Atlanta Braves", "Baltimore Orioles", "Boston Red Sox",
	"Chicago Cubs", "Chicago White Sox", "Cincinnati Reds", "Cleveland Guardians",
	"Colorado Rockies", "Detroit Tigers", "Houston Astros", "Kansas City Royals",
	"Los Angeles Angels", "Los Angeles Dodgers", "Miami Marlins", "Milwaukee Brewers",
	"Minnesota Twins", "New York Mets", "New York Yankees", "Oakland Athletics",
	"Philadelphia Phillies", "Pittsburgh Pirates", "San Diego Padres", "San Francisco Giants",
	"Seattle Mariners", "St. Louis Cardinals", "Tampa Bay Rays", "Texas Rangers",
	"Toronto Blue Jays", "Washington Nationals",
}

// DefaultOptions is the built-in list a host falls back to when the
// backend cannot supply one. Each team keeps its palette colour.
func DefaultOptions() []Option {
	return OptionsFromLabels(defaultLabels)
}

func DefaultLabels() []string {
	out := make([]string, len(defaultLabels))
	copy(out, defaultLabels)
	return out
}
