package profile

// Built-in profiles for the three categories the tool supports. Weights are
// heuristic and intentionally coarse; the per-sport differences (patch heavier
// for football, autograph heavier for baseball) come from what moves in each
// hobby market.

var defaultTierBands = []TierBand{
	{Label: "Anchor", Fraction: 0.10},
	{Label: "Strong", Fraction: 0.25},
	{Label: "Average", Fraction: 0.40},
	{Label: "Weak", Fraction: 0.25},
}

func baseballCategories(autoWeight, patchWeight float64) []SignalCategory {
	return []SignalCategory{
		{Name: "rookie", Patterns: []string{`\brookie\b`, `\brc\b`, `1st bowman`, `first bowman`}, Weight: 3.0},
		{Name: "autograph", Patterns: []string{`autograph`, `\bauto\b`, `\bau\b`, `signature`, `signed`}, Weight: autoWeight},
		{Name: "patch", Patterns: []string{`patch`, `relic`, `jersey`, `memorabilia`, `game[- ]used`, `swatch`}, Weight: patchWeight},
		{Name: "combo", Patterns: []string{`combo`, `\bdual\b`, `\btriple\b`, `\bquad\b`}, Weight: 1.5},
		{Name: "leader", Patterns: []string{`league leader`, `\bleaders\b`, `award winner`, `\bmvp\b`, `all[- ]star`}, Weight: 1.0},
		{Name: "legend", Patterns: []string{`legend`, `hall of fame`, `\bhof\b`, `retired great`}, Weight: 2.0},
		{Name: "variation", Patterns: []string{`variation`, `\bsp\b`, `\bssp\b`, `short print`, `image swap`}, Weight: 1.5},
		{Name: "insert", Patterns: []string{`insert`, `\bparallel\b`, `refractor`, `\bchrome\b`, `\bprizm\b`, `holo`}, Weight: 1.0},
	}
}

var defaultCombos = []ComboRule{
	// Rookie patch autos sell superlinearly; the combined weight replaces the
	// member weights rather than stacking on top of them.
	{Categories: []string{"rookie", "autograph", "patch"}, Weight: 12.0},
	{Categories: []string{"rookie", "autograph"}, Weight: 8.5},
}

var mlb = &Profile{
	Key:            "mlb",
	DisplayName:    "Baseball (MLB)",
	Mode:           ModeTeam,
	ClosedUniverse: true,
	BaseWeight:     1.0,
	Categories:     baseballCategories(4.0, 2.5),
	Combos:         defaultCombos,
	Aliases: map[string]string{
		"montreal expos":       "Washington Nationals",
		"cleveland indians":    "Cleveland Guardians",
		"tampa bay devil rays": "Tampa Bay Rays",
		"florida marlins":      "Miami Marlins",
		"anaheim angels":       "Los Angeles Angels",
		"california angels":    "Los Angeles Angels",
	},
	Universe: []string{
		"Arizona Diamondbacks", "Atlanta Braves", "Baltimore Orioles",
		"Boston Red Sox", "Chicago Cubs", "Chicago White Sox",
		"Cincinnati Reds", "Cleveland Guardians", "Colorado Rockies",
		"Detroit Tigers", "Houston Astros", "Kansas City Royals",
		"Los Angeles Angels", "Los Angeles Dodgers", "Miami Marlins",
		"Milwaukee Brewers", "Minnesota Twins", "New York Mets",
		"New York Yankees", "Oakland Athletics", "Philadelphia Phillies",
		"Pittsburgh Pirates", "San Diego Padres", "San Francisco Giants",
		"Seattle Mariners", "St. Louis Cardinals", "Tampa Bay Rays",
		"Texas Rangers", "Toronto Blue Jays", "Washington Nationals",
	},
	MarketFactors: map[string]float64{
		"New York Yankees":    1.15,
		"Los Angeles Dodgers": 1.15,
		"Boston Red Sox":      1.10,
		"Chicago Cubs":        1.10,
		"Atlanta Braves":      1.05,
		"Oakland Athletics":   0.90,
		"Tampa Bay Rays":      0.90,
		"Kansas City Royals":  0.90,
		"Pittsburgh Pirates":  0.90,
		"Miami Marlins":       0.85,
	},
	TierBands: defaultTierBands,
}

var nba = &Profile{
	Key:            "nba",
	DisplayName:    "Basketball (NBA)",
	Mode:           ModeTeam,
	ClosedUniverse: true,
	BaseWeight:     1.0,
	Categories:     baseballCategories(4.5, 2.0),
	Combos:         defaultCombos,
	Aliases: map[string]string{
		"seattle supersonics": "Oklahoma City Thunder",
		"new jersey nets":     "Brooklyn Nets",
		"charlotte bobcats":   "Charlotte Hornets",
		"new orleans hornets": "New Orleans Pelicans",
		"vancouver grizzlies": "Memphis Grizzlies",
	},
	Universe: []string{
		"Atlanta Hawks", "Boston Celtics", "Brooklyn Nets",
		"Charlotte Hornets", "Chicago Bulls", "Cleveland Cavaliers",
		"Dallas Mavericks", "Denver Nuggets", "Detroit Pistons",
		"Golden State Warriors", "Houston Rockets", "Indiana Pacers",
		"Los Angeles Clippers", "Los Angeles Lakers", "Memphis Grizzlies",
		"Miami Heat", "Milwaukee Bucks", "Minnesota Timberwolves",
		"New Orleans Pelicans", "New York Knicks", "Oklahoma City Thunder",
		"Orlando Magic", "Philadelphia 76ers", "Phoenix Suns",
		"Portland Trail Blazers", "Sacramento Kings", "San Antonio Spurs",
		"Toronto Raptors", "Utah Jazz", "Washington Wizards",
	},
	MarketFactors: map[string]float64{
		"Los Angeles Lakers":    1.15,
		"Golden State Warriors": 1.15,
		"Boston Celtics":        1.10,
		"New York Knicks":       1.10,
		"Chicago Bulls":         1.05,
		"Memphis Grizzlies":     0.90,
		"Charlotte Hornets":     0.90,
		"Indiana Pacers":        0.90,
		"Washington Wizards":    0.90,
	},
	TierBands: defaultTierBands,
}

var nfl = &Profile{
	Key:            "nfl",
	DisplayName:    "Football (NFL)",
	Mode:           ModeTeam,
	ClosedUniverse: true,
	BaseWeight:     1.0,
	Categories:     baseballCategories(4.0, 3.0),
	Combos:         defaultCombos,
	Aliases: map[string]string{
		"oakland raiders":          "Las Vegas Raiders",
		"san diego chargers":       "Los Angeles Chargers",
		"st. louis rams":           "Los Angeles Rams",
		"washington redskins":      "Washington Commanders",
		"washington football team": "Washington Commanders",
	},
	Universe: []string{
		"Arizona Cardinals", "Atlanta Falcons", "Baltimore Ravens",
		"Buffalo Bills", "Carolina Panthers", "Chicago Bears",
		"Cincinnati Bengals", "Cleveland Browns", "Dallas Cowboys",
		"Denver Broncos", "Detroit Lions", "Green Bay Packers",
		"Houston Texans", "Indianapolis Colts", "Jacksonville Jaguars",
		"Kansas City Chiefs", "Las Vegas Raiders", "Los Angeles Chargers",
		"Los Angeles Rams", "Miami Dolphins", "Minnesota Vikings",
		"New England Patriots", "New Orleans Saints", "New York Giants",
		"New York Jets", "Philadelphia Eagles", "Pittsburgh Steelers",
		"San Francisco 49ers", "Seattle Seahawks", "Tampa Bay Buccaneers",
		"Tennessee Titans", "Washington Commanders",
	},
	MarketFactors: map[string]float64{
		"Dallas Cowboys":       1.15,
		"Kansas City Chiefs":   1.15,
		"San Francisco 49ers":  1.10,
		"Philadelphia Eagles":  1.10,
		"Green Bay Packers":    1.05,
		"Jacksonville Jaguars": 0.90,
		"Carolina Panthers":    0.90,
		"Tennessee Titans":     0.90,
	},
	TierBands: defaultTierBands,
}

func playerVariant(team *Profile, key, name string) *Profile {
	p := *team
	p.Key = key
	p.DisplayName = name
	p.Mode = ModePlayer
	// Player breaks price whatever names the checklist yields; there is no
	// fixed roster to close the universe over.
	p.ClosedUniverse = false
	p.Universe = nil
	p.Aliases = nil
	p.MarketFactors = nil
	return &p
}

func init() {
	register(mlb)
	register(nba)
	register(nfl)
	register(playerVariant(mlb, "mlb-players", "Baseball (MLB) - Pick Your Player"))
	register(playerVariant(nba, "nba-players", "Basketball (NBA) - Pick Your Player"))
	register(playerVariant(nfl, "nfl-players", "Football (NFL) - Pick Your Player"))
}
