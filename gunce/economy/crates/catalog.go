package crates

// RarityTier is a weighted category of avatar frames. Tier weights sum to
// 100; declaration order is the draw order and resolves boundary ties.
type RarityTier struct {
	Name            string
	DropWeight      int
	DuplicateRefund int64
}

// Tiers is the static rarity catalog, most common first.
var Tiers = []RarityTier{
	{Name: "common", DropWeight: 60, DuplicateRefund: 3},
	{Name: "rare", DropWeight: 25, DuplicateRefund: 5},
	{Name: "epic", DropWeight: 10, DuplicateRefund: 7},
	{Name: "legendary", DropWeight: 5, DuplicateRefund: 9},
}

// Frame is one cosmetic avatar frame. Names are unique across tiers and are
// what the owned set stores.
type Frame struct {
	Name string
	Tier string
}

// Frames is the static frame catalog.
var Frames = []Frame{
	{Name: "sade-beyaz", Tier: "common"},
	{Name: "kara-tahta", Tier: "common"},
	{Name: "kareli-defter", Tier: "common"},
	{Name: "mavi-cizgili", Tier: "common"},
	{Name: "kursun-kalem", Tier: "common"},
	{Name: "lale-bahcesi", Tier: "rare"},
	{Name: "gunbatimi", Tier: "rare"},
	{Name: "camlica-tepesi", Tier: "rare"},
	{Name: "bogazici", Tier: "epic"},
	{Name: "kapadokya", Tier: "epic"},
	{Name: "ayyildiz", Tier: "legendary"},
}

var framesByTier = func() map[string][]Frame {
	m := make(map[string][]Frame, len(Tiers))
	for _, f := range Frames {
		m[f.Tier] = append(m[f.Tier], f)
	}
	return m
}()

var tiersByName = func() map[string]RarityTier {
	m := make(map[string]RarityTier, len(Tiers))
	for _, t := range Tiers {
		m[t.Name] = t
	}
	return m
}()

// TierOf returns the rarity tier a frame belongs to.
func TierOf(frame Frame) RarityTier {
	return tiersByName[frame.Tier]
}

// LookupFrame returns the catalog frame for a name, or false when unknown.
func LookupFrame(name string) (Frame, bool) {
	for _, f := range Frames {
		if f.Name == name {
			return f, true
		}
	}
	return Frame{}, false
}

// tierForRoll maps a uniform roll in [0,100) to a tier by cumulative weight.
func tierForRoll(roll int) RarityTier {
	cumulative := 0
	for _, t := range Tiers {
		cumulative += t.DropWeight
		if roll < cumulative {
			return t
		}
	}
	// Weights sum to 100, so an in-range roll always lands above; keep the
	// last tier as a guard for malformed catalogs.
	return Tiers[len(Tiers)-1]
}
