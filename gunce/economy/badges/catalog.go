package badges

// Badge is a one-time achievement flag. The reward it carries is fixed
// server-side; see utils.BadgeExpReward and utils.BadgeGemReward.
type Badge struct {
	ID          string
	DisplayName string
	Description string
}

// Catalog is the static badge set of the platform. IDs are stable and
// referenced by the content services when they detect an achievement.
var Catalog = []Badge{
	{ID: "ilk-yazi", DisplayName: "İlk Yazı", Description: "İlk blog yazını yayınladın"},
	{ID: "on-yazi", DisplayName: "Üretken Yazar", Description: "On yazı yayınladın"},
	{ID: "ilk-yorum", DisplayName: "İlk Yorum", Description: "İlk yorumunu yaptın"},
	{ID: "populer-yazi", DisplayName: "Popüler Yazı", Description: "Bir yazın 100 beğeni aldı"},
	{ID: "gunluk-seri", DisplayName: "Günlük Seri", Description: "Yedi gün üst üste giriş yaptın"},
	{ID: "ilk-sandik", DisplayName: "İlk Sandık", Description: "İlk sandığını açtın"},
	{ID: "koleksiyoncu", DisplayName: "Koleksiyoncu", Description: "On çerçeve topladın"},
}

var catalogByID = func() map[string]Badge {
	m := make(map[string]Badge, len(Catalog))
	for _, b := range Catalog {
		m[b.ID] = b
	}
	return m
}()

// Lookup returns the badge for an id, or false for unknown ids.
func Lookup(id string) (Badge, bool) {
	b, ok := catalogByID[id]
	return b, ok
}

// KnownIDs returns the catalog ids in declaration order.
func KnownIDs() []string {
	ids := make([]string, len(Catalog))
	for i, b := range Catalog {
		ids[i] = b.ID
	}
	return ids
}
