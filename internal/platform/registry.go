package platform

// Platform describes one supported social network and its composing
// constraints. The table is static and loaded once at startup.
type Platform struct {
	ID             string `json:"id"`
	DisplayName    string `json:"displayName"`
	CharacterLimit int    `json:"characterLimit"`
	RequiresMedia  bool   `json:"requiresMedia"`
}

// DefaultCharacterLimit applies when no platform is selected.
const DefaultCharacterLimit = 280

var defaultPlatforms = []Platform{
	{ID: "twitter", DisplayName: "Twitter", CharacterLimit: 280},
	{ID: "facebook", DisplayName: "Facebook", CharacterLimit: 63206},
	{ID: "youtube", DisplayName: "YouTube", CharacterLimit: 5000, RequiresMedia: true},
	{ID: "tiktok", DisplayName: "TikTok", CharacterLimit: 2200},
	{ID: "pinterest", DisplayName: "Pinterest", CharacterLimit: 500},
	{ID: "threads", DisplayName: "Threads", CharacterLimit: 500},
	{ID: "snapchat", DisplayName: "Snapchat", CharacterLimit: 250, RequiresMedia: true},
	{ID: "whatsapp", DisplayName: "WhatsApp", CharacterLimit: 65536},
}

type Registry struct {
	platforms []Platform
	byID      map[string]Platform
}

func NewRegistry() *Registry {
	return newRegistry(defaultPlatforms)
}

func newRegistry(platforms []Platform) *Registry {
	byID := make(map[string]Platform, len(platforms))
	for _, p := range platforms {
		byID[p.ID] = p
	}
	return &Registry{platforms: platforms, byID: byID}
}

// Lookup returns the platform for id, or false for an unknown id. Callers
// must treat unknown ids as a validation error, never a silent skip.
func (r *Registry) Lookup(id string) (Platform, bool) {
	p, ok := r.byID[id]
	return p, ok
}

// All returns every supported platform in definition order.
func (r *Registry) All() []Platform {
	out := make([]Platform, len(r.platforms))
	copy(out, r.platforms)
	return out
}

// EffectiveCharacterLimit returns the minimum character limit across the
// given platform ids, the binding constraint when composing for several
// platforms at once. Unknown ids fall back to the default limit.
func (r *Registry) EffectiveCharacterLimit(ids []string) int {
	if len(ids) == 0 {
		return DefaultCharacterLimit
	}

	limit := 0
	for _, id := range ids {
		l := DefaultCharacterLimit
		if p, ok := r.byID[id]; ok {
			l = p.CharacterLimit
		}
		if limit == 0 || l < limit {
			limit = l
		}
	}
	return limit
}
