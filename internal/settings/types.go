package settings

// SocialLink is one platform entry of the media settings.
type SocialLink struct {
	URL       string `json:"url" validate:"omitempty,url"`
	IsVisible bool   `json:"isVisible"`
}

// MediaSettings holds the storefront social links.
type MediaSettings struct {
	Facebook  SocialLink `json:"facebook"`
	Instagram SocialLink `json:"instagram"`
	Twitter   SocialLink `json:"twitter"`
	TikTok    SocialLink `json:"tiktok"`
	YouTube   SocialLink `json:"youtube"`
	Pinterest SocialLink `json:"pinterest"`
}

// ContactSettings holds the contact page details.
type ContactSettings struct {
	Email       string `json:"email" validate:"omitempty,email"`
	Phone       string `json:"phone"`
	Location    string `json:"location"`
	Hours       string `json:"hours"`
	MapEmbedURL string `json:"mapEmbedUrl" validate:"omitempty,url"`
}

// DefaultMediaSettings lists every platform visible but without a URL, so
// nothing shows on the storefront until an admin fills it in.
func DefaultMediaSettings() MediaSettings {
	visible := SocialLink{IsVisible: true}
	return MediaSettings{
		Facebook:  visible,
		Instagram: visible,
		Twitter:   visible,
		TikTok:    visible,
		YouTube:   visible,
		Pinterest: visible,
	}
}

func DefaultContactSettings() ContactSettings {
	return ContactSettings{}
}

type platformLink struct {
	name string
	link *SocialLink
}

func (m *MediaSettings) platforms() []platformLink {
	return []platformLink{
		{"facebook", &m.Facebook},
		{"instagram", &m.Instagram},
		{"twitter", &m.Twitter},
		{"tiktok", &m.TikTok},
		{"youtube", &m.YouTube},
		{"pinterest", &m.Pinterest},
	}
}

// Public returns platform name to URL for links that are visible and set.
func (m MediaSettings) Public() map[string]string {
	out := map[string]string{}
	for _, p := range m.platforms() {
		if p.link.IsVisible && p.link.URL != "" {
			out[p.name] = p.link.URL
		}
	}
	return out
}
