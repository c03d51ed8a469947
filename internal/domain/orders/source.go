package orders

// Source tags where an order originated
type Source string

const (
	SourceManual      Source = "manual"
	SourceLandingPage Source = "landing_page"
	SourceTikTokAd    Source = "tiktok_ad"
	SourceFacebookAd  Source = "facebook_ad"
	SourceInstagramAd Source = "instagram_ad"
	SourceSnapchatAd  Source = "snapchat_ad"
	SourceGoogleAd    Source = "google_ad"
)

// IsValid checks if the source is a known order source
func (s Source) IsValid() bool {
	switch s {
	case SourceManual, SourceLandingPage, SourceTikTokAd, SourceFacebookAd,
		SourceInstagramAd, SourceSnapchatAd, SourceGoogleAd:
		return true
	}
	return false
}

// String returns the string representation of the source
func (s Source) String() string {
	return string(s)
}
