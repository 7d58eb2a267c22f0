package views

// Element ids that action results patch.
const (
	TargetCandidateList = "candidateList"
	TargetPartyFilter   = "partyFilter"
	TargetMyVotes       = "myVotesList"
	TargetCartCount     = "cartCount"
	TargetCart          = "cartContainer"
	TargetShopGrid      = "shop-grid"
	TargetArticles      = "articlesGrid"
	TargetCookieBanner  = "cookieConsentBanner"
	TargetCookieModal   = "cookieModal"
	TargetToasts        = "toasts"
)

// Action markers written to data-action. The action package decodes them.
const (
	MarkerSaveVote       = "save-vote"
	MarkerRemoveVote     = "remove-vote"
	MarkerAddToCart      = "add-to-cart"
	MarkerRemoveCartItem = "remove-cart-item"
	MarkerFilterParty    = "filter-party"
	MarkerAcceptCookies  = "accept-cookies"
	MarkerRejectCookies  = "reject-cookies"
	MarkerToggleCookie   = "toggle-cookie"
	MarkerSaveCookies    = "save-cookies"
	MarkerRevokeCookies  = "revoke-cookies"
)

// Data attribute names carried by action triggers, without the data-
// prefix.
const (
	AttrName        = "name"
	AttrParty       = "party"
	AttrElectorate  = "electorate"
	AttrItemID      = "item-id"
	AttrItemPrice   = "item-price"
	AttrPreference  = "preference"
	AttrAnalytics   = "analytics"
	AttrAdvertising = "advertising"
)
