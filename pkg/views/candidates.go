package views

import (
	"github.com/electa-dev/electa/pkg/catalog"
	"github.com/electa-dev/electa/pkg/persist"
	. "github.com/electa-dev/electa/pkg/vdom"
)

// Empty-state and fallback texts.
const (
	NoCandidatesText = "No candidates available for this electorate."
	NoVotesText      = "You have not saved any votes yet."
	AllPartiesText   = "All Parties"
	SaveVoteText     = "Save Vote"
	SavedVoteText    = "Saved ✓"
	NoBioText        = "No biography available for this candidate."
)

// CandidateList renders the candidates of an electorate whose normalised
// party equals party ("" means all). Each save button reflects whether the
// candidate is among votes.
func CandidateList(dir catalog.Directory, electorate, party string, votes []persist.Vote) *VNode {
	candidates := dir.Filter(electorate, party)
	container := []any{ID(TargetCandidateList), Class("candidate-list"), Data(AttrElectorate, electorate)}

	if len(candidates) == 0 {
		return Div(append(container, P(Class("empty-state"), NoCandidatesText))...)
	}

	saved := persist.SavedSet(votes)
	cards := Range(candidates, func(c catalog.Candidate, _ int) *VNode {
		return candidateCard(c, electorate, saved[persist.VoteKey{Name: c.Name, Electorate: electorate}])
	})
	return Div(append(container, cards)...)
}

func candidateCard(c catalog.Candidate, electorate string, isSaved bool) *VNode {
	meta := catalog.NormalizeParty(c.Party)
	if c.Profession != "" {
		meta += " · " + c.Profession
	}

	label := SaveVoteText
	if isSaved {
		label = SavedVoteText
	}

	return Article(Class("candidate-card"),
		H3(c.Name),
		P(Class("vote-meta"), meta),
		P(Strong("Bio:"), " "+c.Bio),
		Div(Class("candidate-actions"),
			A(Href(ProfilePath(catalog.CandidateID(electorate, c.Name))), Class("view-profile-btn"), "View Profile"),
			Button(
				Class("save-btn", savedClass(isSaved)),
				Type("button"),
				Action(MarkerSaveVote),
				Data(AttrName, c.Name),
				Data(AttrParty, c.Party),
				Data(AttrElectorate, electorate),
				AriaPressed(isSaved),
				label,
			),
		),
	)
}

func savedClass(saved bool) string {
	if saved {
		return "saved"
	}
	return ""
}

// PartyFilter renders the party select: "All Parties" followed by the
// sorted unique normalised parties, with selected marked.
func PartyFilter(dir catalog.Directory, electorate, selected string) *VNode {
	options := []*VNode{Option(Value(""), Selected(selected == ""), AllPartiesText)}
	for _, p := range dir.Parties(electorate) {
		options = append(options, Option(Value(p), Selected(p == selected), p))
	}
	return Select(
		ID(TargetPartyFilter),
		Name("party"),
		Class("party-filter"),
		AriaLabel("Filter by party"),
		Action(MarkerFilterParty),
		Data(AttrElectorate, electorate),
		options,
	)
}

// MyVotes renders the saved votes in save order.
func MyVotes(votes []persist.Vote) *VNode {
	if len(votes) == 0 {
		return Div(ID(TargetMyVotes), Class("my-votes-list"), P(Class("empty-state"), NoVotesText))
	}
	return Div(ID(TargetMyVotes), Class("my-votes-list"),
		Range(votes, func(v persist.Vote, _ int) *VNode {
			return Article(Class("my-vote-card"),
				H3(v.Name),
				P(Class("vote-meta"), v.Party+" · "+v.Electorate),
				Button(
					Class("remove-vote-btn"),
					Type("button"),
					Action(MarkerRemoveVote),
					Data(AttrName, v.Name),
					Data(AttrElectorate, v.Electorate),
					"Remove",
				),
			)
		}),
	)
}

// CandidateMeta renders the data provenance line.
func CandidateMeta(m catalog.Metadata) *VNode {
	return P(Class("candidate-meta"), Data("candidate-meta", ""), m.Message())
}

// ElectorateIndex links every electorate page.
func ElectorateIndex(dir catalog.Directory) *VNode {
	electorates := dir.Electorates()
	if len(electorates) == 0 {
		return Section(Class("page-section"),
			H1("Electorates"),
			P(Class("empty-state"), NoCandidatesText),
		)
	}
	return Section(Class("page-section"),
		H1("Electorates"),
		P(Class("section-intro"), "Choose your electorate to see who is standing."),
		Ul(Class("electorate-list"),
			Range(electorates, func(e string, _ int) *VNode {
				return Li(A(Href(ElectoratePath(e)), Class("electorate-link"), e))
			}),
		),
		CandidateMeta(dir.Metadata),
	)
}

// ElectoratePage renders one electorate: provenance, filter and list.
func ElectoratePage(dir catalog.Directory, electorate, party string, votes []persist.Vote) *VNode {
	return Section(Class("page-section"),
		H1(electorate),
		CandidateMeta(dir.Metadata),
		Div(Class("filter-bar"),
			Label(For(TargetPartyFilter), "Filter by party"),
			PartyFilter(dir, electorate, party),
		),
		CandidateList(dir, electorate, party, votes),
	)
}

// VotesPage renders the saved-votes page.
func VotesPage(votes []persist.Vote) *VNode {
	return Section(Class("page-section"),
		H1("My Votes"),
		P(Class("section-intro"), "Candidates you saved on this device."),
		MyVotes(votes),
	)
}

// Profile messages for a failed lookup.
const (
	ProfileNotFoundTitle = "Candidate Not Found"
	ProfileMissingIDText = "No candidate ID was provided in the URL."
	ProfileUnknownIDText = "The requested candidate profile could not be found."
	ProfileDisclaimer    = "Information provided by Electa is for general informational purposes only, sourced from publicly available material, and may not fully reflect the views, policies, or positions of any candidate or political party. Electa is an independent, non-partisan platform and does not endorse or promote any candidate or political party. Users should independently verify information before making electoral decisions."
)

// Profile renders the profile of candidate id, or a not-found message.
// found reports which one was rendered.
func Profile(dir catalog.Directory, id string) (node *VNode, found bool) {
	if id == "" {
		return profileNotFound(ProfileMissingIDText), false
	}
	p, err := dir.FindCandidate(id)
	if err != nil {
		return profileNotFound(ProfileUnknownIDText), false
	}

	bio := p.Bio
	if bio == "" {
		bio = NoBioText
	}

	return Section(Class("page-section"), ID("profileContainer"),
		Div(Class("profile-header"),
			Div(Class("profile-image-container"),
				Img(
					ID("profileImage"),
					Src("/data/candidate-images/"+p.ID+".jpg"),
					Data("fallback", "/data/candidate-images/default.jpg"),
					Alt(p.Name),
				),
			),
			Div(Class("profile-basic-info"),
				H1(p.Name),
				P(Class("profile-party"), p.Party),
				P(Class("profile-electorate"), p.Electorate),
			),
		),
		Div(Class("profile-content"),
			profileSection("Bio / Key Issues", P(bio)),
			If(p.Profession != "", profileSection("Profession", P(p.Profession))),
			If(len(p.PolicyLinks) > 0, profileSection("Policy Links", linkList(p.PolicyLinks))),
			If(len(p.SocialLinks) > 0, profileSection("Social Links", linkList(p.SocialLinks))),
			If(p.ContactDetails != "", profileSection("Contact Details", P(p.ContactDetails))),
		),
		Div(Class("profile-actions"),
			A(Href(ElectoratePath(p.Electorate)), Class("primary-btn"), "Back to Candidates"),
		),
		Div(Class("profile-disclaimer"),
			P(ProfileDisclaimer),
			P(Class("profile-disclaimer-link"),
				"Something incorrect or missing? ",
				A(Href("/contribute"), Class("profile-link"), "Add or correct info here."),
			),
		),
	), true
}

func profileNotFound(reason string) *VNode {
	return Section(Class("page-section"), ID("profileContainer"),
		H1(ProfileNotFoundTitle),
		P(Class("section-intro"), reason),
		A(Href("/electorates"), Class("primary-btn"), "Back to Electorates"),
	)
}

func profileSection(title string, body *VNode) *VNode {
	return Div(Class("profile-section"), H2(title), body)
}

func linkList(links []catalog.Link) *VNode {
	return Ul(Range(links, func(l catalog.Link, _ int) *VNode {
		href := SafeLinkURL(l.URL)
		if href == "" {
			return Li(Span(Class("unlinked"), l.Text()))
		}
		return Li(A(Href(href), ExternalLink(), l.Text()))
	}))
}
