package domain

// PageControls is the state of the pagination bar.
type PageControls struct {
	PrevDisabled bool
	NextDisabled bool
	Label        string
}

// View is the set of UI targets the widget writes to.
// Implementations are handed to the widget at construction.
type View interface {
	// RenderList replaces the list region with markup.
	RenderList(markup string)
	// SetControls updates the previous/next buttons and the page label.
	SetControls(c PageControls)
	// ShowDetail fills the detail region, shows it with the back control and hides the list.
	ShowDetail(markup string)
	// ShowList hides the detail region and back control and shows the list again.
	ShowList()
	// SetNavWidth sets the width of the slide-out nav menu, e.g. "100%".
	SetNavWidth(width string)
}

// FooterView is implemented by views that carry a footer region.
type FooterView interface {
	SetFooter(markup string) error
}
