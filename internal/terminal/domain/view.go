package domain

type View string

const (
	ViewTerminal         View = "terminal"
	ViewWhale            View = "whale"
	ViewDiscovery        View = "discovery"
	ViewMainstream       View = "mainstream"
	ViewAcademy          View = "academy"
	ViewWatchlist        View = "watchlist"
	ViewAdmin            View = "admin"
	ViewSettings         View = "settings"
	ViewMainstreamDetail View = "mainstream_detail"
)

func (v View) Valid() bool {
	switch v {
	case ViewTerminal, ViewWhale, ViewDiscovery, ViewMainstream, ViewAcademy,
		ViewWatchlist, ViewAdmin, ViewSettings, ViewMainstreamDetail:
		return true
	}
	return false
}
