package render

import "strings"

// Overlay is a set of debug layers drawn over the world
type Overlay uint8

const (
	OverlayColliders Overlay = 1 << iota
	OverlayTiles
	OverlayContacts
	OverlayHitboxes
	OverlayProbes
	OverlayInfo

	OverlayNone Overlay = 0
)

// Overlays lists every layer in toggle order (F1..F6)
var Overlays = []Overlay{
	OverlayColliders,
	OverlayTiles,
	OverlayContacts,
	OverlayHitboxes,
	OverlayProbes,
	OverlayInfo,
}

// String returns the layer names joined by '|'
func (o Overlay) String() string {
	if o == OverlayNone {
		return "none"
	}
	var names []string
	for _, layer := range Overlays {
		if o&layer == 0 {
			continue
		}
		switch layer {
		case OverlayColliders:
			names = append(names, "colliders")
		case OverlayTiles:
			names = append(names, "tiles")
		case OverlayContacts:
			names = append(names, "contacts")
		case OverlayHitboxes:
			names = append(names, "hitboxes")
		case OverlayProbes:
			names = append(names, "probes")
		case OverlayInfo:
			names = append(names, "info")
		}
	}
	return strings.Join(names, "|")
}
