package surface

import "regexp"

// hyperlinkTable interns OSC 8 {id, uri} pairs so cells can carry a
// small uint32 instead of duplicating the URI per cell. Grounded on
// otty-surface/src/hyperlink.rs's HyperlinkMap.
type hyperlinkTable struct {
	byID  map[string]uint32
	byIdx []hyperlinkEntry
	auto  uint32 // synthetic id counter for links opened without an explicit id=
}

type hyperlinkEntry struct {
	ID  string
	URI string
}

func newHyperlinkTable() *hyperlinkTable {
	return &hyperlinkTable{byID: make(map[string]uint32), byIdx: []hyperlinkEntry{{}}}
}

// open interns (or reuses) an id/uri pair and returns the cell-level
// HyperlinkID to stamp on subsequently printed cells. An empty uri
// means "close the currently open link" and returns 0.
func (h *hyperlinkTable) open(id, uri string) uint32 {
	if uri == "" {
		return 0
	}
	if id == "" {
		h.auto++
		idx := uint32(len(h.byIdx))
		h.byIdx = append(h.byIdx, hyperlinkEntry{URI: uri})
		return idx
	}
	if existing, ok := h.byID[id]; ok && h.byIdx[existing].URI == uri {
		return existing
	}
	idx := uint32(len(h.byIdx))
	h.byIdx = append(h.byIdx, hyperlinkEntry{ID: id, URI: uri})
	h.byID[id] = idx
	return idx
}

func (h *hyperlinkTable) lookup(id uint32) (hyperlinkEntry, bool) {
	if id == 0 || int(id) >= len(h.byIdx) {
		return hyperlinkEntry{}, false
	}
	return h.byIdx[id], true
}

// HyperlinkSpan is a contiguous run of cells sharing one hyperlink,
// recovered from per-cell HyperlinkIDs rather than tracked incrementally,
// per SPEC_FULL.md's span-recovery supplement.
type HyperlinkSpan struct {
	URI        string
	Start, End Point // inclusive, same row
}

// detectedURLPattern mirrors otty-surface/src/hyperlink.rs's fixed
// scheme list for bare-URL detection.
var detectedURLPattern = regexp.MustCompile(
	`(?:ipfs:|ipns:|magnet:|mailto:|gemini://|gopher://|https://|http://|news:|file://|git://|ssh:|ftp://)[^\s]+`,
)
