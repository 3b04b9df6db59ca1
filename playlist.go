package main

import "strings"

// Playlist is the session-scoped queue of resolved videos plus the cursor
// into it. It is replaced wholesale on every successful generation and
// mutated only by the navigation operations below.
//
// Invariant: 0 <= CurrentIndex < len(Items) whenever Items is non-empty.
// An empty Items means the playlist is absent.
type Playlist struct {
	Items        []VideoResult `json:"items"`
	CurrentIndex int           `json:"current_index"`
}

// Next advances the cursor cyclically.
func (p *Playlist) Next() {
	if len(p.Items) == 0 {
		return
	}
	p.CurrentIndex = (p.CurrentIndex + 1) % len(p.Items)
}

// Previous steps the cursor back cyclically.
func (p *Playlist) Previous() {
	if len(p.Items) == 0 {
		return
	}
	p.CurrentIndex = (p.CurrentIndex - 1 + len(p.Items)) % len(p.Items)
}

// JumpTo moves the cursor to i. Out-of-bounds indices are ignored.
func (p *Playlist) JumpTo(i int) {
	if i < 0 || i >= len(p.Items) {
		return
	}
	p.CurrentIndex = i
}

// normalize self-heals a cursor that drifted out of bounds, e.g. after an
// external mutation of a stored session payload.
func (p *Playlist) normalize() {
	if p.CurrentIndex < 0 || p.CurrentIndex >= len(p.Items) {
		p.CurrentIndex = 0
	}
}

// Current returns the track under the cursor, or nil for an empty queue.
func (p *Playlist) Current() *VideoResult {
	if len(p.Items) == 0 {
		return nil
	}
	return &p.Items[p.CurrentIndex]
}

// EmbedURL builds the looping autoplay embed for the current track, with
// the full queue attached as the embedded player's playlist. Entries
// without an ID cannot be embedded and are skipped.
func (p *Playlist) EmbedURL() string {
	ids := make([]string, 0, len(p.Items))
	currentID := ""
	for i, item := range p.Items {
		if item.ID == "" {
			continue
		}
		ids = append(ids, item.ID)
		if i == p.CurrentIndex {
			currentID = item.ID
		}
	}
	if len(ids) == 0 {
		return ""
	}
	if currentID == "" {
		currentID = ids[0]
	}
	return "https://www.youtube.com/embed/" + currentID +
		"?playlist=" + strings.Join(ids, ",") + "&autoplay=1&loop=1"
}

// stateJSON renders the playlist for API responses.
func (p *Playlist) stateJSON() PlaylistStateJSON {
	return PlaylistStateJSON{
		Items:        p.Items,
		CurrentIndex: p.CurrentIndex,
		NowPlaying:   p.Current(),
		EmbedURL:     p.EmbedURL(),
	}
}
