package media

// MinSearchTermLen is the minimum length a search term must have before
// it is worth running against the library.
const MinSearchTermLen = 3

// SearchQuery selects library tracks by free text or per-field terms.
// Empty fields are ignored.
type SearchQuery struct {
	Any    string
	Artist string
	Album  string
	Track  string
}

// ForArtist returns a query matching tracks by artist name.
func ForArtist(artist string) SearchQuery {
	return SearchQuery{Artist: artist}
}

// ForAlbum returns a query matching tracks by album title.
func ForAlbum(album string) SearchQuery {
	return SearchQuery{Album: album}
}

// ForTrack returns a query matching tracks by track title.
func ForTrack(track string) SearchQuery {
	return SearchQuery{Track: track}
}

// Searchable returns true if at least one term is long enough to search.
func (q SearchQuery) Searchable() bool {
	return len(q.Any) >= MinSearchTermLen ||
		len(q.Artist) >= MinSearchTermLen ||
		len(q.Album) >= MinSearchTermLen ||
		len(q.Track) >= MinSearchTermLen
}

// IsEmpty returns true if the query has no terms at all.
func (q SearchQuery) IsEmpty() bool {
	return q.Any == "" && q.Artist == "" && q.Album == "" && q.Track == ""
}
