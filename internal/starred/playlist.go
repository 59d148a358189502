package starred

import (
	"stationd/internal/models"
	"strings"
)

// RenderPlaylist writes an extended M3U playlist: a header line, then one
// title/URL pair per station.
func RenderPlaylist(stations []*models.Station) string {
	var b strings.Builder
	b.WriteString("#EXTM3U\n")
	for _, st := range stations {
		if st == nil {
			continue
		}
		title := strings.ReplaceAll(strings.TrimSpace(st.Name), "\n", " ")
		b.WriteString("#EXTINF:-1,")
		b.WriteString(title)
		b.WriteString("\n")
		b.WriteString(st.StreamURL())
		b.WriteString("\n")
	}
	return b.String()
}
