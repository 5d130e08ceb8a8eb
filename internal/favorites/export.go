package favorites

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/manav03panchal/muse/internal/model"
)

// Export formats.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// Banner heads the text export.
const Banner = "🌟 MY SAVED WRITING PROMPTS 🌟"

// Formats lists the supported export formats.
var Formats = []string{FormatJSON, FormatText}

// Export renders the collection as "json" or "text". The name must match
// exactly; anything else, including "JSON", yields a message naming the
// format instead of an error.
func (s *Store) Export(format string) string {
	favorites := s.LoadAll()

	switch format {
	case FormatJSON:
		out, err := ExportJSON(favorites)
		if err != nil {
			s.report("export", err)
			return fmt.Sprintf("Error exporting: %v", err)
		}
		return out
	case FormatText:
		return ExportText(favorites)
	default:
		return fmt.Sprintf("Unsupported format: %s", format)
	}
}

// ExportJSON wraps favorites in an object under the "favorites" key.
// Unlike the file on disk it carries no last_updated or count.
func ExportJSON(favorites []*model.Prompt) (string, error) {
	if favorites == nil {
		favorites = []*model.Prompt{}
	}
	data, err := json.MarshalIndent(struct {
		Favorites []*model.Prompt `json:"favorites"`
	}{favorites}, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ExportText renders favorites as a numbered, human-readable listing.
func ExportText(favorites []*model.Prompt) string {
	var sb strings.Builder
	sb.WriteString(Banner)
	sb.WriteString("\n\n")
	for i, fav := range favorites {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, fav.Text)
		fmt.Fprintf(&sb, "   Character: %s\n", fav.Character)
		fmt.Fprintf(&sb, "   Setting: %s\n", fav.Setting)
		fmt.Fprintf(&sb, "   Conflict: %s\n", fav.Conflict)
		fmt.Fprintf(&sb, "   Saved: %s\n\n", fav.SavedAt)
	}
	return sb.String()
}
