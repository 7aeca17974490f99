// Package theme defines color themes for the moneygrow TUI.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines the color roles used throughout the TUI.
type Theme struct {
	Name          string
	Background    lipgloss.Color // Main app background
	Surface       lipgloss.Color // Card/panel backgrounds
	SurfaceHover  lipgloss.Color // Highlighted surface (active tab, selected row)
	SurfaceBright lipgloss.Color // Extra bright surface for emphasis
	Border        lipgloss.Color // Subtle borders
	BorderBright  lipgloss.Color // Prominent borders (cards, focus)
	BorderAccent  lipgloss.Color // Accent-colored borders for focus states
	TextDim       lipgloss.Color // Lowest contrast text (hints, disabled)
	TextMuted     lipgloss.Color // Secondary text (labels, metadata)
	TextPrimary   lipgloss.Color // Primary content text
	Accent        lipgloss.Color // Primary accent (active states, totals)
	AccentBright  lipgloss.Color // Brighter accent for emphasis
	AccentDim     lipgloss.Color // Dimmed accent for backgrounds
	Green         lipgloss.Color
	GreenBright   lipgloss.Color
	Orange        lipgloss.Color
	Red           lipgloss.Color
	Blue          lipgloss.Color
	BlueBright    lipgloss.Color
	Yellow        lipgloss.Color
	Magenta       lipgloss.Color
	Cyan          lipgloss.Color
}

// DefaultName is the theme applied when none is configured or the
// configured name is unknown.
const DefaultName = "emerald"

// Active is the currently selected theme.
var Active = Emerald

// Emerald is the default theme - fresh green on a deep neutral base.
var Emerald = Theme{
	Name:          "emerald",
	Background:    lipgloss.Color("#0C1210"),
	Surface:       lipgloss.Color("#16211C"),
	SurfaceHover:  lipgloss.Color("#20302A"),
	SurfaceBright: lipgloss.Color("#2A3F37"),
	Border:        lipgloss.Color("#2E463C"),
	BorderBright:  lipgloss.Color("#3F5F52"),
	BorderAccent:  lipgloss.Color("#10B981"),
	TextDim:       lipgloss.Color("#4A6557"),
	TextMuted:     lipgloss.Color("#88A697"),
	TextPrimary:   lipgloss.Color("#ECFDF5"),
	Accent:        lipgloss.Color("#10B981"),
	AccentBright:  lipgloss.Color("#34D399"),
	AccentDim:     lipgloss.Color("#123B2D"),
	Green:         lipgloss.Color("#22C55E"),
	GreenBright:   lipgloss.Color("#4ADE80"),
	Orange:        lipgloss.Color("#F59E0B"),
	Red:           lipgloss.Color("#EF4444"),
	Blue:          lipgloss.Color("#3B82F6"),
	BlueBright:    lipgloss.Color("#60A5FA"),
	Yellow:        lipgloss.Color("#EAB308"),
	Magenta:       lipgloss.Color("#D946EF"),
	Cyan:          lipgloss.Color("#06B6D4"),
}

// Ocean is a cool blue theme.
var Ocean = Theme{
	Name:          "ocean",
	Background:    lipgloss.Color("#0B1220"),
	Surface:       lipgloss.Color("#14203A"),
	SurfaceHover:  lipgloss.Color("#1D2E50"),
	SurfaceBright: lipgloss.Color("#263C66"),
	Border:        lipgloss.Color("#2B4470"),
	BorderBright:  lipgloss.Color("#3C5C92"),
	BorderAccent:  lipgloss.Color("#0EA5E9"),
	TextDim:       lipgloss.Color("#46608C"),
	TextMuted:     lipgloss.Color("#8DA8CC"),
	TextPrimary:   lipgloss.Color("#EFF6FF"),
	Accent:        lipgloss.Color("#0EA5E9"),
	AccentBright:  lipgloss.Color("#38BDF8"),
	AccentDim:     lipgloss.Color("#12314A"),
	Green:         lipgloss.Color("#34D399"),
	GreenBright:   lipgloss.Color("#6EE7B7"),
	Orange:        lipgloss.Color("#FB923C"),
	Red:           lipgloss.Color("#F87171"),
	Blue:          lipgloss.Color("#3B82F6"),
	BlueBright:    lipgloss.Color("#60A5FA"),
	Yellow:        lipgloss.Color("#FACC15"),
	Magenta:       lipgloss.Color("#E879F9"),
	Cyan:          lipgloss.Color("#22D3EE"),
}

// Purple is a violet theme.
var Purple = Theme{
	Name:          "purple",
	Background:    lipgloss.Color("#120E1E"),
	Surface:       lipgloss.Color("#1E1733"),
	SurfaceHover:  lipgloss.Color("#2B2148"),
	SurfaceBright: lipgloss.Color("#382B5E"),
	Border:        lipgloss.Color("#3E3166"),
	BorderBright:  lipgloss.Color("#564488"),
	BorderAccent:  lipgloss.Color("#A855F7"),
	TextDim:       lipgloss.Color("#5D4E84"),
	TextMuted:     lipgloss.Color("#A497C6"),
	TextPrimary:   lipgloss.Color("#FAF5FF"),
	Accent:        lipgloss.Color("#A855F7"),
	AccentBright:  lipgloss.Color("#C084FC"),
	AccentDim:     lipgloss.Color("#35204E"),
	Green:         lipgloss.Color("#34D399"),
	GreenBright:   lipgloss.Color("#6EE7B7"),
	Orange:        lipgloss.Color("#FB923C"),
	Red:           lipgloss.Color("#F87171"),
	Blue:          lipgloss.Color("#818CF8"),
	BlueBright:    lipgloss.Color("#A5B4FC"),
	Yellow:        lipgloss.Color("#FACC15"),
	Magenta:       lipgloss.Color("#E879F9"),
	Cyan:          lipgloss.Color("#22D3EE"),
}

// Sunset is a warm orange theme.
var Sunset = Theme{
	Name:          "sunset",
	Background:    lipgloss.Color("#1A100B"),
	Surface:       lipgloss.Color("#2B1A12"),
	SurfaceHover:  lipgloss.Color("#3D251A"),
	SurfaceBright: lipgloss.Color("#4F3022"),
	Border:        lipgloss.Color("#553526"),
	BorderBright:  lipgloss.Color("#744A35"),
	BorderAccent:  lipgloss.Color("#F97316"),
	TextDim:       lipgloss.Color("#7A573F"),
	TextMuted:     lipgloss.Color("#C0997D"),
	TextPrimary:   lipgloss.Color("#FFF7ED"),
	Accent:        lipgloss.Color("#F97316"),
	AccentBright:  lipgloss.Color("#FB923C"),
	AccentDim:     lipgloss.Color("#47270F"),
	Green:         lipgloss.Color("#84CC16"),
	GreenBright:   lipgloss.Color("#A3E635"),
	Orange:        lipgloss.Color("#F97316"),
	Red:           lipgloss.Color("#EF4444"),
	Blue:          lipgloss.Color("#38BDF8"),
	BlueBright:    lipgloss.Color("#7DD3FC"),
	Yellow:        lipgloss.Color("#FACC15"),
	Magenta:       lipgloss.Color("#F472B6"),
	Cyan:          lipgloss.Color("#2DD4BF"),
}

// Forest is a muted deep green theme.
var Forest = Theme{
	Name:          "forest",
	Background:    lipgloss.Color("#0E1410"),
	Surface:       lipgloss.Color("#1A231C"),
	SurfaceHover:  lipgloss.Color("#263328"),
	SurfaceBright: lipgloss.Color("#324334"),
	Border:        lipgloss.Color("#384A3A"),
	BorderBright:  lipgloss.Color("#4D654F"),
	BorderAccent:  lipgloss.Color("#16A34A"),
	TextDim:       lipgloss.Color("#536B55"),
	TextMuted:     lipgloss.Color("#96AF98"),
	TextPrimary:   lipgloss.Color("#F0FDF4"),
	Accent:        lipgloss.Color("#16A34A"),
	AccentBright:  lipgloss.Color("#22C55E"),
	AccentDim:     lipgloss.Color("#14331E"),
	Green:         lipgloss.Color("#16A34A"),
	GreenBright:   lipgloss.Color("#4ADE80"),
	Orange:        lipgloss.Color("#D97706"),
	Red:           lipgloss.Color("#DC2626"),
	Blue:          lipgloss.Color("#2563EB"),
	BlueBright:    lipgloss.Color("#60A5FA"),
	Yellow:        lipgloss.Color("#CA8A04"),
	Magenta:       lipgloss.Color("#C026D3"),
	Cyan:          lipgloss.Color("#0891B2"),
}

// Dark is a neutral grayscale theme with a single blue accent.
var Dark = Theme{
	Name:          "dark",
	Background:    lipgloss.Color("#0A0A0A"),
	Surface:       lipgloss.Color("#171717"),
	SurfaceHover:  lipgloss.Color("#262626"),
	SurfaceBright: lipgloss.Color("#333333"),
	Border:        lipgloss.Color("#363636"),
	BorderBright:  lipgloss.Color("#4D4D4D"),
	BorderAccent:  lipgloss.Color("#3B82F6"),
	TextDim:       lipgloss.Color("#525252"),
	TextMuted:     lipgloss.Color("#A3A3A3"),
	TextPrimary:   lipgloss.Color("#FAFAFA"),
	Accent:        lipgloss.Color("#3B82F6"),
	AccentBright:  lipgloss.Color("#60A5FA"),
	AccentDim:     lipgloss.Color("#1E2A42"),
	Green:         lipgloss.Color("#22C55E"),
	GreenBright:   lipgloss.Color("#4ADE80"),
	Orange:        lipgloss.Color("#F59E0B"),
	Red:           lipgloss.Color("#EF4444"),
	Blue:          lipgloss.Color("#3B82F6"),
	BlueBright:    lipgloss.Color("#60A5FA"),
	Yellow:        lipgloss.Color("#EAB308"),
	Magenta:       lipgloss.Color("#D946EF"),
	Cyan:          lipgloss.Color("#06B6D4"),
}

// All available themes.
var All = []Theme{Emerald, Ocean, Purple, Sunset, Forest, Dark}

// Valid reports whether name matches a known theme.
func Valid(name string) bool {
	for _, t := range All {
		if t.Name == name {
			return true
		}
	}
	return false
}

// ByName returns a theme by its name, defaulting to Emerald.
func ByName(name string) Theme {
	for _, t := range All {
		if t.Name == name {
			return t
		}
	}
	return Emerald
}

// SetActive sets the active theme by name.
func SetActive(name string) {
	Active = ByName(name)
}
