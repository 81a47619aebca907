package styles

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	KotlinOrange = lipgloss.Color("#DF6E00")
	KotlinPurple = lipgloss.Color("#5A49AD")
	DimGray      = lipgloss.Color("#6B7280")
	LightGray    = lipgloss.Color("#9CA3AF")
	White        = lipgloss.Color("#F9FAFB")
)

// Indicator border: orange along the top fading to purple along the bottom
var (
	IndicatorStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderTopForeground(KotlinOrange).
			BorderLeftForeground(KotlinOrange).
			BorderRightForeground(KotlinPurple).
			BorderBottomForeground(KotlinPurple).
			Padding(0, 1)
)

// Text styles
var (
	BadgeStyle = lipgloss.NewStyle().
			Foreground(White).
			Background(KotlinPurple).
			Bold(true).
			Padding(0, 1)

	RankStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(KotlinOrange)
)

// Help styles
var (
	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(KotlinOrange)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(DimGray)
)

// BadgeText is the icon drawn before the rank
const BadgeText = "K"
