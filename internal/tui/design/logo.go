package design

// Color constants for the logo
const (
	// LogoColorPrimary is the main blue of the wordmark
	LogoColorPrimary = "#3B82F6"
	// LogoColorAccent is the cyan accent color
	LogoColorAccent = "#22D3EE"
)

// Logo is the wordmark shown in the CLI banner.
const Logo = `
 ██████╗██╗     ███████╗ █████╗ ███╗   ██╗ ██████╗ ███████╗
██╔════╝██║     ██╔════╝██╔══██╗████╗  ██║██╔═══██╗██╔════╝
██║     ██║     █████╗  ███████║██╔██╗ ██║██║   ██║███████╗
██║     ██║     ██╔══╝  ██╔══██║██║╚██╗██║██║   ██║╚════██║
╚██████╗███████╗███████╗██║  ██║██║ ╚████║╚██████╔╝███████║
 ╚═════╝╚══════╝╚══════╝╚═╝  ╚═╝╚═╝  ╚═══╝ ╚═════╝ ╚══════╝`

// Tagline is printed under the logo.
const Tagline = "AI-ASSISTED DISK CLEANUP"

// LogoMinimal is a single-line version for the TUI header.
const LogoMinimal = `CleanOS`
