package audio

// Handle identifies one backend playback channel. Handles are allocated
// monotonically and never reused, so a stale completion notification can
// always be told apart from the channel that re-claimed its slot
type Handle uint64

// SentinelResourceID disables sound arbitration: the sound plays
// concurrently with itself and everything else
const SentinelResourceID = -1

// MaxVolume is the top of the script-visible 0-100 volume scale
const MaxVolume = 100

// Predefined arbitration ids engine code uses for the classic sounds.
// Scripts may define their own above these
const (
	ResourceJump = iota + 1
	ResourceWallHit
	ResourcePowerdown
	ResourceBall
	ResourceDeath
	ResourcePowerup
	ResourceOneUp
	ResourceHurt
	ResourceStop
)

// channelKind separates the sound table from the single music slot
type channelKind int

const (
	kindSound channelKind = iota
	kindMusic
)

// Channel is one active playback slot as the arbitration layer sees it.
// The backend owns the actual rendering
type Channel struct {
	Handle     Handle
	Path       string // script-authored path, forward slashes
	ResourceID int
	Volume     int
	Loops      int
	FadeInMS   int

	kind channelKind
}
