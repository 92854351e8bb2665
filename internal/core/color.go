package core

// Color is a semantic colour tag for a screen cell. The platform layer maps
// tags to terminal colours, so simulation-side drawing never deals with ANSI.
type Color uint8

const (
	ColorDefault Color = iota
	ColorHUD
	ColorGround
	ColorBrick
	ColorPipe
	ColorQBlock
	ColorUsedBlock
	ColorPlayer
	ColorPlayerBig
	ColorInvincible
	ColorEnemy
	ColorMushroom
	ColorStar
	ColorPole
	ColorFlag
	ColorWarning
)

// String returns the tag name, used in debug dumps.
func (c Color) String() string {
	switch c {
	case ColorDefault:
		return "default"
	case ColorHUD:
		return "hud"
	case ColorGround:
		return "ground"
	case ColorBrick:
		return "brick"
	case ColorPipe:
		return "pipe"
	case ColorQBlock:
		return "q_block"
	case ColorUsedBlock:
		return "used_block"
	case ColorPlayer:
		return "player"
	case ColorPlayerBig:
		return "player_big"
	case ColorInvincible:
		return "invincible"
	case ColorEnemy:
		return "enemy"
	case ColorMushroom:
		return "mushroom"
	case ColorStar:
		return "star"
	case ColorPole:
		return "pole"
	case ColorFlag:
		return "flag"
	case ColorWarning:
		return "warning"
	default:
		return "unknown"
	}
}
