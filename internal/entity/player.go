package entity

const (
	MarkX = "X"
	MarkO = "O"
)

// Player identifies whose score a request refers to.
type Player int

const (
	PlayerInvalid Player = iota
	PlayerX
	PlayerO
)

// ParsePlayer resolves a path segment into a Player. Only the exact marks "X" and "O" are valid.
func ParsePlayer(mark string) Player {
	switch mark {
	case MarkX:
		return PlayerX
	case MarkO:
		return PlayerO
	default:
		return PlayerInvalid
	}
}

func (that Player) IsValid() bool {
	return that == PlayerX || that == PlayerO
}

func (that Player) String() string {
	switch that {
	case PlayerX:
		return MarkX
	case PlayerO:
		return MarkO
	default:
		return "invalid"
	}
}
