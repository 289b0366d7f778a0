package league

// Position is a playing role code.
type Position string

const (
	GK  Position = "GK"
	CB  Position = "CB"
	LB  Position = "LB"
	RB  Position = "RB"
	CDM Position = "CDM"
	CM  Position = "CM"
	CAM Position = "CAM"
	LM  Position = "LM"
	RM  Position = "RM"
	ST  Position = "ST"
	LW  Position = "LW"
	RW  Position = "RW"
)

// Position groups used by lineup selection.
var (
	Defenders   = []Position{CB, LB, RB}
	Midfielders = []Position{CM, CDM, CAM, LM, RM}
	Attackers   = []Position{ST, LW, RW}

	// ScorerPositions bias goal attribution toward attacking roles.
	ScorerPositions = []Position{ST, LW, RW, CAM, CM, LM, RM}
)

// Valid reports whether p is part of the position vocabulary.
func (p Position) Valid() bool {
	switch p {
	case GK, CB, LB, RB, CDM, CM, CAM, LM, RM, ST, LW, RW:
		return true
	}
	return false
}

func containsPosition(list []Position, p Position) bool {
	for _, q := range list {
		if q == p {
			return true
		}
	}
	return false
}

// PlaysIn reports whether the player's primary or secondary position is in group.
func (p *Player) PlaysIn(group []Position) bool {
	if containsPosition(group, p.Position) {
		return true
	}
	return p.SecondaryPosition != "" && containsPosition(group, p.SecondaryPosition)
}

// slotCompatibility lists which player positions may fill a slot role.
var slotCompatibility = map[Position][]Position{
	GK:  {GK},
	CB:  {CB},
	LB:  {LB, LM},
	RB:  {RB, RM},
	CDM: {CDM, CM},
	CM:  {CM, CDM, CAM},
	CAM: {CAM, CM},
	LM:  {LM, LW, LB},
	RM:  {RM, RW, RB},
	LW:  {LW, LM, ST},
	RW:  {RW, RM, ST},
	ST:  {ST, LW, RW, CAM},
}

// IsPositionCompatible reports whether a player with the given positions can
// fill a formation slot with role.
func IsPositionCompatible(primary, role, secondary Position) bool {
	if primary == role {
		return true
	}
	compatible := slotCompatibility[role]
	if containsPosition(compatible, primary) {
		return true
	}
	return secondary != "" && containsPosition(compatible, secondary)
}

// LineupSize is the number of starters.
const LineupSize = 11

// DefaultFormation is assigned to every club at new-game time.
const DefaultFormation = "4-4-2"

// Formations maps a formation name to its slot roles, goalkeeper first.
var Formations = map[string][LineupSize]Position{
	"4-4-2":   {GK, LB, CB, CB, RB, LM, CM, CM, RM, ST, ST},
	"4-3-3":   {GK, LB, CB, CB, RB, CDM, CM, CM, LW, ST, RW},
	"3-5-2":   {GK, CB, CB, CB, LM, CM, CDM, CM, RM, ST, ST},
	"4-5-1":   {GK, LB, CB, CB, RB, LM, CM, CAM, CM, RM, ST},
	"4-2-3-1": {GK, LB, CB, CB, RB, CDM, CDM, LW, CAM, RW, ST},
	"3-4-3":   {GK, CB, CB, CB, LM, CM, CM, RM, LW, ST, RW},
	"5-3-2":   {GK, LB, CB, CB, CB, RB, CM, CM, CM, ST, ST},
	"4-1-4-1": {GK, LB, CB, CB, RB, CDM, LM, CM, CM, RM, ST},
	"4-3-2-1": {GK, LB, CB, CB, RB, CM, CM, CM, CAM, CAM, ST},
}
