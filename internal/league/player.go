package league

import "math"

// Attribute bounds.
const (
	MaxAttribute = 99
	MaxFitness   = 100
	MaxMorale    = 99
)

// Attribute names a trainable player attribute.
type Attribute string

const (
	AttrSpeed      Attribute = "speed"
	AttrShooting   Attribute = "shooting"
	AttrPassing    Attribute = "passing"
	AttrDefense    Attribute = "defense"
	AttrGoalkeeper Attribute = "goalkeeper"
	AttrFitness    Attribute = "fitness"
	AttrMorale     Attribute = "morale"
)

// Attribute returns the current value of a.
func (p *Player) Attribute(a Attribute) int {
	switch a {
	case AttrSpeed:
		return p.Speed
	case AttrShooting:
		return p.Shooting
	case AttrPassing:
		return p.Passing
	case AttrDefense:
		return p.Defense
	case AttrGoalkeeper:
		return p.Goalkeeper
	case AttrFitness:
		return p.Fitness
	case AttrMorale:
		return p.Morale
	}
	return 0
}

// SetAttribute stores v into a, clamped to the attribute's ceiling.
// Skill changes recompute the overall rating.
func (p *Player) SetAttribute(a Attribute, v int) {
	switch a {
	case AttrSpeed:
		p.Speed = Clamp(v, 0, MaxAttribute)
	case AttrShooting:
		p.Shooting = Clamp(v, 0, MaxAttribute)
	case AttrPassing:
		p.Passing = Clamp(v, 0, MaxAttribute)
	case AttrDefense:
		p.Defense = Clamp(v, 0, MaxAttribute)
	case AttrGoalkeeper:
		p.Goalkeeper = Clamp(v, 0, MaxAttribute)
	case AttrFitness:
		p.Fitness = Clamp(v, 0, MaxFitness)
		return
	case AttrMorale:
		p.Morale = Clamp(v, 0, MaxMorale)
		return
	default:
		return
	}
	p.RecalcOverall()
}

// RecalcOverall sets Overall to the rounded mean of the outfield skills,
// plus the goalkeeper attribute for goalkeepers.
func (p *Player) RecalcOverall() {
	sum := p.Speed + p.Shooting + p.Passing + p.Defense
	n := 4
	if p.Position == GK {
		sum += p.Goalkeeper
		n++
	}
	p.Overall = int(math.Round(float64(sum) / float64(n)))
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
