package league

import "testing"

func TestRecalcOverall(t *testing.T) {
	outfield := &Player{Position: ST, Speed: 80, Shooting: 85, Passing: 70, Defense: 40, Goalkeeper: 10}
	outfield.RecalcOverall()
	if outfield.Overall != 69 { // 275/4 = 68.75
		t.Fatalf("outfield overall %d", outfield.Overall)
	}

	keeper := &Player{Position: GK, Speed: 50, Shooting: 20, Passing: 50, Defense: 60, Goalkeeper: 85}
	keeper.RecalcOverall()
	if keeper.Overall != 53 { // 265/5
		t.Fatalf("keeper overall %d", keeper.Overall)
	}
}

func TestSetAttributeClamps(t *testing.T) {
	p := &Player{Position: CM, Speed: 98, Shooting: 60, Passing: 60, Defense: 60}
	p.SetAttribute(AttrSpeed, 104)
	if p.Speed != MaxAttribute {
		t.Fatalf("speed %d", p.Speed)
	}
	if p.Overall != 70 { // (99+180)/4 = 69.75
		t.Fatalf("overall %d", p.Overall)
	}

	p.SetAttribute(AttrFitness, 130)
	if p.Fitness != MaxFitness {
		t.Fatalf("fitness %d", p.Fitness)
	}
	p.SetAttribute(AttrMorale, 120)
	if p.Morale != MaxMorale {
		t.Fatalf("morale %d", p.Morale)
	}
}

func TestPositionCompatibility(t *testing.T) {
	tests := []struct {
		primary, role, secondary Position
		want                     bool
	}{
		{GK, GK, "", true},
		{CB, GK, "", false},
		{LM, LB, "", true},
		{CM, ST, CAM, true},
		{CAM, ST, "", true},
		{CB, ST, "", false},
		{RW, RM, "", true},
		{LB, CB, "", false},
	}
	for _, tt := range tests {
		if got := IsPositionCompatible(tt.primary, tt.role, tt.secondary); got != tt.want {
			t.Errorf("%s(%s) in %s: got %v, want %v", tt.primary, tt.secondary, tt.role, got, tt.want)
		}
	}
}

func TestFormationsHaveOneKeeper(t *testing.T) {
	for name, slots := range Formations {
		keepers := 0
		for _, role := range slots {
			if !role.Valid() {
				t.Fatalf("%s: invalid role %q", name, role)
			}
			if role == GK {
				keepers++
			}
		}
		if keepers != 1 || slots[0] != GK {
			t.Errorf("%s: %d keepers, first slot %s", name, keepers, slots[0])
		}
	}
}

func TestPlaysIn(t *testing.T) {
	p := &Player{Position: CDM, SecondaryPosition: CB}
	if !p.PlaysIn(Defenders) || !p.PlaysIn(Midfielders) || p.PlaysIn(Attackers) {
		t.Fatalf("unexpected group membership for %+v", p)
	}
}

func TestFormatMoney(t *testing.T) {
	if got := FormatMoney(4000000); got != "4,000,000 EUR" {
		t.Fatalf("got %q", got)
	}
}
