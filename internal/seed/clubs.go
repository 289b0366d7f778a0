// Package seed provides the dataset a new game starts from: eighteen
// fictional clubs with generated squads and a pool of free agents.
package seed

import "github.com/utakatalp/season-manager/internal/season"

// Clubs is the league line-up, strongest first.
var Clubs = []season.ClubSeed{
	{ID: "ald", Name: "Aldbridge Athletic", ShortName: "ALD", Strength: 88, StadiumName: "Riverside Arena", StadiumCapacity: 75000, Budget: 40_000_000},
	{ID: "brk", Name: "Brackenford United", ShortName: "BRK", Strength: 86, StadiumName: "The Foundry", StadiumCapacity: 62000, Budget: 32_000_000},
	{ID: "cst", Name: "Castlemere City", ShortName: "CST", Strength: 84, StadiumName: "Keep Park", StadiumCapacity: 54000, Budget: 28_000_000},
	{ID: "dun", Name: "Dunmoor Rovers", ShortName: "DUN", Strength: 81, StadiumName: "Moorside", StadiumCapacity: 48000, Budget: 22_000_000},
	{ID: "elm", Name: "Elmstead Wanderers", ShortName: "ELM", Strength: 79, StadiumName: "Elm Road", StadiumCapacity: 45000, Budget: 18_000_000},
	{ID: "fal", Name: "Falkirk Vale", ShortName: "FAL", Strength: 77, StadiumName: "Vale Ground", StadiumCapacity: 42000, Budget: 16_000_000},
	{ID: "gly", Name: "Glynhaven FC", ShortName: "GLY", Strength: 76, StadiumName: "Harbour Lane", StadiumCapacity: 38000, Budget: 14_000_000},
	{ID: "hrt", Name: "Hartwell Town", ShortName: "HRT", Strength: 74, StadiumName: "Hart Lane", StadiumCapacity: 35000, Budget: 12_000_000},
	{ID: "irn", Name: "Ironbridge Albion", ShortName: "IRN", Strength: 73, StadiumName: "The Anvil", StadiumCapacity: 33000, Budget: 11_000_000},
	{ID: "kes", Name: "Kestrel Park", ShortName: "KES", Strength: 72, StadiumName: "Kestrel Park", StadiumCapacity: 31000, Budget: 10_000_000},
	{ID: "lan", Name: "Langford Borough", ShortName: "LAN", Strength: 70, StadiumName: "Borough Road", StadiumCapacity: 29000, Budget: 9_000_000},
	{ID: "mar", Name: "Marshfield Sporting", ShortName: "MAR", Strength: 69, StadiumName: "Marsh Stadium", StadiumCapacity: 27000, Budget: 8_500_000},
	{ID: "nor", Name: "Northgate County", ShortName: "NOR", Strength: 68, StadiumName: "Gate Park", StadiumCapacity: 25000, Budget: 8_000_000},
	{ID: "oak", Name: "Oakhurst Rangers", ShortName: "OAK", Strength: 67, StadiumName: "Acorn Ground", StadiumCapacity: 23000, Budget: 7_500_000},
	{ID: "pen", Name: "Penrith Harriers", ShortName: "PEN", Strength: 66, StadiumName: "Fellside", StadiumCapacity: 21000, Budget: 7_000_000},
	{ID: "qua", Name: "Quarry Bank", ShortName: "QUA", Strength: 65, StadiumName: "The Pit", StadiumCapacity: 19000, Budget: 6_500_000},
	{ID: "rav", Name: "Ravensworth", ShortName: "RAV", Strength: 63, StadiumName: "Raven Hill", StadiumCapacity: 17000, Budget: 6_000_000},
	{ID: "sta", Name: "Stanbury Athletic", ShortName: "STA", Strength: 62, StadiumName: "Mill Lane", StadiumCapacity: 15000, Budget: 5_000_000},
}
