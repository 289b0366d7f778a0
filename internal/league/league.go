package league

// TransferWindow is the season phase that gates buying and selling.
type TransferWindow string

const (
	WindowClosed TransferWindow = "closed"
	WindowSummer TransferWindow = "summer"
	WindowWinter TransferWindow = "winter"
)

// Result is one entry of a club's form string.
type Result string

const (
	Win  Result = "W"
	Draw Result = "D"
	Loss Result = "L"
)

// FormLength is how many recent results a club keeps.
const FormLength = 5

// Club represents a club in the league.
type Club struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
	Strength  int    `json:"strength"`

	Points       int      `json:"points"`
	Won          int      `json:"won"`
	Drawn        int      `json:"drawn"`
	Lost         int      `json:"lost"`
	GoalsFor     int      `json:"goalsFor"`
	GoalsAgainst int      `json:"goalsAgainst"`
	Form         []Result `json:"form"`

	Budget    int64    `json:"budget"`
	Formation string   `json:"formation"`
	Lineup    []string `json:"lineup"` // player IDs by formation slot, "" = empty slot

	Stadium  Stadium  `json:"stadium"`
	Finances Finances `json:"finances"`
}

// Played is the number of matches in the club's record.
func (c *Club) Played() int { return c.Won + c.Drawn + c.Lost }

// GoalDiff is goals for minus goals against.
func (c *Club) GoalDiff() int { return c.GoalsFor - c.GoalsAgainst }

// FormWins counts wins in the trailing form window.
func (c *Club) FormWins() int {
	n := 0
	for _, r := range c.Form {
		if r == Win {
			n++
		}
	}
	return n
}

// Stadium holds the structural and pricing state of a club's ground.
type Stadium struct {
	Name        string `json:"name"`
	Capacity    int    `json:"capacity"`
	TicketPrice int    `json:"ticketPrice"`
	Roof        bool   `json:"roof"`
	FanShop     bool   `json:"fanShop"`
	Floodlights bool   `json:"floodlights"`
	Parking     int    `json:"parking"`
	VIPBoxes    int    `json:"vipBoxes"`
}

// LedgerCategory classifies a finance posting.
type LedgerCategory string

const (
	CategoryTickets        LedgerCategory = "tickets"
	CategoryFanShop        LedgerCategory = "fan_shop"
	CategoryVIPBoxes       LedgerCategory = "vip_boxes"
	CategoryTVMoney        LedgerCategory = "tv_money"
	CategorySponsor        LedgerCategory = "sponsor"
	CategoryWages          LedgerCategory = "wages"
	CategoryStadiumUpkeep  LedgerCategory = "stadium_upkeep"
	CategoryStadiumUpgrade LedgerCategory = "stadium_upgrade"
	CategoryTraining       LedgerCategory = "training"
	CategoryTransferIn     LedgerCategory = "transfer_in"
	CategoryTransferOut    LedgerCategory = "transfer_out"
)

// LedgerEntry is one itemized income or expense.
type LedgerEntry struct {
	Category LedgerCategory `json:"category"`
	Amount   int64          `json:"amount"`
	Matchday int            `json:"matchday"`
}

// Finances is a club's itemized ledger. Totals are kept incrementally
// so summaries never walk the entry history.
type Finances struct {
	Income            []LedgerEntry            `json:"income"`
	Expenses          []LedgerEntry            `json:"expenses"`
	TotalIncome       int64                    `json:"totalIncome"`
	TotalExpenses     int64                    `json:"totalExpenses"`
	IncomeByCategory  map[LedgerCategory]int64 `json:"incomeByCategory"`
	ExpenseByCategory map[LedgerCategory]int64 `json:"expenseByCategory"`
	TVMoney           int64                    `json:"tvMoney"`       // season entitlement
	SponsorIncome     int64                    `json:"sponsorIncome"` // season entitlement
}

// Player is a squad member or free agent.
type Player struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	ShortName         string   `json:"shortName"`
	Age               int      `json:"age"`
	Position          Position `json:"position"`
	SecondaryPosition Position `json:"secondaryPosition,omitempty"`

	Speed      int `json:"speed"`
	Shooting   int `json:"shooting"`
	Passing    int `json:"passing"`
	Defense    int `json:"defense"`
	Goalkeeper int `json:"goalkeeper"`
	Overall    int `json:"overall"`

	Fitness int `json:"fitness"`
	Morale  int `json:"morale"`

	ContractUntil int    `json:"contractUntil"`
	MarketValue   int64  `json:"marketValue"`
	Salary        int64  `json:"salary"` // per matchday
	ClubID        string `json:"clubId"` // "" = free agent

	Goals       int `json:"goals"`
	Assists     int `json:"assists"`
	YellowCards int `json:"yellowCards"`
	RedCards    int `json:"redCards"`

	Injured    bool `json:"injured"`
	InjuryDays int  `json:"injuryDays"`

	TrainedThisMatchday bool `json:"trainedThisMatchday"`
}

// IsFreeAgent reports whether the player has no club.
func (p *Player) IsFreeAgent() bool { return p.ClubID == "" }

// Fixture is a scheduled pairing.
type Fixture struct {
	Home string `json:"home"`
	Away string `json:"away"`
}

// Side is the team side an event belongs to.
type Side string

const (
	Home Side = "home"
	Away Side = "away"
)

// EventType enumerates in-match events.
type EventType string

const (
	EventGoal   EventType = "goal"
	EventYellow EventType = "yellow"
	EventRed    EventType = "red"
	EventInjury EventType = "injury"
)

// MatchEvent is one timestamped in-match event.
type MatchEvent struct {
	Minute    int       `json:"minute"`
	AddedTime int       `json:"addedTime,omitempty"` // stoppage minutes after 45 or 90
	Type      EventType `json:"type"`
	Side      Side      `json:"side"`
	ClubID    string    `json:"clubId"`
	PlayerID  string    `json:"playerId,omitempty"` // "" when the lineup was empty
	AssistID  string    `json:"assistId,omitempty"`
	HomeScore int       `json:"homeScore,omitempty"`
	AwayScore int       `json:"awayScore,omitempty"`
}

// MatchResult is a resolved fixture.
type MatchResult struct {
	Home      string       `json:"home"`
	Away      string       `json:"away"`
	HomeGoals int          `json:"homeGoals"`
	AwayGoals int          `json:"awayGoals"`
	Events    []MatchEvent `json:"events"`
}

// Involves reports whether clubID played in the match.
func (m MatchResult) Involves(clubID string) bool {
	return m.Home == clubID || m.Away == clubID
}

// MatchdayResult groups all matches of one round. Matchday is 1-based.
type MatchdayResult struct {
	Matchday int           `json:"matchday"`
	Matches  []MatchResult `json:"matches"`
}
