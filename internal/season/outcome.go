package season

// Reason is a machine-readable cause for a rejected or failed operation.
type Reason string

const (
	ReasonSeasonComplete       Reason = "season_complete"
	ReasonWindowClosed         Reason = "window_closed"
	ReasonInsufficientFunds    Reason = "insufficient_funds"
	ReasonRosterFull           Reason = "roster_full"
	ReasonRosterTooSmall       Reason = "roster_too_small"
	ReasonPlayerNotFound       Reason = "player_not_found"
	ReasonClubNotFound         Reason = "club_not_found"
	ReasonAlreadyOwned         Reason = "already_owned"
	ReasonNotOnRoster          Reason = "not_on_roster"
	ReasonPlayerDeclined       Reason = "player_declined"
	ReasonNoBuyer              Reason = "no_buyer"
	ReasonInjured              Reason = "injured"
	ReasonTooTired             Reason = "too_tired"
	ReasonAlreadyTrained       Reason = "already_trained"
	ReasonWrongPosition        Reason = "wrong_position"
	ReasonAttributeMaxed       Reason = "attribute_maxed"
	ReasonInvalidType          Reason = "invalid_type"
	ReasonAlreadyBuilt         Reason = "already_built"
	ReasonInvalidSlot          Reason = "invalid_slot"
	ReasonIncompatiblePosition Reason = "incompatible_position"
	ReasonInvalidFormation     Reason = "invalid_formation"
	ReasonInvalidPrice         Reason = "invalid_price"
	ReasonTrainingFailed       Reason = "training_failed"
	ReasonTooManySubstitutions Reason = "too_many_substitutions"
	ReasonInvalidSubstitution  Reason = "invalid_substitution"
)

// Outcome is what every mutation entry point returns. Constraint violations
// and failed probability rolls both surface as Success == false.
type Outcome struct {
	Success bool   `json:"success"`
	Reason  Reason `json:"reason,omitempty"`
	Message string `json:"message"`
}

// Ok returns a successful outcome.
func Ok(message string) Outcome {
	return Outcome{Success: true, Message: message}
}

// Fail returns a failed outcome.
func Fail(reason Reason, message string) Outcome {
	return Outcome{Reason: reason, Message: message}
}
