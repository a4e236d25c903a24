package session

import "github.com/okian/scoutsim/internal/domain/model"

// AllocateFocus spends one focus token to direct a lens at a player. It
// requires an active session, a token in the pool, and a known player;
// anything else is a no-op. The new allocation starts at the current phase
// with zero warm-up, so the first phase under a fresh lens reads degraded.
// Re-focusing a player replaces their previous lens and still costs a token.
func AllocateFocus(s Session, playerID string, lens model.Lens) Session {
	if s.State != StateActive || s.TokensAvailable <= 0 || !s.hasPlayer(playerID) {
		return s
	}
	out := s.clone()
	out.TokensAvailable--

	// Retire any previous live allocation for this player.
	for i := range out.Allocations {
		if out.Allocations[i].Active && out.Allocations[i].PlayerID == playerID {
			out.Allocations[i].Active = false
		}
	}

	out.Allocations = append(out.Allocations, FocusAllocation{
		PlayerID:   playerID,
		Lens:       lens,
		StartPhase: out.CurrentPhase,
		Active:     true,
	})
	out.warm[warmKey{playerID, lens}] = 0
	return out
}

// RemoveFocus retires a player's live allocation. The spent token is not
// refunded: spending is irreversible, which is what makes the economy a
// meaningful constraint. Removing an unfocused player is a no-op.
func RemoveFocus(s Session, playerID string) Session {
	if s.State != StateActive {
		return s
	}
	found := false
	for _, a := range s.Allocations {
		if a.Active && a.PlayerID == playerID {
			found = true
			break
		}
	}
	if !found {
		return s
	}
	out := s.clone()
	for i := range out.Allocations {
		if out.Allocations[i].Active && out.Allocations[i].PlayerID == playerID {
			out.Allocations[i].Active = false
		}
	}
	return out
}
