package core

// Player represents a combatant slot (human or AI controlled)
type Player struct {
	ID     int
	Name   string
	TeamID int
	Color  uint32 // RGBA
	IsAI   bool
}

// TeamRoster manages all players in a session
type TeamRoster struct {
	Players []*Player
}

func NewTeamRoster() *TeamRoster {
	return &TeamRoster{}
}

func (tr *TeamRoster) AddPlayer(p *Player) {
	tr.Players = append(tr.Players, p)
}

func (tr *TeamRoster) GetPlayer(id int) *Player {
	for _, p := range tr.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// AreAllies checks if two players share a team. Team 0 is
// unaffiliated: such players are allied with no one.
func (tr *TeamRoster) AreAllies(a, b int) bool {
	pa := tr.GetPlayer(a)
	pb := tr.GetPlayer(b)
	if pa == nil || pb == nil {
		return false
	}
	return pa.TeamID != 0 && pa.TeamID == pb.TeamID
}
