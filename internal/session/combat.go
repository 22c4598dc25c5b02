package session

import (
	"github.com/osse101/realmkeeper/internal/domain"
	"github.com/osse101/realmkeeper/internal/messaging"
)

// AddHater records that mob is targeting this player
func (s *Session) AddHater(mobID int64) {
	s.haters[mobID] = struct{}{}
}

func (s *Session) RemoveHater(mobID int64) {
	delete(s.haters, mobID)
}

// ForEachHater calls fn for every mob targeting this player
func (s *Session) ForEachHater(fn func(mobID int64)) {
	for id := range s.haters {
		fn(id)
	}
}

// FlagPVP marks whether the player stands in a PVP zone
func (s *Session) FlagPVP(enabled bool) {
	if s.pvp == enabled {
		return
	}
	s.pvp = enabled
	s.send(messaging.PVP{Enabled: enabled})
	if enabled {
		s.chat(NoticePVPOn)
	} else {
		s.chat(NoticePVPOff)
	}
}

func (s *Session) InPVP() bool {
	return s.pvp
}

// SetGameFlag moves the player in or out of the minigame lobby
func (s *Session) SetGameFlag(enabled bool) {
	if s.gameFlag == enabled {
		return
	}
	s.gameFlag = enabled
	s.send(messaging.GameFlag{Enabled: enabled})
	if enabled {
		s.chat(NoticeLobbyOn)
	} else {
		s.chat(NoticeLobbyOff)
	}

	if s.deps.Lobby == nil {
		return
	}
	if enabled {
		s.deps.Lobby.AddPlayer(s.id)
	} else {
		s.deps.Lobby.RemovePlayer(s.id)
	}
}

func (s *Session) InLobby() bool {
	return s.gameFlag
}

func (s *Session) SetTeam(team domain.Team) {
	s.team = team
}

func (s *Session) Team() domain.Team {
	return s.team
}

// SpawnPoint picks a tile near the player's team base
func (s *Session) SpawnPoint() domain.Position {
	offset := int(s.deps.Rand()*SpawnSpread) - SpawnSpread/2
	switch s.team {
	case domain.TeamRed:
		return domain.Position{X: RedSpawnX + offset, Y: RedSpawnY + offset}
	case domain.TeamBlue:
		return domain.Position{X: BlueSpawnX + offset, Y: BlueSpawnY + offset}
	}
	return domain.Position{X: DefaultSpawnX + offset, Y: DefaultSpawnY + offset}
}

// SetPoison updates the poisoned status and persists it
func (s *Session) SetPoison(poisoned bool) {
	s.poisoned = poisoned
	s.send(messaging.Poison{Poisoned: poisoned})
	s.deps.Store.SavePoison(s.name, poisoned)
}

func (s *Session) AddPVPKill() {
	s.pvpKills++
	s.deps.Store.RecordPVPKill(s.name)
}

func (s *Session) AddPVPDeath() {
	s.pvpDeaths++
	s.deps.Store.RecordPVPDeath(s.name)
}
