package world

import (
	"github.com/osse101/realmkeeper/internal/domain"
	"github.com/osse101/realmkeeper/internal/logger"
)

// Lobby is the PVP minigame waiting room. It is owned by the event loop.
type Lobby struct {
	players map[string]struct{}
}

func NewLobby() *Lobby {
	return &Lobby{players: make(map[string]struct{})}
}

func (l *Lobby) AddPlayer(playerID string)    { l.players[playerID] = struct{}{} }
func (l *Lobby) RemovePlayer(playerID string) { delete(l.players, playerID) }
func (l *Lobby) Size() int                    { return len(l.players) }

// Contains reports whether playerID is waiting in the lobby
func (l *Lobby) Contains(playerID string) bool {
	_, ok := l.players[playerID]
	return ok
}

// Mob AI, quests and pets run outside this server. These stand-ins record
// what the session asked of them.

type detachedMobs struct{}

func (detachedMobs) ForgetPlayer(mobID int64, playerID string) {
	logger.Debug(LogMsgMobForget, "mob_id", mobID, "player_id", playerID)
}

type detachedQuests struct{}

func (detachedQuests) Activate(playerID string) {
	logger.Debug(LogMsgQuestActivated, "player_id", playerID)
}

type detachedPets struct{}

func (detachedPets) SpawnPet(ownerID string, kind int, pos domain.Position) {
	logger.Debug(LogMsgPetSpawned, "owner_id", ownerID, "kind", kind, "x", pos.X, "y", pos.Y)
}
