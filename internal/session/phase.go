package session

// Phase is a step of the login sequence
type Phase int32

const (
	PhaseConnecting Phase = iota
	PhaseLoadingEquipment
	PhaseLoadingBank
	PhaseLoadingInventory
	PhaseLoadingAchievements
	PhaseLoadingPets
	PhaseReady
)

func (p Phase) String() string {
	switch p {
	case PhaseConnecting:
		return "connecting"
	case PhaseLoadingEquipment:
		return "loading_equipment"
	case PhaseLoadingBank:
		return "loading_bank"
	case PhaseLoadingInventory:
		return "loading_inventory"
	case PhaseLoadingAchievements:
		return "loading_achievements"
	case PhaseLoadingPets:
		return "loading_pets"
	case PhaseReady:
		return "ready"
	}
	return "unknown"
}
