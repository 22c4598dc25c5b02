package messaging

// Type is the opcode that leads every serialized message
type Type int

const (
	TypeWelcome Type = iota
	TypeChat
	TypeNotify
	TypeGUINotify
	TypeEquip
	TypePoints
	TypeHealth
	TypeMana
	TypeAchievement
	TypeSkillLoad
	TypePVP
	TypeGameFlag
	TypePoison
	TypeGuild
	TypeGuildError
	TypeExperience
)

// Message is anything that can be delivered to a client
type Message interface {
	Type() Type
	// Fields returns the payload in wire order, without the opcode
	Fields() []any
}

// Encode flattens msg into its wire array, opcode first
func Encode(msg Message) []any {
	fields := msg.Fields()
	out := make([]any, 0, len(fields)+1)
	out = append(out, msg.Type())
	return append(out, fields...)
}

// Messenger delivers messages. Implementations must not block the caller.
type Messenger interface {
	// ToPlayer sends msg to a single connected player
	ToPlayer(playerID string, msg Message)
	// Broadcast sends msg to every player who can observe sourceID, including itself
	Broadcast(sourceID string, msg Message)
}

// Raw is a message whose fields are assembled by the caller
type Raw struct {
	Kind    Type
	Payload []any
}

func (m Raw) Type() Type    { return m.Kind }
func (m Raw) Fields() []any { return m.Payload }

// Chat is a system line in the player's chat log
type Chat struct {
	PlayerID string
	Text     string
}

func (m Chat) Type() Type    { return TypeChat }
func (m Chat) Fields() []any { return []any{m.PlayerID, m.Text} }

// Notify is a structured notification with a category
type Notify struct {
	Category string
	Text     string
}

func (m Notify) Type() Type    { return TypeNotify }
func (m Notify) Fields() []any { return []any{m.Category, m.Text} }

// GUINotify is a modal notice shown by the client interface
type GUINotify struct {
	Text string
}

func (m GUINotify) Type() Type    { return TypeGUINotify }
func (m GUINotify) Fields() []any { return []any{m.Text} }

// Equip announces a player's new visual equipment. Kind is an item kind,
// or a slot selector when the slot was emptied.
type Equip struct {
	PlayerID string
	Kind     int
}

func (m Equip) Type() Type    { return TypeEquip }
func (m Equip) Fields() []any { return []any{m.PlayerID, m.Kind} }

// Points carries both stat pools and their maxima
type Points struct {
	MaxHitPoints int
	MaxMana      int
	HitPoints    int
	Mana         int
}

func (m Points) Type() Type    { return TypePoints }
func (m Points) Fields() []any { return []any{m.MaxHitPoints, m.MaxMana, m.HitPoints, m.Mana} }

// Health reports current hit points
type Health struct {
	HitPoints int
}

func (m Health) Type() Type    { return TypeHealth }
func (m Health) Fields() []any { return []any{m.HitPoints} }

// Mana reports current mana
type Mana struct {
	Mana int
}

func (m Mana) Type() Type    { return TypeMana }
func (m Mana) Fields() []any { return []any{m.Mana} }

// Experience reports an award together with the resulting totals
type Experience struct {
	Amount int
	Total  int64
	Level  int
}

func (m Experience) Type() Type    { return TypeExperience }
func (m Experience) Fields() []any { return []any{m.Amount, m.Total, m.Level} }

// Achievement phases
const (
	AchievementFound    = "found"
	AchievementProgress = "progress"
	AchievementComplete = "complete"
)

// Achievement reports a change to one achievement
type Achievement struct {
	Phase    string
	ID       int
	Progress int
}

func (m Achievement) Type() Type { return TypeAchievement }
func (m Achievement) Fields() []any {
	if m.Phase == AchievementProgress {
		return []any{m.Phase, m.ID, m.Progress}
	}
	return []any{m.Phase, m.ID}
}

// SkillLoad tells the client about a learned skill
type SkillLoad struct {
	Index int
	Name  string
	Level int
}

func (m SkillLoad) Type() Type    { return TypeSkillLoad }
func (m SkillLoad) Fields() []any { return []any{m.Index, m.Name, m.Level} }

// PVP toggles the client's PVP zone indicator
type PVP struct {
	Enabled bool
}

func (m PVP) Type() Type    { return TypePVP }
func (m PVP) Fields() []any { return []any{m.Enabled} }

// GameFlag toggles the client's lobby indicator
type GameFlag struct {
	Enabled bool
}

func (m GameFlag) Type() Type    { return TypeGameFlag }
func (m GameFlag) Fields() []any { return []any{m.Enabled} }

// Poison toggles the poisoned status
type Poison struct {
	Poisoned bool
}

func (m Poison) Type() Type    { return TypePoison }
func (m Poison) Fields() []any { return []any{m.Poisoned} }

// Guild actions
const (
	GuildJoin       = "join"
	GuildDecline    = "decline"
	GuildPopulation = "population"
	GuildInvite     = "invite"
	GuildExpired    = "expired"
	GuildLeave      = "leave"
)

// Guild is a guild-scoped event
type Guild struct {
	Action string
	Args   []any
}

func (m Guild) Type() Type { return TypeGuild }
func (m Guild) Fields() []any {
	return append([]any{m.Action}, m.Args...)
}

// Guild error kinds
const (
	GuildErrorBadInvite   = "bad_invite"
	GuildErrorRateLimited = "rate_limited"
	GuildErrorNoInvite    = "no_invite"
	GuildErrorNameTaken   = "name_taken"
	GuildErrorBadName     = "bad_name"
	GuildErrorOffline     = "offline"
)

// GuildError reports a rejected guild request to its author
type GuildError struct {
	Kind string
	Name string
}

func (m GuildError) Type() Type    { return TypeGuildError }
func (m GuildError) Fields() []any { return []any{m.Kind, m.Name} }
