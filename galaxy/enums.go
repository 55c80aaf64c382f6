package galaxy

import "fmt"

// Faction identifies a side of the war. The upstream encodes factions as
// small integers; codes outside the known set decode to FactionUnknown.
type Faction int

const (
	FactionUnknown    Faction = -1
	FactionAny        Faction = 0
	FactionHumans     Faction = 1
	FactionTerminids  Faction = 2
	FactionAutomaton  Faction = 3
	FactionIlluminate Faction = 4
)

// FactionFromCode decodes an upstream faction code. Unknown codes never
// error; they map to FactionUnknown.
func FactionFromCode(code int) Faction {
	if code >= int(FactionAny) && code <= int(FactionIlluminate) {
		return Faction(code)
	}
	return FactionUnknown
}

func (f Faction) String() string {
	switch f {
	case FactionAny:
		return "Any"
	case FactionHumans:
		return "Humans"
	case FactionTerminids:
		return "Terminids"
	case FactionAutomaton:
		return "Automaton"
	case FactionIlluminate:
		return "Illuminate"
	}
	return "Unknown"
}

// CampaignType classifies an active campaign.
type CampaignType int

const (
	CampaignTypeUnknown           CampaignType = -1
	CampaignTypeLiberationDefense CampaignType = 0
	CampaignTypeRecon             CampaignType = 1
	CampaignTypeStory             CampaignType = 2
)

func CampaignTypeFromCode(code int) CampaignType {
	switch CampaignType(code) {
	case CampaignTypeLiberationDefense, CampaignTypeRecon, CampaignTypeStory:
		return CampaignType(code)
	}
	return CampaignTypeUnknown
}

func (t CampaignType) String() string {
	switch t {
	case CampaignTypeLiberationDefense:
		return "Liberation/Defense"
	case CampaignTypeRecon:
		return "Recon"
	case CampaignTypeStory:
		return "Story"
	}
	return "Unknown"
}

// TaskType classifies a major-order task. Task completion logic is keyed off
// the type, so an unrecognized code is a hard decoding error rather than an
// unknown sentinel.
type TaskType int

const (
	TaskEradicate  TaskType = 3
	TaskLiberation TaskType = 11
	TaskDefense    TaskType = 12
	TaskControl    TaskType = 13
)

func TaskTypeFromCode(code int) (TaskType, error) {
	switch TaskType(code) {
	case TaskEradicate, TaskLiberation, TaskDefense, TaskControl:
		return TaskType(code), nil
	}
	return 0, &DecodeError{Entity: "task", Reason: fmt.Sprintf("unrecognized task type %d", code)}
}

func (t TaskType) String() string {
	switch t {
	case TaskEradicate:
		return "Eradicate"
	case TaskLiberation:
		return "Liberation"
	case TaskDefense:
		return "Defense"
	case TaskControl:
		return "Control"
	}
	return "Unknown"
}

// ValueType tags an entry of a task's parallel values array.
type ValueType int

const (
	ValueRace        ValueType = 1
	ValueUnknown     ValueType = 2
	ValueTargetCount ValueType = 3
	ValueLiberate    ValueType = 11
	ValuePlanet      ValueType = 12
)

// ValueTypeFromCode decodes a value tag. Unrecognized codes collapse into the
// upstream's own Unknown tag instead of failing the whole task.
func ValueTypeFromCode(code int) ValueType {
	switch ValueType(code) {
	case ValueRace, ValueUnknown, ValueTargetCount, ValueLiberate, ValuePlanet:
		return ValueType(code)
	}
	return ValueUnknown
}

// RewardType classifies a major-order reward.
type RewardType int

const (
	RewardTypeUnknown RewardType = 0
	RewardTypeMedals  RewardType = 1
)

func RewardTypeFromCode(code int) RewardType {
	if RewardType(code) == RewardTypeMedals {
		return RewardTypeMedals
	}
	return RewardTypeUnknown
}

func (t RewardType) String() string {
	if t == RewardTypeMedals {
		return "Medals"
	}
	return "Unknown"
}
