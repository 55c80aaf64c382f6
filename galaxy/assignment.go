package galaxy

import (
	"context"
	"fmt"
	"time"
)

// Reward is what completing a major order pays out.
type Reward struct {
	ID32   int64
	Type   RewardType
	Amount int
}

// AssignmentSettings carries the major order's presentation fields.
type AssignmentSettings struct {
	Type        int
	Title       string
	Brief       string
	Description string
	Reward      Reward
}

// TaskData is the typed projection of a task's parallel values/valueTypes
// arrays. Fields are optional; absent tags leave their zero value, except
// Race which defaults to FactionUnknown. Planet targets stay as deferred
// indices and resolve lazily through the resolver.
type TaskData struct {
	Race          Faction
	TargetCount   int
	Liberate      bool
	PlanetIndexes []int
}

// projectTaskValues reinterprets the flat (value, tag) pairs into a tag-keyed
// mapping. Planet tags accumulate into a list; when exactly one occurrence
// remains after accumulation it collapses to the scalar value, mirroring how
// the upstream encodes single- and multi-target tasks under the same tag.
// Every other tag is last-write-wins. A length mismatch between the two
// arrays is a decoding error, never a truncation.
func projectTaskValues(values, valueTypes []int) (map[ValueType]any, error) {
	if len(values) != len(valueTypes) {
		return nil, &DecodeError{
			Entity: "task",
			Reason: fmt.Sprintf("values/valueTypes length mismatch: %d vs %d", len(values), len(valueTypes)),
		}
	}
	out := make(map[ValueType]any, len(values))
	var planets []int
	for i, v := range values {
		tag := ValueTypeFromCode(valueTypes[i])
		if tag == ValuePlanet {
			planets = append(planets, v)
			continue
		}
		out[tag] = v
	}
	switch {
	case len(planets) == 1:
		out[ValuePlanet] = planets[0]
	case len(planets) > 1:
		out[ValuePlanet] = planets
	}
	return out, nil
}

// newTaskData is the second projection pass: generic tag->value mapping into
// named fields.
func newTaskData(vals map[ValueType]any) TaskData {
	d := TaskData{Race: FactionUnknown}
	if v, ok := vals[ValueRace].(int); ok {
		d.Race = FactionFromCode(v)
	}
	if v, ok := vals[ValueTargetCount].(int); ok {
		d.TargetCount = v
	}
	if v, ok := vals[ValueLiberate].(int); ok {
		d.Liberate = v != 0
	}
	switch v := vals[ValuePlanet].(type) {
	case int:
		d.PlanetIndexes = []int{v}
	case []int:
		d.PlanetIndexes = v
	}
	return d
}

// Task is one objective of an assignment. Its identity is positional: the
// index within the parent's task list binds it to the matching progress
// counter.
type Task struct {
	res Resolver

	Type TaskType
	Data TaskData

	planets ref[[]*Planet]
}

// NewTask projects a raw task payload. An unrecognized task type fails hard;
// completion rules depend on it.
func NewTask(res Resolver, p TaskPayload) (*Task, error) {
	taskType, err := TaskTypeFromCode(p.Type)
	if err != nil {
		return nil, err
	}
	vals, err := projectTaskValues(p.Values, p.ValueTypes)
	if err != nil {
		return nil, err
	}
	return &Task{res: res, Type: taskType, Data: newTaskData(vals)}, nil
}

// Planets resolves the task's target planets. Single fetch pass per instance,
// shared across concurrent callers.
func (t *Task) Planets(ctx context.Context) ([]*Planet, error) {
	return t.planets.get(ctx, func(ctx context.Context) ([]*Planet, error) {
		out := make([]*Planet, 0, len(t.Data.PlanetIndexes))
		for _, idx := range t.Data.PlanetIndexes {
			planet, err := t.res.PlanetByIndex(ctx, idx)
			if err != nil {
				return nil, err
			}
			out = append(out, planet)
		}
		return out, nil
	})
}

// Planet resolves the single target planet, nil when the task targets none.
func (t *Task) Planet(ctx context.Context) (*Planet, error) {
	planets, err := t.Planets(ctx)
	if err != nil || len(planets) == 0 {
		return nil, err
	}
	return planets[0], nil
}

// Refresh discards the memoized planet references.
func (t *Task) Refresh() {
	t.planets.invalidate()
}

// Complete reports whether the task is done given its progress counter.
// Eradicate tasks complete when the counter reaches the target count exactly;
// Liberation, Defense, and Control complete only at exactly 1.
func (t *Task) Complete(progress int) bool {
	switch t.Type {
	case TaskEradicate:
		return progress == t.Data.TargetCount
	case TaskLiberation, TaskDefense, TaskControl:
		return progress == 1
	}
	return false
}

// Assignment is a server-issued major order: an ordered task list with an
// index-aligned progress array and an expiry reconciled to wall-clock time at
// construction.
type Assignment struct {
	res Resolver

	ID32     int64
	Progress []int
	Expires  time.Time
	Settings AssignmentSettings
	Tasks    []*Task
}

// NewAssignment decodes a major order. The relative expiry is converted with
// the game clock taken for this fetch; construction performs no resolution
// fetches of its own. Progress must align one-to-one with the task list.
func NewAssignment(res Resolver, p AssignmentPayload, clock GameClock) (*Assignment, error) {
	tasks := make([]*Task, 0, len(p.Setting.Tasks))
	for _, tp := range p.Setting.Tasks {
		task, err := NewTask(res, tp)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if len(p.Progress) != len(tasks) {
		return nil, &DecodeError{
			Entity: "assignment",
			Reason: fmt.Sprintf("progress/tasks length mismatch: %d vs %d", len(p.Progress), len(tasks)),
		}
	}
	return &Assignment{
		res:      res,
		ID32:     p.ID32,
		Progress: p.Progress,
		Expires:  clock.Absolute(p.ExpiresIn),
		Settings: AssignmentSettings{
			Type:        p.Setting.Type,
			Title:       p.Setting.OverrideTitle,
			Brief:       p.Setting.OverrideBrief,
			Description: p.Setting.TaskDescription,
			Reward: Reward{
				ID32:   p.Setting.Reward.ID32,
				Type:   RewardTypeFromCode(p.Setting.Reward.Type),
				Amount: p.Setting.Reward.Amount,
			},
		},
		Tasks: tasks,
	}, nil
}

// TaskComplete reports completion of the i-th task against its progress
// counter.
func (a *Assignment) TaskComplete(i int) bool {
	if i < 0 || i >= len(a.Tasks) {
		return false
	}
	return a.Tasks[i].Complete(a.Progress[i])
}

// Complete is the logical AND of per-task completion.
func (a *Assignment) Complete() bool {
	for i := range a.Tasks {
		if !a.TaskComplete(i) {
			return false
		}
	}
	return true
}

// Refresh discards memoized references on every task.
func (a *Assignment) Refresh() {
	for _, t := range a.Tasks {
		t.Refresh()
	}
}
