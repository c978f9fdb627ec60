package api

// Action is the unit of work bound to a Step. It takes no arguments;
// whatever inputs or side effects it needs are its own concern.
type Action func() error

// Step is a named, versioned unit of work in a pipeline.
//
// Steps are immutable once constructed and are identified by pointer:
// two Steps carrying the same name are still distinct nodes when used
// in a graph topology.
type Step struct {
	name        string
	version     string
	description string
	action      Action
}

// NewStep builds a Step from its identity fields and an action.
// It returns a *ValidationError if any identity field is empty or the
// action is nil.
func NewStep(name, version, description string, action Action) (*Step, error) {
	if name == "" {
		return nil, &ValidationError{Field: "step name", Reason: "must not be empty"}
	}
	if version == "" {
		return nil, &ValidationError{Field: "step version", Reason: "must not be empty"}
	}
	if description == "" {
		return nil, &ValidationError{Field: "step description", Reason: "must not be empty"}
	}
	if action == nil {
		return nil, &ValidationError{Field: "step action", Reason: "must not be nil"}
	}

	return &Step{
		name:        name,
		version:     version,
		description: description,
		action:      action,
	}, nil
}

// Name returns the step name.
func (s *Step) Name() string { return s.name }

// Version returns the step version.
func (s *Step) Version() string { return s.version }

// Description returns the step description.
func (s *Step) Description() string { return s.description }

// Invoke calls the bound action once and returns its error verbatim.
// The engine never wraps or retries action errors; idempotence across
// repeated Invoke calls is the action's responsibility.
func (s *Step) Invoke() error {
	return s.action()
}

// String implements fmt.Stringer for diagnostics.
func (s *Step) String() string {
	return "Step(name=" + s.name + ", version=" + s.version + ")"
}
