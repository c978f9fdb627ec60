package stepline

// PipelineBuilder provides a fluent API for declaring linear pipelines:
//
//	pipe, err := stepline.New("nightly-etl", "1.0.0", "Nightly data load").
//	    Step("extract", "1.0.0", "Pull source data", extract).
//	    Step("transform", "1.2.0", "Normalize records", transform).
//	    Step("load", "1.0.0", "Write to warehouse", load).
//	    Build()
//
// Graph pipelines are declared with NewGraph and NewPipeline directly.
type PipelineBuilder struct {
	name        string
	version     string
	description string
	steps       []*Step
	observer    Observer
	err         error
}

// New creates a new pipeline builder with the given identity fields.
// Validation is deferred to Build.
func New(name, version, description string) *PipelineBuilder {
	return &PipelineBuilder{
		name:        name,
		version:     version,
		description: description,
	}
}

// Step appends a step built from the given fields and action.
// The first invalid step fails the whole Build; later calls are no-ops
// once the builder holds an error.
func (b *PipelineBuilder) Step(name, version, description string, action Action) *PipelineBuilder {
	if b.err != nil {
		return b
	}

	s, err := NewStep(name, version, description, action)
	if err != nil {
		b.err = err
		return b
	}

	b.steps = append(b.steps, s)
	return b
}

// Append adds pre-built steps to the sequence.
func (b *PipelineBuilder) Append(steps ...*Step) *PipelineBuilder {
	if b.err != nil {
		return b
	}
	b.steps = append(b.steps, steps...)
	return b
}

// Observe attaches a progress observer to the pipeline.
func (b *PipelineBuilder) Observe(obs Observer) *PipelineBuilder {
	b.observer = obs
	return b
}

// Build constructs the Pipeline. It returns the first error collected
// while declaring steps, or any validation error from the pipeline
// constructor.
func (b *PipelineBuilder) Build() (*Pipeline, error) {
	if b.err != nil {
		return nil, b.err
	}
	return NewPipelineWithObserver(b.name, b.version, b.description, Sequence(b.steps...), b.observer)
}

// MustBuild is like Build but panics on error.
// Useful for initialization in main().
func (b *PipelineBuilder) MustBuild() *Pipeline {
	p, err := b.Build()
	if err != nil {
		panic(err)
	}
	return p
}
