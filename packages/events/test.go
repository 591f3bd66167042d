package events

// PlaceholderParameterName marks a parameter the author never named.
// Arguments bound to it render without a label.
const PlaceholderParameterName = "_"

// Test describes a test or suite as the engine sees it.
type Test struct {
	ID          ID
	DisplayName string
	Name        string
	IsSuite     bool
	Tags        []string
	Parameters  []Parameter
	Comments    []string
}

// IsParameterized reports whether the test declares parameters.
func (t *Test) IsParameterized() bool {
	return len(t.Parameters) > 0
}

// Parameter is one declared test parameter.
type Parameter struct {
	Name string
}

// HasName reports whether the parameter carries a real name rather than
// the placeholder.
func (p Parameter) HasName() bool {
	return p.Name != "" && p.Name != PlaceholderParameterName
}

// Case is one parameterized invocation of a test.
type Case struct {
	Arguments []Argument

	// Distinct is set when the case is one of multiple invocations, as
	// opposed to the single implicit case of a non-parameterized test.
	Distinct bool
}

// Argument pairs a declared parameter with the value passed for it,
// already rendered to text by the engine.
type Argument struct {
	Parameter Parameter
	Value     string
}
