// Package visibility decides whether a conditional ("variant") field applies
// to the current wizard answers. Rules are small boolean expressions stored in
// the step catalog, for example `accountType == "individual"`.
package visibility

// Evaluator determines whether a field should be shown for the supplied
// answers.
type Evaluator interface {
	Eval(fieldPath, rule string, ctx Context) (bool, error)
}

// Context carries the values rules are evaluated against. Values usually
// comes from wizard.State.Values; Extras holds caller supplied flags reachable
// through the `extras.` prefix.
type Context struct {
	Values map[string]any
	Extras map[string]any
}

// EvaluatorFunc adapts a function into an Evaluator.
type EvaluatorFunc func(fieldPath, rule string, ctx Context) (bool, error)

// Eval delegates to the underlying function.
func (fn EvaluatorFunc) Eval(fieldPath, rule string, ctx Context) (bool, error) {
	return fn(fieldPath, rule, ctx)
}

// Always is an Evaluator that shows every field.
var Always = EvaluatorFunc(func(string, string, Context) (bool, error) { return true, nil })
