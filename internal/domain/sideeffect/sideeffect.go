// Package sideeffect aggregates the results of multi-step, best-effort
// workflows so secondary failures are visible to callers and tests
// instead of living only in logs.
package sideeffect

// Result is the outcome of one named side effect.
type Result struct {
	Name string
	Err  error
}

// Outcome collects the primary result of an operation and the results
// of its best-effort side effects. The operation as a whole succeeds
// iff Primary is nil, regardless of side-effect failures.
type Outcome struct {
	Primary     error
	SideEffects []Result
}

// Record appends a side-effect result.
func (o *Outcome) Record(name string, err error) {
	o.SideEffects = append(o.SideEffects, Result{Name: name, Err: err})
}

// OK reports whether the primary operation succeeded.
func (o Outcome) OK() bool {
	return o.Primary == nil
}

// Failed returns the side effects that reported an error.
func (o Outcome) Failed() []Result {
	var failed []Result
	for _, r := range o.SideEffects {
		if r.Err != nil {
			failed = append(failed, r)
		}
	}
	return failed
}
