// Package operator implements the post-validation action pipeline. A
// ValidationOperator runs an ordered list of Actions against one validation
// result; each action resolves its target store by name from the registry
// and writes exactly one artifact through it.
//
// Actions execute strictly in declared order and the pipeline fails fast: a
// failing action stops the run and later actions are skipped. Writes already
// performed by earlier actions are NOT rolled back; there is no cross-store
// transaction. Callers that need reconciliation of partially-applied
// pipelines must build it on top of the structured Outcome every run
// returns.
package operator
