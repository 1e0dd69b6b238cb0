// Package batch provides the orchestration core for connectivity analysis
// runs: a job type registry, a counting-semaphore gate, a panic-isolating
// runner, and a coordinator that fans a batch request out across a bounded
// worker pool.
//
// A batch is one-shot: validate the request, launch every selected job,
// wait for all of them, and return a result with one outcome per job in
// launch order. Individual job failures never abort the batch; only
// pre-launch validation errors do.
package batch
