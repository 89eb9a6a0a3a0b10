// Package trace records what the compiler is doing: driver steps, passes,
// files and, at the debug level, individual binder nodes.
//
// Enable it from the command line:
//
//	nkl check --trace=phase main.nkl
//	nkl check --trace=debug --trace-out=trace.ndjson main.nkl
//
// Tracers travel through the pipeline in a context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", 0)
//	defer span.End("")
package trace
