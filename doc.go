// Package schedo provides a process scheduling engine over real OS
// processes.
//
// Five policies share one foundation: online shortest-job-first, online
// multi-level-feedback-queue, offline first-come-first-served, offline
// round-robin and offline MLFQ. The foundation consists of the process
// record lifecycle, FIFO queues, a burst-time predictor keyed by command
// text, a process controller (spawn, pause, resume, poll, wait) and a
// metrics recorder producing a delimited table plus a live event line per
// context switch.
//
// End-users typically interact with the engine via the high-level Service
// façade exposed by the root package:
//
//	srv := schedo.New(
//		schedo.WithCommands("sleep 1", "echo done"),
//		schedo.WithMetricsURL("/tmp/schedo/result.csv"),
//	)
//	out, _ := srv.Run(ctx, schedo.FCFS)
//
// For more details see the individual sub-packages.
package schedo
