// Package surface classifies surface-acquire failures and drives the
// per-frame recovery policy.
//
// Window system integrations own the actual surface; this package only
// decides what to do when acquiring the next texture fails. Every error
// maps to a Status, and every Status maps to a Disposition:
//
//	OK          -> Proceed          render the frame
//	Lost        -> SkipReconfigure  reconfigure the surface, skip the frame
//	Outdated    -> Skip             skip the frame, retry next cycle
//	Timeout     -> Skip             skip the frame, retry next cycle
//	OutOfMemory -> Abort            unrecoverable, stop the loop
//
// FrameLoop packages the policy into a reusable driver for hosts that
// want the acquire/reconfigure/render cycle handled for them.
package surface
