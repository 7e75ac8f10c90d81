// SPDX-License-Identifier: EPL-2.0

// Package engine assembles the player: streamer, clock and transport
// bridge behind one render entry point and one control surface.
//
// The render path is ProcessBlock (or ProcessBlockPlanar for planar
// hosts): pop a block from the stream buffer, apply the fade
// multiplier, advance the clock. Underrun, pause and stop all render
// silence without advancing the position, so the host callback never
// waits and the published position never lies.
//
// The control surface (Play, Pause, Stop, Seek, SkipForward, SetGain,
// Shutdown) can be driven from any goroutine; each command that changes
// transport state is relayed to the attached bridge.
package engine
