// SPDX-License-Identifier: EPL-2.0

// Package bridge keeps an external transport in sync with playback.
//
// Two modes are provided behind the Bridge interface, selected at
// engine construction:
//
//   - TimebaseMaster serves pull-style position queries for a hosting
//     audio backend that owns the transport clock. It is passive and
//     callback-safe.
//   - Broadcaster pushes state over UDP to a follower: a SYNC datagram
//     with the position every millisecond, plus one-shot PLAY, PAUSE,
//     STOP and SEEK messages when commands land.
//
// Neither mode ever touches the render path; both read the atomically
// published position.
package bridge
