// Package ui contains the Bubble Tea program that powers the environment
// dashboard. The package is structured so the Model type focuses on
// message orchestration, while dedicated helpers own loading, navigation,
// input, and rendering.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages.
//   - Update routes each message through a typed handler registry so every
//     tea.Msg is handled by a focused function (key presses by navigation,
//     fetch results by the loader helpers, poll ticks by the refresh
//     helpers).
//   - Every asynchronous fetch result carries the session token it was
//     issued under. Handlers push results through the data dispatcher,
//     which drops anything from a superseded session before it can touch
//     current state.
//
// State ownership:
//   - The environment snapshot, load phases, and per-tab payloads live in
//     internal/session.Session; this package never mutates them directly,
//     only through the dispatcher and the session's settle methods.
//   - Picker level state lives in internal/ui/state.Level, which tracks
//     items, filtering, and viewport calculations.
//   - Action execution goes through the internal/ui/command package, which
//     resolves dashboard actions into console routes via internal/intent.
//
// Background refresh:
//   - A poll.Scheduler re-fetches the environment snapshot while a
//     deployment is in flight. Update blocks on its event channel through
//     waitForRefreshEvent; the tick handler applies the snapshot and
//     re-arms the wait, so exactly one wait command is outstanding for the
//     lifetime of the program.
package ui
