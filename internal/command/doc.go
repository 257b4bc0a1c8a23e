// Package command is the command layer between key bindings or the
// command line and the engine.
//
// Every user action is a Command: a closed Kind plus string arguments.
// A Shell executes commands against an engine.Editor with a switch over
// Kind, applying the numeric repeat register where an action repeats:
//
//	s := command.NewShell(editor)
//	s.Register().Push('3')
//	s.Execute(command.New(command.CursorRight)) // three bytes right
//	s.RunLine(`replace \x00\x00 \xFF`)
//
// Command lines are split into words by ParseWords. Byte arguments accept
// \x (hex), \b (binary) and \d (decimal) prefixes; see ParseBytes.
// Feedback such as "Yanked 4 bytes" and failures are reported through the
// editor's user and error messages. ErrQuit asks the caller to exit.
package command
